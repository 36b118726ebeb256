package entity

import (
	"errors"
	"fmt"
	"time"
)

var ErrUnknownMode = errors.New("unknown game mode")

// Mode - who sits on the O side, chosen per session or per restart.
type Mode uint8

const (
	ModeHumanVsHuman Mode = iota
	ModeHumanVsComputer
)

const (
	modeHumanVsHuman    = "human-vs-human"
	modeHumanVsComputer = "human-vs-computer"
)

// Modes - selector options in display order.
var Modes = []Mode{ModeHumanVsHuman, ModeHumanVsComputer}

// ParseMode - converts the text form of a mode back to a Mode.
func ParseMode(value string) (Mode, error) {
	switch value {
	case modeHumanVsHuman:
		return ModeHumanVsHuman, nil
	case modeHumanVsComputer:
		return ModeHumanVsComputer, nil
	default:
		return ModeHumanVsHuman, fmt.Errorf("%w: %q", ErrUnknownMode, value)
	}
}

func (that Mode) String() string {
	if that == ModeHumanVsComputer {
		return modeHumanVsComputer
	}
	return modeHumanVsHuman
}

// Label - human readable selector text.
func (that Mode) Label() string {
	if that == ModeHumanVsComputer {
		return "Human vs. Computer"
	}
	return "Human vs. Human"
}

func (that Mode) WithComputer() bool {
	return that == ModeHumanVsComputer
}

func (that Mode) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *Mode) UnmarshalText(text []byte) error {
	mode, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*that = mode
	return nil
}

// Session - one interactive session: the chosen mode and the game being played.
type Session struct {
	ID        string    `json:"id"`
	Mode      Mode      `json:"mode"`
	State     GameState `json:"state"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewSession(id string, mode Mode, now time.Time) *Session {
	return &Session{
		ID:        id,
		Mode:      mode,
		State:     NewGameState(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone - a copy that shares nothing with the original.
func (that *Session) Clone() *Session {
	clone := *that
	return &clone
}
