package entity

import (
	"errors"
	"fmt"
)

const (
	BoardSize = 3
	CellCount = BoardSize * BoardSize
)

var (
	ErrUnknownCell   = errors.New("unknown cell value")
	ErrUnknownPlayer = errors.New("unknown player")

	// WinCombos - the 8 lines of the board: rows, columns, main and anti diagonal.
	WinCombos = [][3]int{
		{0, 1, 2},
		{3, 4, 5},
		{6, 7, 8},
		{0, 3, 6},
		{1, 4, 7},
		{2, 5, 8},
		{0, 4, 8},
		{2, 4, 6},
	}
)

// Cell - content of one board position.
type Cell uint8

const (
	CellEmpty Cell = iota
	CellX
	CellO
)

func (that Cell) String() string {
	switch that {
	case CellX:
		return "X"
	case CellO:
		return "O"
	default:
		return ""
	}
}

func (that Cell) IsEmpty() bool {
	return that == CellEmpty
}

func (that Cell) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *Cell) UnmarshalText(text []byte) error {
	switch string(text) {
	case "":
		*that = CellEmpty
	case "X":
		*that = CellX
	case "O":
		*that = CellO
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCell, text)
	}
	return nil
}

// Player - the side that places a mark. PlayerNone is the absent winner.
type Player uint8

const (
	PlayerNone Player = iota
	PlayerX
	PlayerO
)

func (that Player) String() string {
	return that.Mark().String()
}

// Mark - the cell value this player writes on the board.
func (that Player) Mark() Cell {
	switch that {
	case PlayerX:
		return CellX
	case PlayerO:
		return CellO
	default:
		return CellEmpty
	}
}

// Opponent - the other player, PlayerNone stays PlayerNone.
func (that Player) Opponent() Player {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return PlayerNone
	}
}

func (that Player) IsValid() bool {
	return that == PlayerX || that == PlayerO
}

func (that Player) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *Player) UnmarshalText(text []byte) error {
	switch string(text) {
	case "":
		*that = PlayerNone
	case "X":
		*that = PlayerX
	case "O":
		*that = PlayerO
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPlayer, text)
	}
	return nil
}

// Board - 3x3 grid stored row-major.
type Board [CellCount]Cell

// Index - converts a row and column into a board index, ok is false when out of range.
func Index(row, col int) (int, bool) {
	if row < 0 || row >= BoardSize || col < 0 || col >= BoardSize {
		return 0, false
	}
	return row*BoardSize + col, true
}

func (that *Board) At(row, col int) Cell {
	idx, ok := Index(row, col)
	if !ok {
		return CellEmpty
	}
	return that[idx]
}

func (that *Board) Occupied() int {
	count := 0
	for _, cell := range that {
		if !cell.IsEmpty() {
			count++
		}
	}
	return count
}

// Phase - position of a game in the turn-order state machine.
type Phase uint8

const (
	PhaseXTurn Phase = iota
	PhaseOTurn
	PhaseWon
	PhaseDrawn
)

func (that Phase) String() string {
	switch that {
	case PhaseXTurn:
		return "x-turn"
	case PhaseOTurn:
		return "o-turn"
	case PhaseWon:
		return "won"
	case PhaseDrawn:
		return "drawn"
	default:
		return "unknown"
	}
}

func (that Phase) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

// GameState - board, turn pointer and terminal flags of one game.
type GameState struct {
	Board         Board  `json:"board"`
	CurrentPlayer Player `json:"current_player"`
	Winner        Player `json:"winner,omitempty"`
	IsDraw        bool   `json:"is_draw"`
}

// NewGameState - empty board, X to move.
func NewGameState() GameState {
	return GameState{
		CurrentPlayer: PlayerX,
	}
}

func (that *GameState) HasWinner() bool {
	return that.Winner != PlayerNone
}

func (that *GameState) IsTerminal() bool {
	return that.HasWinner() || that.IsDraw
}

func (that *GameState) IsActive() bool {
	return !that.IsTerminal()
}

func (that *GameState) Phase() Phase {
	switch {
	case that.HasWinner():
		return PhaseWon
	case that.IsDraw:
		return PhaseDrawn
	case that.CurrentPlayer == PlayerO:
		return PhaseOTurn
	default:
		return PhaseXTurn
	}
}
