package usecase

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	"github.com/rocketscienceinc/tictactoe-web/internal/repository"
	"github.com/rocketscienceinc/tictactoe-web/internal/tictactoe"
)

const sessionLockStripes = 64

// DefaultMode - mode of a session that never chose one.
const DefaultMode = entity.ModeHumanVsHuman

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
}

// GameManager - handles the events of one session at a time: cell clicks, restarts, mode selection.
type GameManager struct {
	logger      *slog.Logger
	sessionRepo sessionRepo

	intN tictactoe.IntN
	now  func() time.Time

	locks [sessionLockStripes]sync.Mutex
}

type Option func(*GameManager)

// WithIntN - random source handed to the engine for computer moves.
func WithIntN(intN tictactoe.IntN) Option {
	return func(manager *GameManager) {
		manager.intN = intN
	}
}

// WithClock - time source for session timestamps.
func WithClock(now func() time.Time) Option {
	return func(manager *GameManager) {
		manager.now = now
	}
}

func NewGameManager(logger *slog.Logger, sessionRepo sessionRepo, opts ...Option) *GameManager {
	manager := &GameManager{
		logger:      logger,
		sessionRepo: sessionRepo,
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(manager)
	}

	return manager
}

// GetOrCreateSession - loads the session, a missing one starts a new game in the default mode.
func (that *GameManager) GetOrCreateSession(ctx context.Context, id string) (*entity.Session, error) {
	unlock := that.lock(id)
	defer unlock()

	return that.getOrCreateSession(ctx, id)
}

// PlayCell - a click on cell (row, col). In human vs computer mode the computer answers in the same call.
func (that *GameManager) PlayCell(ctx context.Context, id string, row, col int) (*entity.Session, error) {
	log := that.logger.With("method", "PlayCell", "session", id, "row", row, "col", col)

	unlock := that.lock(id)
	defer unlock()

	session, err := that.getOrCreateSession(ctx, id)
	if err != nil {
		return nil, err
	}

	player := session.State.CurrentPlayer
	if session.Mode.WithComputer() && player != entity.PlayerX {
		return session, apperror.ErrNotYourTurn
	}

	// the engine works on a copy so that a rejected move leaves the session untouched
	next := session.Clone()
	engine := that.engine(next)

	if err = engine.PlaceMark(row, col, player); err != nil {
		log.Debug("move rejected", "error", err)
		return session, fmt.Errorf("failed make turn: %w", err)
	}

	if session.Mode.WithComputer() && next.State.IsActive() {
		botRow, botCol, err := engine.ComputerMove()
		if err != nil {
			return session, fmt.Errorf("computer failed to make turn: %w", err)
		}

		log.Debug("computer answered", "bot_row", botRow, "bot_col", botCol)
	}

	if err = that.updateSession(ctx, next); err != nil {
		return nil, err
	}

	if next.State.IsTerminal() {
		log.Info("game finished", "phase", next.State.Phase(), "winner", next.State.Winner)
	}

	return next, nil
}

// Restart - replaces the game with a fresh one, the mode is kept.
func (that *GameManager) Restart(ctx context.Context, id string) (*entity.Session, error) {
	unlock := that.lock(id)
	defer unlock()

	session, err := that.getOrCreateSession(ctx, id)
	if err != nil {
		return nil, err
	}

	that.engine(session).Reset()

	if err = that.updateSession(ctx, session); err != nil {
		return nil, err
	}

	that.logger.Info("game restarted", "session", id, "mode", session.Mode)

	return session, nil
}

// SelectMode - switching to another mode starts a new game in it, the current mode is a no-op.
func (that *GameManager) SelectMode(ctx context.Context, id string, mode entity.Mode) (*entity.Session, error) {
	unlock := that.lock(id)
	defer unlock()

	session, err := that.getOrCreateSession(ctx, id)
	if err != nil {
		return nil, err
	}

	if session.Mode == mode {
		return session, nil
	}

	session.Mode = mode
	that.engine(session).Reset()

	if err = that.updateSession(ctx, session); err != nil {
		return nil, err
	}

	that.logger.Info("game mode selected", "session", id, "mode", mode)

	return session, nil
}

func (that *GameManager) engine(session *entity.Session) *tictactoe.Engine {
	var opts []tictactoe.Option
	if that.intN != nil {
		opts = append(opts, tictactoe.WithIntN(that.intN))
	}

	return tictactoe.Attach(&session.State, session.Mode, opts...)
}

func (that *GameManager) getOrCreateSession(ctx context.Context, id string) (*entity.Session, error) {
	session, err := that.sessionRepo.GetByID(ctx, id)
	if err == nil {
		return session, nil
	}

	if !errors.Is(err, repository.ErrSessionNotFound) {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	session = entity.NewSession(id, DefaultMode, that.now())
	if err = that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	that.logger.Info("session created", "session", id)

	return session, nil
}

func (that *GameManager) updateSession(ctx context.Context, session *entity.Session) error {
	session.UpdatedAt = that.now()

	if err := that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	return nil
}

// lock - serializes events of one session.
func (that *GameManager) lock(id string) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))

	mu := &that.locks[h.Sum32()%sessionLockStripes]
	mu.Lock()

	return mu.Unlock
}
