package repository

import (
	"context"
	"log/slog"
	"time"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
)

// MemorySessionRepository - in-process session storage, lost when the process exits.
type MemorySessionRepository struct {
	logger   *slog.Logger
	sessions *xsync.MapOf[string, *entity.Session]
	ttl      time.Duration
	now      func() time.Time
}

func NewMemorySessionRepository(logger *slog.Logger, ttl time.Duration) *MemorySessionRepository {
	return &MemorySessionRepository{
		logger:   logger,
		sessions: xsync.NewMapOf[string, *entity.Session](),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (that *MemorySessionRepository) CreateOrUpdate(_ context.Context, session *entity.Session) error {
	that.sessions.Store(session.ID, session.Clone())
	return nil
}

func (that *MemorySessionRepository) GetByID(_ context.Context, id string) (*entity.Session, error) {
	session, ok := that.sessions.Load(id)
	if !ok {
		return nil, ErrSessionNotFound
	}

	return session.Clone(), nil
}

func (that *MemorySessionRepository) DeleteByID(_ context.Context, id string) error {
	if _, ok := that.sessions.LoadAndDelete(id); !ok {
		return ErrSessionNotFound
	}

	return nil
}

// Size - number of stored sessions.
func (that *MemorySessionRepository) Size() int {
	return that.sessions.Size()
}

// Run - removes expired sessions every interval until ctx is done.
func (that *MemorySessionRepository) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			that.Sweep()
		}
	}
}

// Sweep - removes sessions not updated within the ttl, returns how many were removed.
func (that *MemorySessionRepository) Sweep() int {
	log := that.logger.With("method", "Sweep")

	now := that.now()
	removed := 0

	that.sessions.Range(func(id string, session *entity.Session) bool {
		if session.UpdatedAt.Add(that.ttl).Before(now) {
			that.sessions.Delete(id)
			removed++
			log.Debug("session expired, deleting", "session", id, "updated_at", session.UpdatedAt)
		}
		return true
	})

	return removed
}
