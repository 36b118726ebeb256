package rest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"libdb.so/hserve"

	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	"github.com/rocketscienceinc/tictactoe-web/internal/service"
)

const requestTimeout = 10 * time.Second

type gameManager interface {
	GetOrCreateSession(ctx context.Context, id string) (*entity.Session, error)
	PlayCell(ctx context.Context, id string, row, col int) (*entity.Session, error)
	Restart(ctx context.Context, id string) (*entity.Session, error)
	SelectMode(ctx context.Context, id string, mode entity.Mode) (*entity.Session, error)
}

// CookieConfig - how the session cookie is named and how long it lives.
type CookieConfig struct {
	Name string
	TTL  time.Duration
}

// Server - the browser facing side of the game: pages, form posts and a small JSON API.
type Server struct {
	logger *slog.Logger
	router *chi.Mux

	game   gameManager
	tokens service.TokenService
	cookie CookieConfig
}

func NewServer(logger *slog.Logger, game gameManager, tokens service.TokenService, cookie CookieConfig) *Server {
	that := &Server{
		logger: logger.With("component", "http"),
		router: chi.NewRouter(),
		game:   game,
		tokens: tokens,
		cookie: cookie,
	}

	that.router.Use(chimw.RequestID)
	that.router.Use(chimw.RealIP)
	that.router.Use(that.requestLogger)
	that.router.Use(chimw.Recoverer)
	that.router.Use(chimw.Timeout(requestTimeout))

	that.router.Get("/ping", that.Ping)

	that.router.Group(func(r chi.Router) {
		r.Use(that.withSession)

		r.Get("/", that.Index)
		r.Post("/cells/{row}/{col}", that.PlayCell)
		r.Post("/restart", that.Restart)
		r.Post("/mode", that.SelectMode)
		r.Get("/api/state", that.State)
	})

	return that
}

// Handler - the router, exposed for tests.
func (that *Server) Handler() http.Handler {
	return that.router
}

// Start - serves HTTP on port until ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	addr := ":" + port

	that.logger.Info("listening via HTTP", "addr", addr)

	if err := hserve.ListenAndServe(ctx, addr, that.router); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
