package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/tictactoe-web/internal/config"
	"github.com/rocketscienceinc/tictactoe-web/internal/repository"
	"github.com/rocketscienceinc/tictactoe-web/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-web/internal/service"
	"github.com/rocketscienceinc/tictactoe-web/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-web/transport/rest"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application until SIGINT or SIGTERM.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	errg, ctx := errgroup.WithContext(ctx)

	sessionRepo, closeRepo, err := newSessionRepository(ctx, errg, logger, conf)
	if err != nil {
		return err
	}
	defer closeRepo()

	tokens, err := service.NewTokenService(conf.Session.SecretKey, conf.Session.TTL)
	if err != nil {
		return fmt.Errorf("could not create token service: %w", err)
	}

	gameManager := usecase.NewGameManager(logger, sessionRepo)
	server := rest.NewServer(logger, gameManager, tokens, rest.CookieConfig{
		Name: conf.Session.CookieName,
		TTL:  conf.Session.TTL,
	})

	errg.Go(func() error {
		if err := server.Start(ctx, conf.HTTPPort); err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}

		return nil
	})

	errg.Go(func() error {
		<-ctx.Done()
		log.Info("Application context canceled, shutting down")
		return nil
	})

	if err = errg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	return nil
}

// newSessionRepository - the configured session storage. The memory store gets its expiry sweeper in errg.
func newSessionRepository(
	ctx context.Context,
	errg *errgroup.Group,
	logger *slog.Logger,
	conf *config.Config,
) (repository.SessionRepository, func(), error) {
	log := logger.With("component", "app")

	switch conf.Storage {
	case config.StorageRedis:
		redisAddrString := conf.Redis.GetRedisAddr()
		if redisAddrString == "" {
			return nil, nil, ErrAddrNotFound
		}

		redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		log.Info("using redis session storage", "addr", redisAddrString)

		return repository.NewSessionRepository(redisStorage, conf.Session.TTL), func() {
			if err := redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}, nil

	default:
		memoryStorage := repository.NewMemorySessionRepository(logger, conf.Session.TTL)
		errg.Go(func() error {
			return memoryStorage.Run(ctx, conf.Session.SweepInterval)
		})

		log.Info("using in-memory session storage", "ttl", conf.Session.TTL)

		return memoryStorage, func() {}, nil
	}
}
