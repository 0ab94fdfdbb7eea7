package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/dontwakethemonster/internal/config"
	"github.com/rocketscienceinc/dontwakethemonster/internal/i18n"
	"github.com/rocketscienceinc/dontwakethemonster/internal/monster"
	"github.com/rocketscienceinc/dontwakethemonster/internal/random"
	"github.com/rocketscienceinc/dontwakethemonster/internal/repository"
	"github.com/rocketscienceinc/dontwakethemonster/internal/repository/storage"
	"github.com/rocketscienceinc/dontwakethemonster/internal/usecase"
	"github.com/rocketscienceinc/dontwakethemonster/transport/rest"
)

const shutdownTimeout = 10 * time.Second

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedis(ctx, redisAddrString, conf.Redis.DB)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	sqliteStorage, err := storage.NewSQLite(conf.SQLiteStoragePath)
	if err != nil {
		return fmt.Errorf("could not open sqlite storage: %w", err)
	}

	defer func() {
		if err = sqliteStorage.Close(); err != nil {
			log.Error("could not close sqlite storage", "error", err)
		}
	}()

	if err = sqliteStorage.Init(ctx); err != nil {
		return fmt.Errorf("could not init sqlite storage: %w", err)
	}

	catalog, err := i18n.LoadEmbedded(monster.MessageKeys)
	if err != nil {
		return fmt.Errorf("could not load message catalog: %w", err)
	}

	source, err := random.NewCryptoSeededSource()
	if err != nil {
		return fmt.Errorf("could not seed board generator: %w", err)
	}

	sessionRepo := repository.NewSessionRepository(redisStorage, conf.Redis.SessionTTL)
	resultRepo := repository.NewResultRepository(sqliteStorage.Connection)
	machine := monster.NewMachine(logger, conf.Game.Rules(), source)
	sessionManager := usecase.NewSessionManager(logger, quartz.NewReal(), machine, catalog, sessionRepo, resultRepo)

	server := rest.New(logger, conf.HTTPPort, conf.DefaultLocale, sessionManager)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Info("Starting HTTP server", "port", conf.HTTPPort, "locales", catalog.Locales())
		return server.Start()
	})

	group.Go(func() error {
		<-groupCtx.Done()
		log.Info("Application context canceled, shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	if err = group.Wait(); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	return nil
}
