package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dosada05/championship-manager/config"
	"github.com/Dosada05/championship-manager/db"
	"github.com/Dosada05/championship-manager/events"
	"github.com/Dosada05/championship-manager/handlers"
	"github.com/Dosada05/championship-manager/live"
	"github.com/Dosada05/championship-manager/repositories"
	api "github.com/Dosada05/championship-manager/routes"
	"github.com/Dosada05/championship-manager/services"
	"github.com/Dosada05/championship-manager/storage"
	"github.com/go-chi/chi/v5"
)

const (
	dbConnectTimeout = 5 * time.Second
	shutdownTimeout  = 15 * time.Second
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded",
		slog.Int("port", cfg.ServerPort),
		slog.String("state_backend", cfg.StateBackend))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		logger.Error("failed to open state store", slog.String("backend", cfg.StateBackend), slog.Any("error", err))
		os.Exit(1)
	}
	defer closeStore()
	stateRepo := repositories.NewStateRepository(store)
	logger.Info("state store ready", slog.String("backend", cfg.StateBackend))

	hub := live.NewHub(logger)
	go hub.Run(ctx)
	logger.Info("WebSocket Hub started")

	notifier := services.MultiNotifier{hub}
	if cfg.AMQPURL != "" {
		publisher, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange, logger)
		if err != nil {
			logger.Error("failed to connect to message broker", slog.Any("error", err))
			os.Exit(1)
		}
		defer func() {
			if err := publisher.Close(); err != nil {
				logger.Error("failed to close message broker connection", slog.Any("error", err))
			}
		}()
		notifier = append(notifier, publisher)
		logger.Info("event publisher connected", slog.String("exchange", cfg.AMQPExchange))
	}

	tournamentService := services.NewTournamentService(stateRepo, notifier, logger)

	if cfg.SeedFile != "" {
		seed, err := config.LoadSeed(cfg.SeedFile)
		if err != nil {
			logger.Error("failed to load seed file", slog.String("path", cfg.SeedFile), slog.Any("error", err))
			os.Exit(1)
		}
		if err := applySeed(ctx, tournamentService, seed, logger); err != nil {
			logger.Error("failed to apply seed", slog.Any("error", err))
			os.Exit(1)
		}
	}

	router := chi.NewRouter()
	api.SetupRoutes(router, api.Handlers{
		Auth:       handlers.NewAuthHandler(cfg.AdminPasswordHash, cfg.JWTSecretKey),
		Tournament: handlers.NewTournamentHandler(tournamentService),
		Team:       handlers.NewTeamHandler(tournamentService),
		Match:      handlers.NewMatchHandler(tournamentService),
		Group:      handlers.NewGroupHandler(tournamentService),
		WebSocket:  handlers.NewWebSocketHandler(hub, cfg.CORSAllowedOrigins),
	}, []byte(cfg.JWTSecretKey), cfg.CORSAllowedOrigins)
	logger.Info("Routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}

// openStore builds the key-value store for the configured backend and creates
// its schema when it has one.
func openStore(ctx context.Context, cfg *config.Config) (repositories.KeyValueStore, func(), error) {
	var (
		store repositories.KeyValueStore
		conn  *sql.DB
		err   error
	)

	switch cfg.StateBackend {
	case config.BackendPostgres:
		conn, err = db.Connect(cfg.DatabaseURL, dbConnectTimeout)
		if err != nil {
			return nil, nil, err
		}
		store = repositories.NewPostgresKeyValueStore(conn)
	case config.BackendSQLite:
		conn, err = db.OpenSQLite(cfg.SQLitePath, dbConnectTimeout)
		if err != nil {
			return nil, nil, err
		}
		store = repositories.NewSQLiteKeyValueStore(conn)
	case config.BackendR2:
		store, err = storage.NewCloudflareR2Store(storage.CloudflareR2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			Prefix:          cfg.R2Prefix,
		})
		if err != nil {
			return nil, nil, err
		}
	case config.BackendMemory:
		store = repositories.NewMemoryKeyValueStore()
	default:
		return nil, nil, fmt.Errorf("unknown state backend %q", cfg.StateBackend)
	}

	closeFn := func() {
		if conn == nil {
			return
		}
		if err := conn.Close(); err != nil {
			slog.Error("failed to close database connection", slog.Any("error", err))
			return
		}
		slog.Info("database connection closed")
	}

	if ensurer, ok := store.(repositories.SchemaEnsurer); ok {
		if err := ensurer.EnsureSchema(ctx); err != nil {
			closeFn()
			return nil, nil, fmt.Errorf("failed to ensure state schema: %w", err)
		}
	}
	return store, closeFn, nil
}
