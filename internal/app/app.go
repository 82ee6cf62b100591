package app

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/sundayezeilo/repositories/internal/config"
	"github.com/sundayezeilo/repositories/internal/idgen"
	"github.com/sundayezeilo/repositories/internal/repository"
	"github.com/sundayezeilo/repositories/internal/server"
)

// App holds the application dependencies and configuration.
type App struct {
	Config  *config.Config
	Logger  *slog.Logger
	Store   *repository.MemoryStore
	Server  *server.Server
	Handler *repository.Handler
}

// New initializes and returns a new App instance with all dependencies wired up.
func New(ctx context.Context) (*App, error) {
	loadEnv()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := setupLogger(cfg.App.LogLevel)

	logger.InfoContext(ctx, "starting application",
		"env", cfg.App.Environment,
		"version", cfg.App.ServiceVersion,
	)

	a, err := build(cfg, logger)
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "application initialized",
		"addr", cfg.Server.Addr(),
		"id_version", cfg.App.IDVersion,
	)

	return a, nil
}

// build wires the store, service, handler and server for cfg.
func build(cfg *config.Config, logger *slog.Logger) (*App, error) {
	store := repository.NewMemoryStore()
	svc := repository.NewService(store, &repository.ServiceConfig{
		IDGenerator: idgen.New(idgen.Version(cfg.App.IDVersion), idgen.WithRetries(cfg.App.IDRetries)),
	})

	validator, err := repository.NewPayloadValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to build payload validator: %w", err)
	}

	handler, err := repository.NewHandler(repository.HandlerConfig{
		Service:   svc,
		Validator: validator,
		Logger:    logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build handler: %w", err)
	}

	return &App{
		Config:  cfg,
		Logger:  logger,
		Store:   store,
		Server:  server.New(cfg, logger, handler),
		Handler: handler,
	}, nil
}

// Start starts the application server.
func (a *App) Start(ctx context.Context) error {
	a.Logger.Info("server starting", "addr", a.Config.Server.Addr())

	if err := a.Server.Start(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the application. Records are held in
// memory only and are dropped with the process.
func (a *App) Shutdown() error {
	a.Logger.Info("shutting down application")
	return nil
}

// loadEnv loads a .env file outside production.
func loadEnv() {
	if os.Getenv("APP_ENV") == "production" {
		return
	}
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found.")
	}
}

// setupLogger creates a structured logger based on the log level.
func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
