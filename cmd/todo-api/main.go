package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dimitrije/todo-api/internal/config"
	"github.com/dimitrije/todo-api/internal/database"
	"github.com/dimitrije/todo-api/internal/handlers"
	"github.com/dimitrije/todo-api/internal/services"
	"github.com/dimitrije/todo-api/internal/sse"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(context.Background()); err != nil {
		slog.Error("application failed", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.ParseLogLevel()}
	if cfg.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	logger.Info("config loaded",
		"env", cfg.Env,
		"port", cfg.Port,
		"log_level", cfg.LogLevel,
		"db_max_conns", cfg.DBMaxConns,
	)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.Info("database ready")

	hub := sse.NewHub()
	go hub.Run(ctx)

	app := handlers.NewApp(handlers.AppConfig{
		Production:   cfg.IsProduction(),
		AllowOrigins: cfg.CORSAllowedOrigins,
		Logger:       logger,
	}, handlers.Services{
		Users:     services.NewUserService(db),
		TodoLists: services.NewTodoListService(db),
		Tasks:     services.NewTaskService(db),
		Hub:       hub,
		DB:        db,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           app,
		ReadHeaderTimeout: 10 * time.Second,
		// Event streams end when their request context does.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	go func() {
		logger.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("server stopped")
	return nil
}
