// Package main is the entry point for the taskhub API server. It loads
// configuration, wires the stores and services together, and runs the HTTP
// server until it is signalled to stop.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/rsoares/taskhub-api/internal/config"
	"github.com/rsoares/taskhub-api/internal/platform/logger"
)

// shutdownTimeout bounds how long in-flight requests may run after a stop
// signal arrives.
const shutdownTimeout = 10 * time.Second

func main() {
	// A missing .env file is fine; real deployments set the environment
	// directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		log.Fatalf("failed to set up logger: %v", err)
	}

	app, cleanup, err := newApplication(cfg, appLogger)
	if err != nil {
		appLogger.Error("failed to initialize application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cleanup()

	if err := run(app); err != nil {
		appLogger.Error("server terminated", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// run starts the HTTP server and blocks until shutdown completes.
func run(app *application) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", app.config.Server.Port),
		Handler:      app.setupRouter(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info("server listening",
			slog.Int("port", app.config.Server.Port),
			slog.Bool("database", app.usingDatabase))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-stop:
		app.logger.Info("shutting down", slog.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	app.logger.Info("server stopped")
	return nil
}
