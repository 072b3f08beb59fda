package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/rsoares/taskhub-api/internal/config"
	"github.com/rsoares/taskhub-api/internal/platform/memory"
	"github.com/rsoares/taskhub-api/internal/platform/postgres"
	"github.com/rsoares/taskhub-api/internal/service/auth"
	"github.com/rsoares/taskhub-api/internal/store"
)

// application holds the wired dependencies of a running server.
type application struct {
	config *config.Config
	logger *slog.Logger

	userStore store.UserStore
	taskStore store.TaskStore

	jwtService     auth.JWTService
	passwordHasher auth.PasswordHasher

	// usingDatabase is false when the server runs on the in-memory stores.
	usingDatabase bool
}

// newApplication builds the dependency graph from configuration. It returns
// a cleanup function that releases held resources (the DB pool, if any).
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, func(), error) {
	app := &application{
		config: cfg,
		logger: logger,
	}
	cleanup := func() {}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, nil, fmt.Errorf("jwt service: %w", err)
	}
	app.jwtService = jwtService
	app.passwordHasher = auth.NewBcryptHasher(cfg.Auth.BcryptCost)

	if cfg.Database.URL == "" {
		// Database-less mode: state lives in process memory and is lost on
		// restart. Useful for demos and local development.
		taskStore := memory.NewTaskStore()
		app.taskStore = taskStore
		app.userStore = memory.NewUserStore(taskStore)
		logger.Warn("no database URL configured, using in-memory stores")
		return app, cleanup, nil
	}

	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ping database: %w", err)
	}
	cleanup = func() {
		if err := db.Close(); err != nil {
			logger.Error("failed to close database", slog.String("error", err.Error()))
		}
	}

	if err := postgres.RunMigrations(db); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}

	app.userStore = postgres.NewUserStore(db, logger)
	app.taskStore = postgres.NewTaskStore(db, logger)
	app.usingDatabase = true
	return app, cleanup, nil
}
