package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/inoUwU/todo-api/internal/config"
	"github.com/inoUwU/todo-api/internal/platform/memstore"
	"github.com/inoUwU/todo-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger

	// Stores (using interfaces for proper abstraction)
	todoStore store.TodoStore

	// memStore keeps the concrete in-memory store so cleanup can log its
	// final operation counters.
	memStore *memstore.TodoStore
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts the configuration and logger that must be
// established before application initialization.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	app := &application{
		config: cfg,
		logger: logger,
	}

	// Initialize the in-memory todo store. The store lives for the process
	// lifetime and is discarded on shutdown; persistence is out of scope.
	app.memStore = memstore.NewTodoStore(logger)
	app.todoStore = app.memStore
	logger.Info("Todo store initialized", "backend", "memory")

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	// Set up router using the application dependencies
	router := app.setupRouter()

	// Start the HTTP server
	err := app.startHTTPServer(ctx, router)
	if err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	// The store has no teardown; log its final counters for the record.
	stats := app.memStore.Stats()
	app.logger.Info("Todo store final stats",
		"todos", stats.Todos,
		"lists", stats.Lists,
		"saves", stats.Saves,
		"gets", stats.Gets,
		"updates", stats.Updates,
		"deletes", stats.Deletes,
		"misses", stats.Misses)

	app.logger.Info("Application shutdown completed")
}
