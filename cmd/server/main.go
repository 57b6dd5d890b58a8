/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the earnings engine server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load configuration from the environment (and .env)
  2. Initialize SQLite store
  3. Store the settings file, if SETTINGS_PATH is set
  4. Create API handler and router
  5. Start server with graceful shutdown

ENVIRONMENT:
  SERVER_PORT              HTTP server port (default: 8080)
  SERVER_SHUTDOWN_TIMEOUT  Grace period for active requests (default: 30s)
  SERVER_ALLOWED_ORIGINS   Comma-separated CORS origins
  DB_PATH                  SQLite database path (default: earnings.db)
                           Use ":memory:" for in-memory database
  SETTINGS_PATH            Settings JSON stored as active at startup
  LOG_LEVEL                debug, info, warn, error (default: info)
  LOG_FORMAT               text or json (default: text)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete
  3. Close database connection
  4. Exit

SEE ALSO:
  - config/config.go: Environment parsing
  - api/server.go: Router configuration
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/warp/earnings-engine/api"
	"github.com/warp/earnings-engine/config"
	"github.com/warp/earnings-engine/factory"
	"github.com/warp/earnings-engine/store/sqlite"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := cfg.Logger()
	slog.SetDefault(logger)

	// Initialize store
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer store.Close()

	if cfg.SettingsPath != "" {
		if err := seedSettings(context.Background(), store, cfg.SettingsPath); err != nil {
			return err
		}
		logger.Info("settings loaded", "path", cfg.SettingsPath)
	}

	handler := api.NewHandler(store, logger)
	router := api.NewRouter(handler, cfg.Server.AllowedOrigins)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", server.Addr, "db", cfg.DBPath)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		return err
	case <-quit:
	}

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

// seedSettings stores the settings document at path as the active
// configuration.
func seedSettings(ctx context.Context, store *sqlite.Store, path string) error {
	doc, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read settings: %w", err)
	}
	settings, err := factory.NewConfigFactory().ParseConfig(string(doc))
	if err != nil {
		return fmt.Errorf("parse settings %s: %w", path, err)
	}
	return store.SaveConfig(ctx, settings)
}
