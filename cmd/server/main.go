package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fuel-prices-web/internal/adapters/repositories"
	"fuel-prices-web/internal/api"
	"fuel-prices-web/internal/api/templates"
	"fuel-prices-web/internal/config"
	"fuel-prices-web/internal/platform/db"
	"fuel-prices-web/internal/platform/obs"
)

// main is the application composition root.
// It wires the SQL station store and page templates and starts the HTTP server.
func main() {
	cfg, found := config.Load()
	logger := obs.NewLogger(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	if !found {
		logger.Info().Msg("No .env file found (using environment variables)")
	}

	if cfg.DBDriver == db.DriverPostgres && cfg.DatabaseURL == "" {
		logger.Fatal().Msg("DATABASE_URL is required when DB_DRIVER=pgx")
	}

	renderer, err := templates.NewRenderer()
	if err != nil {
		logger.Fatal().Err(err).Msg("load templates")
	}

	// The store is opened per request; a missing file is reported here but not fatal.
	if cfg.DBDriver != db.DriverPostgres {
		if _, err := os.Stat(cfg.DBPath); err != nil {
			logger.Warn().Err(err).Str("db_path", cfg.DBPath).Msg("station store not readable yet")
		}
	}

	repo := repositories.NewSQLStationRepository(cfg.DBDriver, cfg.DSN())
	router := api.NewRouter(repo, renderer, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		logger.Info().Msg("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error().Err(err).Msg("shutdown")
		}
	}()

	logger.Info().
		Str("addr", srv.Addr).
		Str("driver", cfg.DBDriver).
		Msg("Server listening")
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("serve")
	}
}
