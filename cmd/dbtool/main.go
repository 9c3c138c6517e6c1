package main

import (
	"context"
	"database/sql"
	"flag"
	"os"

	"fuel-prices-web/internal/adapters/repositories"
	"fuel-prices-web/internal/config"
	"fuel-prices-web/internal/platform/db"
	"fuel-prices-web/internal/platform/obs"

	"github.com/rs/zerolog"
)

func main() {
	cfg, found := config.Load()
	logger := obs.NewLogger(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	if !found {
		logger.Info().Msg("No .env file found (using environment variables)")
	}

	seedPath := flag.String("seed", cfg.SeedPath, "YAML or JSON station fixture")
	schemaOnly := flag.Bool("schema-only", false, "create tables without seeding")
	flag.Parse()

	if cfg.DBDriver == db.DriverPostgres && cfg.DatabaseURL == "" {
		logger.Fatal().Msg("DATABASE_URL is required when DB_DRIVER=pgx")
	}

	store, err := db.OpenWritable(cfg.DBDriver, cfg.DSN())
	if err != nil {
		logger.Fatal().Err(err).Msg("open store")
	}
	defer store.Close()

	if err := initAndSeed(context.Background(), logger, store, cfg.DBDriver, *seedPath, *schemaOnly); err != nil {
		logger.Error().Err(err).Msg("dbtool failed")
		store.Close()
		os.Exit(1)
	}
}

func initAndSeed(ctx context.Context, logger zerolog.Logger, store *sql.DB, driver, seedPath string, schemaOnly bool) error {
	logger.Info().Msg("Initializing database schema...")
	if err := repositories.InitSchema(ctx, store); err != nil {
		return err
	}
	logger.Info().Msg("Schema ready.")

	if schemaOnly {
		return nil
	}

	logger.Info().Str("seed", seedPath).Msg("Seeding database...")
	if err := repositories.SeedFromFile(ctx, store, driver, seedPath); err != nil {
		return err
	}
	logger.Info().Msg("Seeding complete.")

	return nil
}
