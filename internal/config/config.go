package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Runtime settings shared by the server and the dbtool.
type Config struct {
	DBDriver    string
	DBPath      string
	DatabaseURL string
	Port        string
	LogLevel    string
	LogFormat   string
	SeedPath    string
}

// Load reads an optional .env file and then the process environment.
// The returned bool reports whether a .env file was found.
func Load(files ...string) (Config, bool) {
	found := godotenv.Load(files...) == nil

	cfg := Config{
		DBDriver:    strings.ToLower(Get("DB_DRIVER", "sqlite")),
		DBPath:      Get("DB_PATH", "data.db"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Port:        Get("PORT", "8080"),
		LogLevel:    Get("LOG_LEVEL", "info"),
		LogFormat:   Get("LOG_FORMAT", "json"),
		SeedPath:    Get("SEED_PATH", "data/seeds/stations.yaml"),
	}
	return cfg, found
}

// DSN returns the data source name for the configured driver.
func (c Config) DSN() string {
	if c.DBDriver == "pgx" {
		return c.DatabaseURL
	}
	return c.DBPath
}

// Get returns the trimmed value of key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
