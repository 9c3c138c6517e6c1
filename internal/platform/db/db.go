package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

// ErrStoreNotFound is returned when the SQLite file does not exist.
var ErrStoreNotFound = errors.New("store not found")

// Open returns a read-only handle to the station store.
// For SQLite the file must already exist; it is never created here.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	switch driver {
	case "", DriverSQLite:
		if _, err := os.Stat(dsn); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("open store: sqlite database %q: %w", dsn, ErrStoreNotFound)
			}
			return nil, fmt.Errorf("open store: stat sqlite database %q: %w", dsn, err)
		}
		return open(ctx, DriverSQLite, readOnlyDSN(dsn))
	case DriverPostgres:
		return open(ctx, DriverPostgres, dsn)
	default:
		return nil, fmt.Errorf("open store: unsupported driver %q", driver)
	}
}

// OpenWritable opens the store for schema creation and seeding.
func OpenWritable(driver, dsn string) (*sql.DB, error) {
	if driver == "" {
		driver = DriverSQLite
	}
	if driver != DriverSQLite && driver != DriverPostgres {
		return nil, fmt.Errorf("open store: unsupported driver %q", driver)
	}

	db, err := open(context.Background(), driver, dsn)
	if err != nil {
		return nil, err
	}
	if driver == DriverPostgres {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(30 * time.Minute)
	}
	return db, nil
}

func open(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open store: open %s database: %w", driver, err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open store: verify %s connection: %w", driver, err)
	}

	return db, nil
}

func readOnlyDSN(path string) string {
	u := url.URL{Scheme: "file", Opaque: path, RawQuery: "mode=ro"}
	return u.String()
}
