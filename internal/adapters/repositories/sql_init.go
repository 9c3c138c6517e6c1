package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"fuel-prices-web/internal/platform/db"

	"gopkg.in/yaml.v3"
)

// Initialize the station store schema. Statements are valid for both
// SQLite and PostgreSQL.
func InitSchema(ctx context.Context, store *sql.DB) error {
	if store == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := store.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createInfoQuery := `
	CREATE TABLE IF NOT EXISTS info (
		id INTEGER PRIMARY KEY,
		name TEXT,
		address TEXT,
		timetable TEXT,
		locality TEXT NOT NULL,
		latitude DOUBLE PRECISION,
		longitude DOUBLE PRECISION
	);
	`

	createPricesQuery := `
	CREATE TABLE IF NOT EXISTS prices (
		id INTEGER PRIMARY KEY,
		gasoline95 DOUBLE PRECISION,
		gasoline98 DOUBLE PRECISION,
		diesel DOUBLE PRECISION,
		diesel_premium DOUBLE PRECISION,
		"dieselB" DOUBLE PRECISION
	);
	`

	createMetadataQuery := `
	CREATE TABLE IF NOT EXISTS metadata (
		key TEXT PRIMARY KEY,
		value TEXT
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_info_locality
	ON info(locality);
	`

	statements := []string{
		createInfoQuery,
		createPricesQuery,
		createMetadataQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Optional price columns of one station; nil is stored as NULL.
type PriceSeed struct {
	Gasoline95    *float64 `yaml:"gasoline95"`
	Gasoline98    *float64 `yaml:"gasoline98"`
	Diesel        *float64 `yaml:"diesel"`
	DieselPremium *float64 `yaml:"diesel_premium"`
	DieselB       *float64 `yaml:"dieselB"`
}

type StationSeed struct {
	ID        int        `yaml:"id"`
	Name      string     `yaml:"name"`
	Address   string     `yaml:"address"`
	Timetable string     `yaml:"timetable"`
	Locality  string     `yaml:"locality"`
	Latitude  float64    `yaml:"latitude"`
	Longitude float64    `yaml:"longitude"`
	Prices    *PriceSeed `yaml:"prices"`
}

// SeedFile is the fixture format read by the dbtool. JSON fixtures
// parse as well since YAML is a superset of JSON.
type SeedFile struct {
	LastUpdate string        `yaml:"last_update"`
	Stations   []StationSeed `yaml:"stations"`
}

// Read and parse a seed fixture.
func LoadSeedFile(path string) (SeedFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return SeedFile{}, fmt.Errorf("load seed: read %q: %w", path, err)
	}

	var data SeedFile
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return SeedFile{}, fmt.Errorf("load seed: parse %q: %w", path, err)
	}

	return data, nil
}

// Populate the store from a seed fixture in a single transaction.
// Rows are upserted by id, so seeding is repeatable.
func Seed(ctx context.Context, store *sql.DB, driver string, data SeedFile) error {
	if store == nil {
		return errors.New("seed stations: DB is nil")
	}

	seen := make(map[int]struct{}, len(data.Stations))
	for i, s := range data.Stations {
		if s.ID <= 0 {
			return fmt.Errorf("seed stations: invalid id at index %d: %d", i+1, s.ID)
		}
		if strings.TrimSpace(s.Locality) == "" {
			return fmt.Errorf("seed stations: station %d: locality cannot be empty", s.ID)
		}
		if _, ok := seen[s.ID]; ok {
			return fmt.Errorf("seed stations: duplicate id %d", s.ID)
		}
		seen[s.ID] = struct{}{}
	}

	tx, err := store.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed stations: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	infoStmt, err := tx.PrepareContext(ctx, rebind(driver, `
	INSERT INTO info (id, name, address, timetable, locality, latitude, longitude)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (id) DO UPDATE
	SET name = EXCLUDED.name,
		address = EXCLUDED.address,
		timetable = EXCLUDED.timetable,
		locality = EXCLUDED.locality,
		latitude = EXCLUDED.latitude,
		longitude = EXCLUDED.longitude;
	`))
	if err != nil {
		return fmt.Errorf("seed stations: prepare info insert: %w", err)
	}
	defer infoStmt.Close()

	priceStmt, err := tx.PrepareContext(ctx, rebind(driver, `
	INSERT INTO prices (id, gasoline95, gasoline98, diesel, diesel_premium, "dieselB")
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT (id) DO UPDATE
	SET gasoline95 = EXCLUDED.gasoline95,
		gasoline98 = EXCLUDED.gasoline98,
		diesel = EXCLUDED.diesel,
		diesel_premium = EXCLUDED.diesel_premium,
		"dieselB" = EXCLUDED."dieselB";
	`))
	if err != nil {
		return fmt.Errorf("seed stations: prepare prices insert: %w", err)
	}
	defer priceStmt.Close()

	for _, s := range data.Stations {
		if _, err := infoStmt.ExecContext(ctx,
			s.ID, s.Name, s.Address, s.Timetable, strings.TrimSpace(s.Locality), s.Latitude, s.Longitude,
		); err != nil {
			return fmt.Errorf("seed stations: insert info id=%d: %w", s.ID, err)
		}

		if s.Prices == nil {
			continue
		}
		p := s.Prices
		if _, err := priceStmt.ExecContext(ctx,
			s.ID, p.Gasoline95, p.Gasoline98, p.Diesel, p.DieselPremium, p.DieselB,
		); err != nil {
			return fmt.Errorf("seed stations: insert prices id=%d: %w", s.ID, err)
		}
	}

	if lu := strings.TrimSpace(data.LastUpdate); lu != "" {
		_, err := tx.ExecContext(ctx, rebind(driver, `
		INSERT INTO metadata (key, value)
		VALUES ('last_update', ?)
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value;
		`), lu)
		if err != nil {
			return fmt.Errorf("seed stations: upsert last_update: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed stations: commit tx: %w", err)
	}

	return nil
}

// Read a fixture from disk and seed it.
func SeedFromFile(ctx context.Context, store *sql.DB, driver, path string) error {
	data, err := LoadSeedFile(path)
	if err != nil {
		return err
	}
	return Seed(ctx, store, driver, data)
}

// rebind rewrites ? placeholders to $n for PostgreSQL.
func rebind(driver, query string) string {
	if driver != db.DriverPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
