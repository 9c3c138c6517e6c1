package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fuel-prices-web/internal/domain"
	"fuel-prices-web/internal/platform/db"
	"fuel-prices-web/internal/platform/obs"
)

const (
	listStationsQuery = `SELECT * FROM info JOIN prices ON info.id = prices.id`

	lastUpdateQuery = `SELECT value FROM metadata WHERE key = 'last_update'`

	localityAveragesQuery = `
	SELECT locality, AVG(latitude) AS lat, AVG(longitude) AS lng
	FROM info
	GROUP BY locality
	ORDER BY locality
	`
)

// querier is satisfied by *sql.DB, *sql.Conn and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SQL-backed implementation of the StationPageSource port.
// Every load opens its own handle and closes it before returning.
type SQLStationRepository struct {
	Driver string
	DSN    string
}

func NewSQLStationRepository(driver, dsn string) *SQLStationRepository {
	return &SQLStationRepository{Driver: driver, DSN: dsn}
}

// Load all values rendered on the station page over a single connection.
func (s *SQLStationRepository) LoadStationPage(ctx context.Context) (_ *domain.StationPage, err error) {
	defer obs.Time(ctx, "stations.LoadStationPage")(&err)

	store, err := db.Open(ctx, s.Driver, s.DSN)
	if err != nil {
		return nil, fmt.Errorf("load station page: %w", err)
	}
	defer store.Close()

	conn, err := store.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("load station page: acquire connection: %w", err)
	}
	defer conn.Close()

	stations, err := ListStations(ctx, conn)
	if err != nil {
		return nil, fmt.Errorf("load station page: %w", err)
	}

	lastUpdate, err := LastUpdate(ctx, conn)
	if err != nil {
		return nil, fmt.Errorf("load station page: %w", err)
	}

	localities, err := LocalityAverages(ctx, conn)
	if err != nil {
		return nil, fmt.Errorf("load station page: %w", err)
	}

	return &domain.StationPage{
		Stations:    stations,
		LastUpdate:  lastUpdate,
		Localidades: localities,
	}, nil
}

// Return every station that has a prices row, with all columns of both tables.
func ListStations(ctx context.Context, q querier) ([]domain.Station, error) {
	rows, err := q.QueryContext(ctx, listStationsQuery)
	if err != nil {
		return nil, fmt.Errorf("list stations: query info/prices: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("list stations: read columns: %w", err)
	}

	stations := make([]domain.Station, 0, 64)
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}

		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("list stations: scan row: %w", err)
		}

		// Both tables carry an id column; they are equal by the join condition.
		st := make(domain.Station, len(cols))
		for i, col := range cols {
			if b, ok := values[i].([]byte); ok {
				st[col] = string(b)
				continue
			}
			st[col] = values[i]
		}
		stations = append(stations, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stations: row iteration: %w", err)
	}

	return stations, nil
}

// Return the last_update metadata value, or "Unknown" when no row exists.
func LastUpdate(ctx context.Context, q querier) (string, error) {
	var value sql.NullString
	err := q.QueryRowContext(ctx, lastUpdateQuery).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.UnknownLastUpdate, nil
	}
	if err != nil {
		return "", fmt.Errorf("last update: query metadata table: %w", err)
	}

	if !value.Valid {
		return domain.UnknownLastUpdate, nil
	}
	return value.String, nil
}

// Return mean coordinates per locality, ordered by locality name.
func LocalityAverages(ctx context.Context, q querier) ([]domain.LocalityAverage, error) {
	rows, err := q.QueryContext(ctx, localityAveragesQuery)
	if err != nil {
		return nil, fmt.Errorf("locality averages: query info table: %w", err)
	}
	defer rows.Close()

	out := make([]domain.LocalityAverage, 0, 16)
	for rows.Next() {
		var locality sql.NullString
		var lat, lng sql.NullFloat64
		if err := rows.Scan(&locality, &lat, &lng); err != nil {
			return nil, fmt.Errorf("locality averages: scan row: %w", err)
		}
		out = append(out, domain.LocalityAverage{
			Locality: locality.String,
			Lat:      lat.Float64,
			Lng:      lng.Float64,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("locality averages: row iteration: %w", err)
	}

	return out, nil
}
