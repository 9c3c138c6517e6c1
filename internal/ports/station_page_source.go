package ports

import (
	"context"
	"fuel-prices-web/internal/domain"
)

// Port: a boundary for loading everything the station page shows.
type StationPageSource interface {
	// Load stations, last update, and locality averages in one pass.
	LoadStationPage(ctx context.Context) (*domain.StationPage, error)
}
