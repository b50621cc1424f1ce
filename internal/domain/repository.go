package domain

import (
	"context"
	"time"
)

// CityPreferenceStore persists the single "last chosen city" preference
type CityPreferenceStore interface {
	// GetCity returns the stored city or DefaultCity when unset
	GetCity(ctx context.Context) (string, error)

	// SetCity persists the city before returning
	SetCity(ctx context.Context, city string) error
}

// HistoryRepository keeps successful renders
type HistoryRepository interface {
	// SaveRender persists a render record
	SaveRender(ctx context.Context, rec RenderRecord) error

	// GetHistoricalRenders retrieves renders within a time range, newest first
	GetHistoricalRenders(ctx context.Context, from, to time.Time) ([]RenderRecord, error)
}

// DataRepository defines the interface for data persistence
// This follows the Dependency Inversion Principle - domain defines the interface
type DataRepository interface {
	CityPreferenceStore
	HistoryRepository

	// Health checks storage connectivity
	Health(ctx context.Context) error

	// Close releases the underlying storage
	Close() error
}
