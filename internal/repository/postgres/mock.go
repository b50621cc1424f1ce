package postgres

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/simpleweather/backend/internal/domain"
)

// MockRepository implements domain.DataRepository in memory for testing/demo mode
type MockRepository struct {
	mu      sync.RWMutex
	prefs   map[string]string
	renders []domain.RenderRecord
}

// NewMockRepository creates a new mock repository
func NewMockRepository() *MockRepository {
	return &MockRepository{
		prefs:   make(map[string]string),
		renders: make([]domain.RenderRecord, 0, 64),
	}
}

// GetCity returns the stored city or the default one
func (r *MockRepository) GetCity(ctx context.Context) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if city, ok := r.prefs[domain.CityPreferenceKey]; ok {
		return city, nil
	}
	return domain.DefaultCity, nil
}

// SetCity stores the city
func (r *MockRepository) SetCity(ctx context.Context, city string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prefs[domain.CityPreferenceKey] = city
	return nil
}

// SaveRender keeps the last 100 renders in memory
func (r *MockRepository) SaveRender(ctx context.Context, rec domain.RenderRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renders = append(r.renders, rec)
	if len(r.renders) > 100 {
		r.renders = r.renders[len(r.renders)-100:]
	}
	return nil
}

// GetHistoricalRenders returns renders within [from, to], newest first
func (r *MockRepository) GetHistoricalRenders(ctx context.Context, from, to time.Time) ([]domain.RenderRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.RenderRecord, 0, len(r.renders))
	for _, rec := range r.renders {
		if rec.RenderedAt.Before(from) || rec.RenderedAt.After(to) {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RenderedAt.After(out[j].RenderedAt) })
	return out, nil
}

// Health always returns nil in mock mode
func (r *MockRepository) Health(ctx context.Context) error {
	return nil
}

// Close is a no-op in mock mode
func (r *MockRepository) Close() error {
	return nil
}
