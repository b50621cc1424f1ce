package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/simpleweather/backend/internal/domain"
)

const schema = `
	CREATE TABLE IF NOT EXISTS preferences (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS render_history (
		id          UUID PRIMARY KEY,
		city        TEXT NOT NULL,
		label       TEXT NOT NULL,
		details     TEXT NOT NULL,
		temperature TEXT NOT NULL,
		updated     TEXT NOT NULL,
		icon        TEXT NOT NULL,
		rendered_at TIMESTAMPTZ NOT NULL
	);
`

// PostgresRepository implements domain.DataRepository
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Migrate creates the tables if they do not exist yet
func (r *PostgresRepository) Migrate(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("postgres: failed to apply schema: %w", err)
	}
	return nil
}

// GetCity returns the stored city or the default one
func (r *PostgresRepository) GetCity(ctx context.Context) (string, error) {
	var city string
	err := r.pool.QueryRow(ctx, `SELECT value FROM preferences WHERE key = $1`, domain.CityPreferenceKey).Scan(&city)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.DefaultCity, nil
	}
	if err != nil {
		return domain.DefaultCity, fmt.Errorf("postgres: failed to read city: %w", err)
	}
	return city, nil
}

// SetCity upserts the city preference; the statement commits before returning
func (r *PostgresRepository) SetCity(ctx context.Context, city string) error {
	query := `
		INSERT INTO preferences (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`
	if _, err := r.pool.Exec(ctx, query, domain.CityPreferenceKey, city); err != nil {
		return fmt.Errorf("postgres: failed to save city: %w", err)
	}
	return nil
}

// SaveRender persists a successful render
func (r *PostgresRepository) SaveRender(ctx context.Context, rec domain.RenderRecord) error {
	query := `
		INSERT INTO render_history (
			id, city, label, details, temperature, updated, icon, rendered_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		rec.ID, rec.City, rec.Model.City, rec.Model.Details, rec.Model.Temperature,
		rec.Model.Updated, string(rec.Model.Icon), rec.RenderedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to save render: %w", err)
	}

	return nil
}

// GetHistoricalRenders retrieves render history from PostgreSQL
func (r *PostgresRepository) GetHistoricalRenders(ctx context.Context, from, to time.Time) ([]domain.RenderRecord, error) {
	query := `
		SELECT id::text, city, label, details, temperature, updated, icon, rendered_at
		FROM render_history
		WHERE rendered_at BETWEEN $1 AND $2
		ORDER BY rendered_at DESC
		LIMIT 100
	`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query render history: %w", err)
	}
	defer rows.Close()

	results := make([]domain.RenderRecord, 0)
	for rows.Next() {
		var rec domain.RenderRecord
		var icon string
		err := rows.Scan(
			&rec.ID, &rec.City, &rec.Model.City, &rec.Model.Details, &rec.Model.Temperature,
			&rec.Model.Updated, &icon, &rec.RenderedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan render row: %w", err)
		}
		rec.Model.Icon = domain.Icon(icon)
		results = append(results, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to iterate render rows: %w", err)
	}

	return results, nil
}

// Health checks database connectivity
func (r *PostgresRepository) Health(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: health check failed: %w", err)
	}
	return nil
}

// Close closes the pool
func (r *PostgresRepository) Close() error {
	r.pool.Close()
	return nil
}
