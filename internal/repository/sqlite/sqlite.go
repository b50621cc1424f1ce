package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/simpleweather/backend/internal/domain"

	_ "modernc.org/sqlite"
)

// Store implements domain.DataRepository on a local SQLite file
// (pure Go driver modernc.org/sqlite). It plays the role of the
// private, app-scoped preference file.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and applies the schema
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to open %s: %w", path, err)
	}

	// WAL keeps readers off the writer's back for small writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		log.Println("sqlite: warning: could not set WAL mode:", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS preferences (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS render_history (
		id          TEXT PRIMARY KEY,
		city        TEXT NOT NULL,
		label       TEXT NOT NULL,
		details     TEXT NOT NULL,
		temperature TEXT NOT NULL,
		updated     TEXT NOT NULL,
		icon        TEXT NOT NULL,
		rendered_at INTEGER NOT NULL
	);`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: failed to apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// GetCity returns the stored city or the default one
func (s *Store) GetCity(ctx context.Context) (string, error) {
	var city string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM preferences WHERE key = ?`, domain.CityPreferenceKey).Scan(&city)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.DefaultCity, nil
	}
	if err != nil {
		return domain.DefaultCity, fmt.Errorf("sqlite: failed to read city: %w", err)
	}
	return city, nil
}

// SetCity writes the preference; autocommit means it is durable on return
func (s *Store) SetCity(ctx context.Context, city string) error {
	_, err := s.db.ExecContext(ctx, `INSERT OR REPLACE INTO preferences(key, value) VALUES(?, ?)`,
		domain.CityPreferenceKey, city)
	if err != nil {
		return fmt.Errorf("sqlite: failed to save city: %w", err)
	}
	return nil
}

func (s *Store) SaveRender(ctx context.Context, rec domain.RenderRecord) error {
	_, err := s.db.ExecContext(ctx, `INSERT OR REPLACE INTO render_history(id, city, label, details, temperature, updated, icon, rendered_at) VALUES(?,?,?,?,?,?,?,?)`,
		rec.ID, rec.City, rec.Model.City, rec.Model.Details, rec.Model.Temperature,
		rec.Model.Updated, string(rec.Model.Icon), rec.RenderedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("sqlite: failed to save render: %w", err)
	}
	return nil
}

func (s *Store) GetHistoricalRenders(ctx context.Context, from, to time.Time) ([]domain.RenderRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, city, label, details, temperature, updated, icon, rendered_at
		FROM render_history WHERE rendered_at BETWEEN ? AND ? ORDER BY rendered_at DESC LIMIT 100`,
		from.UnixNano(), to.UnixNano())
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to query render history: %w", err)
	}
	defer rows.Close()

	out := make([]domain.RenderRecord, 0)
	for rows.Next() {
		var rec domain.RenderRecord
		var icon string
		var ts int64
		if err := rows.Scan(&rec.ID, &rec.City, &rec.Model.City, &rec.Model.Details, &rec.Model.Temperature,
			&rec.Model.Updated, &icon, &ts); err != nil {
			return nil, fmt.Errorf("sqlite: failed to scan render row: %w", err)
		}
		rec.Model.Icon = domain.Icon(icon)
		rec.RenderedAt = time.Unix(0, ts)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *Store) Health(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("sqlite: health check failed: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
