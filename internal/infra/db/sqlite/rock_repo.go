package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	domain "github.com/litholens/prospector/internal/domain/rocks"
)

type RockRepository struct {
	db *sql.DB
}

func NewRockRepository(db *sql.DB) *RockRepository {
	return &RockRepository{db: db}
}

// Migrate creates the collection table when missing.
func Migrate(ctx context.Context, db *sql.DB) error {
	const q = `
CREATE TABLE IF NOT EXISTS saved_rocks (
  id        TEXT PRIMARY KEY,
  saved_at  INTEGER NOT NULL,
  name      TEXT NOT NULL,
  category  TEXT NOT NULL,
  data      TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_saved_rocks_saved_at ON saved_rocks (saved_at DESC);`
	_, err := db.ExecContext(ctx, q)
	return err
}

// Insert stores one saved rock, entity as a JSON column plus indexed fields.
func (r *RockRepository) Insert(ctx context.Context, s domain.SavedRock) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode saved rock: %w", err)
	}
	savedAt := s.Date
	if savedAt == 0 {
		savedAt = time.Now().UnixMilli()
	}

	const q = `
INSERT INTO saved_rocks (id, saved_at, name, category, data)
VALUES (?,?,?,?,?)
ON CONFLICT (id) DO UPDATE SET
  saved_at=excluded.saved_at,
  name=excluded.name,
  category=excluded.category,
  data=excluded.data;
`
	_, err = r.db.ExecContext(ctx, q, s.ID, savedAt, s.Name, s.Category, string(data))
	return err
}

// List returns the whole collection newest-first.
func (r *RockRepository) List(ctx context.Context) ([]domain.SavedRock, error) {
	const q = `
SELECT data FROM saved_rocks
ORDER BY saved_at DESC, id DESC;
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.SavedRock{}
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var s domain.SavedRock
		if err := json.Unmarshal([]byte(raw), &s); err != nil {
			return nil, fmt.Errorf("decode saved rock: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Delete removes a rock by id; absent ids are a no-op.
func (r *RockRepository) Delete(ctx context.Context, id domain.RockID) error {
	const q = `DELETE FROM saved_rocks WHERE id = ?;`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}
