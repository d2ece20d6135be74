// Package sqlite provides a ModelStore backed by a SQLite database file.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/aretw0/ostia/pkg/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS models (
	id            TEXT PRIMARY KEY,
	name          TEXT NOT NULL DEFAULT '',
	alphabet_size INTEGER NOT NULL,
	state_count   INTEGER NOT NULL,
	created_at    TEXT NOT NULL,
	body          TEXT NOT NULL
);
`

// Store implements ports.ModelStore on SQLite. The model is kept as a JSON
// body; a few columns are duplicated for inspection with the sqlite shell.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the database at path and runs migrations.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save inserts or replaces the model.
func (s *Store) Save(ctx context.Context, model *domain.Model) error {
	if model.ID == "" {
		return fmt.Errorf("model ID cannot be empty")
	}
	body, err := json.Marshal(model)
	if err != nil {
		return fmt.Errorf("marshal model: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO models (id, name, alphabet_size, state_count, created_at, body)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			alphabet_size = excluded.alphabet_size,
			state_count = excluded.state_count,
			created_at = excluded.created_at,
			body = excluded.body`,
		model.ID, model.Name, model.AlphabetSize, len(model.States),
		model.CreatedAt.UTC().Format(time.RFC3339Nano), string(body),
	)
	if err != nil {
		return fmt.Errorf("save model: %w", err)
	}
	return nil
}

// Load retrieves a model by ID.
func (s *Store) Load(ctx context.Context, id string) (*domain.Model, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT body FROM models WHERE id = ?`, id).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrModelNotFound
		}
		return nil, fmt.Errorf("load model: %w", err)
	}

	var model domain.Model
	if err := json.Unmarshal([]byte(body), &model); err != nil {
		return nil, fmt.Errorf("unmarshal model: %w", err)
	}
	return &model, nil
}

// Delete removes a model.
func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM models WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete model: %w", err)
	}
	return nil
}

// List returns all model IDs, oldest first.
func (s *Store) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM models ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan model id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
