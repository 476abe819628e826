package localstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Store is a synchronous key-value text store: one string value per key,
// read and written whole. It is the persistence analog of the browser's
// localStorage; writes are last-write-wins across concurrent users of the
// same file (single-client assumption).
type Store interface {
	// GetItem returns the value under key and whether the key exists.
	GetItem(ctx context.Context, key string) (string, bool, error)
	// SetItem replaces the value under key, creating it if absent.
	SetItem(ctx context.Context, key, value string) error
	// RemoveItem deletes the key; removing a missing key is a no-op.
	RemoveItem(ctx context.Context, key string) error
}

type sqlStore struct {
	db *sql.DB
}

// NewSQLStore returns a Store backed by the storage table of the given
// database, a single local sqlite file in practice.
func NewSQLStore(db *sql.DB) Store {
	return &sqlStore{db: db}
}

// InitSchema creates the storage table if it does not exist.
func InitSchema(ctx context.Context, db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS storage (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)
	`
	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("create storage table: %w", err)
	}
	return nil
}

func (s *sqlStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	query := `SELECT value FROM storage WHERE key = ?`
	var value string
	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *sqlStore) SetItem(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO storage (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`
	_, err := s.db.ExecContext(ctx, query, key, value)
	return err
}

func (s *sqlStore) RemoveItem(ctx context.Context, key string) error {
	query := `DELETE FROM storage WHERE key = ?`
	_, err := s.db.ExecContext(ctx, query, key)
	return err
}
