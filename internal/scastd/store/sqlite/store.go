// Package sqlite provides a SQLite implementation of the store.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/slidecast/slidecast/internal/scastd/store"
)

// Store is a SQLite implementation of store.Store.
type Store struct {
	db *sql.DB
}

// NewMemoryStore creates an in-memory SQLite store.
func NewMemoryStore() (*Store, error) {
	return newStore(":memory:")
}

// NewFileStore creates a file-based SQLite store.
func NewFileStore(path string) (*Store, error) {
	return newStore(path)
}

func newStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Config methods

func (s *Store) GetConfig(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `
		SELECT value FROM config WHERE key = ?
	`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", store.ErrNotFound{Resource: "config", Key: key}
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (s *Store) SetConfig(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO config (key, value, updated_at)
		VALUES (?, ?, ?)
	`, key, value, time.Now())
	return err
}

func (s *Store) DeleteConfig(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM config WHERE key = ?", key)
	return err
}

// Snapshot methods

func (s *Store) SaveSnapshot(ctx context.Context, snap *store.Snapshot) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO playlist_snapshot (id, token, data, saved_at)
		VALUES (1, ?, ?, ?)
	`, snap.Token, snap.Data, snap.SavedAt)
	return err
}

func (s *Store) GetSnapshot(ctx context.Context) (*store.Snapshot, error) {
	var snap store.Snapshot
	err := s.db.QueryRowContext(ctx, `
		SELECT token, data, saved_at FROM playlist_snapshot WHERE id = 1
	`).Scan(&snap.Token, &snap.Data, &snap.SavedAt)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound{Resource: "playlist snapshot"}
	}
	if err != nil {
		return nil, err
	}
	return &snap, nil
}
