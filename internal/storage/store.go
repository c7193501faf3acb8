// Package storage is the durable local key-value store. Values are JSON
// encoded into a single sqlite table keyed by namespace. Reads fail soft: a
// missing or undecodable value is reported as absent (and logged), while
// write failures always propagate so data is never silently dropped.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	_ "modernc.org/sqlite"
)

// Store is a sqlite-backed persistent key-value store.
type Store struct {
	db  *sql.DB
	log zerolog.Logger
	now func() time.Time
}

// Open creates (if needed) and opens the store at path. Pass ":memory:" for
// an ephemeral store in tests.
func Open(path string, log zerolog.Logger) (*Store, error) {
	dsn := path
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("create storage directory: %w", err)
		}
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	db.SetMaxOpenConns(1) // sqlite allows a single writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS records (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init storage schema: %w", err)
	}

	return &Store{db: db, log: log, now: time.Now}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Set stores value under key, JSON-encoded, replacing any previous value.
func (s *Store) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO records (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, string(data))
	if err != nil {
		return fmt.Errorf("store %s: %w", key, err)
	}
	return nil
}

// GetRaw returns the stored JSON for key. Absent keys and read failures both
// yield ok=false; read failures are logged but never surfaced, so callers can
// treat the store as best-effort on the read path.
func (s *Store) GetRaw(ctx context.Context, key string) (json.RawMessage, bool) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM records WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false
	}
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("storage read failed")
		return nil, false
	}
	return json.RawMessage(raw), true
}

// Get decodes the value stored under key into T. A value that fails to
// decode is treated the same as an absent one: corrupt and missing entries
// are indistinguishable to callers, but corruption is logged.
func Get[T any](ctx context.Context, s *Store, key string) (T, bool) {
	var out T
	raw, ok := s.GetRaw(ctx, key)
	if !ok {
		return out, false
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("storage value undecodable, treating as absent")
		return out, false
	}
	return out, true
}

// Remove deletes the value under key. Removing an absent key is a no-op.
func (s *Store) Remove(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM records WHERE key = ?`, key); err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

// Clear deletes every record in the store.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return fmt.Errorf("clear storage: %w", err)
	}
	return nil
}
