package storage

import (
	"context"
	"encoding/json"
	"fmt"
)

// Size returns the total byte size of all stored serialized values.
func (s *Store) Size(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(LENGTH(value)), 0) FROM records`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("measure storage: %w", err)
	}
	return total, nil
}

// Export returns every record keyed by namespace, decoded as raw JSON.
// Intended for backup and debugging, not steady-state use.
func (s *Store) Export(ctx context.Context) (map[string]json.RawMessage, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM records`)
	if err != nil {
		return nil, fmt.Errorf("export storage: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	out := make(map[string]json.RawMessage)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan export row: %w", err)
		}
		out[key] = json.RawMessage(value)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate export rows: %w", err)
	}
	return out, nil
}

// Import writes every entry of data into the store, overwriting existing
// keys. The inverse of Export.
func (s *Store) Import(ctx context.Context, data map[string]json.RawMessage) error {
	for key, value := range data {
		if _, err := s.db.ExecContext(ctx, `
			INSERT INTO records (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value
		`, key, string(value)); err != nil {
			return fmt.Errorf("import %s: %w", key, err)
		}
	}
	return nil
}
