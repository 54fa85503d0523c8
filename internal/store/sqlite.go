package store

import (
	"context"
	"database/sql"
	"fmt"
)

// SQLite is a Backend over the records table.
type SQLite struct {
	DB *sql.DB
}

// NewSQLite returns a Backend that stores records in db.
func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{DB: db}
}

// Get returns the value under key.
func (s *SQLite) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.DB.QueryRowContext(ctx,
		`SELECT value FROM records WHERE key = ?`, key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("getting record %s: %w", key, err)
	}
	return value, true, nil
}

// Set overwrites the value under key.
func (s *SQLite) Set(ctx context.Context, key, value string) error {
	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO records (key, value) VALUES (?, ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("setting record %s: %w", key, err)
	}
	return nil
}

// SetNX stores value only if key is absent.
func (s *SQLite) SetNX(ctx context.Context, key, value string) (bool, error) {
	result, err := s.DB.ExecContext(ctx,
		`INSERT OR IGNORE INTO records (key, value) VALUES (?, ?)`,
		key, value,
	)
	if err != nil {
		return false, fmt.Errorf("setting record %s: %w", key, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking record %s: %w", key, err)
	}
	return n > 0, nil
}

// Delete removes keys.
func (s *SQLite) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		if _, err := s.DB.ExecContext(ctx, `DELETE FROM records WHERE key = ?`, key); err != nil {
			return fmt.Errorf("deleting record %s: %w", key, err)
		}
	}
	return nil
}
