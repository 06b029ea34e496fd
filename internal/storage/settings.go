package storage

import (
	"database/sql"
	"errors"
	"fmt"
)

// SettingsStore reads and writes the app_settings key-value namespace.
type SettingsStore struct {
	db *DB
}

// NewSettingsStore creates a SettingsStore.
func NewSettingsStore(db *DB) *SettingsStore {
	return &SettingsStore{db: db}
}

// Get returns the value for key, or "" when the key is absent.
func (s *SettingsStore) Get(key string) (string, error) {
	var value string
	err := s.db.Conn().QueryRow(
		`SELECT value FROM app_settings WHERE key = ?`, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read setting %q: %w", key, err)
	}
	return value, nil
}

// Set upserts the value for key.
func (s *SettingsStore) Set(key, value string) error {
	_, err := s.db.Conn().Exec(
		`INSERT INTO app_settings (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("write setting %q: %w", key, err)
	}
	return nil
}
