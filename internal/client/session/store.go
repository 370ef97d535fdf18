package session

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
)

// KVStore is a string-keyed byte store over the local SQLite database.
type KVStore struct {
	db *sql.DB
}

// NewKVStore wraps an open database handle.
func NewKVStore(db *sql.DB) *KVStore {
	return &KVStore{db: db}
}

// Get returns the stored value, or nil when the key is absent.
func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get kv[%s]", key)
	}

	return value, nil
}

// Set stores the value, overwriting any previous one.
func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return errors.Wrapf(err, "failed to set kv[%s]", key)
	}

	return nil
}

// Delete removes the key. Deleting an absent key is a no-op.
func (s *KVStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return errors.Wrapf(err, "failed to delete kv[%s]", key)
	}

	return nil
}
