// Package session persists the client's local state (session, preferences)
// in a small SQLite key-value table.
package session

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY,
	value BLOB NOT NULL
);`

// OpenDatabase opens (and if needed creates) the local state database.
func OpenDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open local database")
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()

		return nil, errors.Wrap(err, "failed to create kv table")
	}

	return db, nil
}
