package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// schema is the SQL schema for initializing a new planner database.
const schema = `
-- Enable WAL mode for better concurrent read performance
PRAGMA journal_mode=WAL;

-- Key-value blobs; the task list lives under a single key
CREATE TABLE IF NOT EXISTS kv (
    key        TEXT PRIMARY KEY,
    value      BLOB NOT NULL,
    updated_at TEXT NOT NULL
);
`

// KV is a key-value blob store backed by a single SQLite database file.
type KV struct {
	db *sql.DB
}

// Open opens (creating if necessary) the SQLite database at path and
// initializes the schema.
func Open(path string) (*KV, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &KV{db: db}, nil
}

// Get returns the value stored under key. The boolean is false when the key
// does not exist.
func (kv *KV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := kv.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

// Put overwrites the value stored under key.
func (kv *KV) Put(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	_, err := kv.db.ExecContext(ctx, query, key, value, time.Now().UTC().Format(time.RFC3339))
	return err
}

// Close closes the database connection.
func (kv *KV) Close() error {
	return kv.db.Close()
}
