// Package store persists clipstash data in a local SQLite database.
// It owns the schema (embedded golang-migrate migrations) and exposes one
// repository per table group: clips, folders, tags, snippets, paste stack.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = errors.New("store: not found")

// DB wraps the SQLite handle shared by all repositories.
type DB struct {
	*sql.DB
}

// Open opens (creating if necessary) the database at path and applies any
// pending migrations. The parent directory is created with restricted
// permissions.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	dsn := path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db := &DB{sqlDB}
	if err := RunMigrations(db); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// now returns the current time as an RFC 3339 UTC string, the canonical
// timestamp representation across all tables.
func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// truncate bounds s to max runes.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
