// Package db persists deck run history in SQLite.
//
// database.go manages the database lifecycle: open with WAL mode, migrate,
// close.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
)

// Database owns the SQLite connection for run history.
//
// Usage:
//
//	database, err := db.NewDatabase("/path/to/deckgen.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer database.Close()
//	runs := db.NewRunRepository(database)
type Database struct {
	conn *sql.DB
	path string
}

// NewDatabase opens (creating if necessary) the run-history database and
// applies pending migrations.
func NewDatabase(path string) (*Database, error) {
	if path == "" {
		return nil, fmt.Errorf("database path is required")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	conn, err := NewSQLiteConnectionWithDefaults(path)
	if err != nil {
		return nil, err
	}

	if err := MigrateUp(conn); err != nil {
		conn.Close()
		return nil, err
	}

	return &Database{conn: conn, path: path}, nil
}

// DB returns the underlying connection for repositories.
func (d *Database) DB() *sql.DB {
	return d.conn
}

// Path returns the database file path.
func (d *Database) Path() string {
	return d.path
}

// Close closes the database connection.
func (d *Database) Close() error {
	if d == nil || d.conn == nil {
		return nil
	}
	return d.conn.Close()
}
