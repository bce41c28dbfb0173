package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Open opens a SQLite database at path (":memory:" for a private in-memory
// database). The pool is limited to one connection: SQLite allows a single
// writer, and an in-memory database exists only on the connection that
// created it.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS projects (
    id                 INTEGER PRIMARY KEY AUTOINCREMENT,
    title              TEXT NOT NULL CHECK (length(trim(title)) > 0 AND length(title) <= 100),
    description        TEXT CHECK (description IS NULL OR length(description) <= 500),
    status             TEXT NOT NULL CHECK (length(trim(status)) > 0 AND length(status) <= 50),
    responsible_person TEXT NOT NULL CHECK (length(trim(responsible_person)) > 0 AND length(responsible_person) <= 100),
    created_date       TIMESTAMP NOT NULL,
    last_modified_date TIMESTAMP NOT NULL
);
`

// Migrate creates the projects table if it does not exist.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate projects schema: %w", err)
	}
	return nil
}
