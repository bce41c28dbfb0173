package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS projects (
    id                 BIGSERIAL PRIMARY KEY,
    title              VARCHAR(100) NOT NULL CHECK (btrim(title) <> ''),
    description        VARCHAR(500),
    status             VARCHAR(50)  NOT NULL CHECK (btrim(status) <> ''),
    responsible_person VARCHAR(100) NOT NULL CHECK (btrim(responsible_person) <> ''),
    created_date       TIMESTAMPTZ  NOT NULL,
    last_modified_date TIMESTAMPTZ  NOT NULL,
    CONSTRAINT projects_dates_ordered CHECK (created_date <= last_modified_date)
);
`

// Migrate creates the projects table if it does not exist.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate projects schema: %w", err)
	}
	return nil
}
