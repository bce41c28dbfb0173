package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/americano/projectsync/config"
	"github.com/americano/projectsync/internal/bootstrap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the projects schema for the configured store",
	Long: `Create the projects table for the SQL backends (postgres, sqlite).
The statement is idempotent. The redis backend needs no schema.

Examples:
  # Migrate the database named by DB_DSN
  STORE_BACKEND=postgres DB_DSN=postgres://app@localhost/projects projectsync migrate

  # Migrate a local SQLite file
  STORE_BACKEND=sqlite SQLITE_PATH=./projects.db projectsync migrate`,
	RunE: runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
	defer cancel()

	if err := bootstrap.MigrateSchema(ctx, cfg); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "schema ready for %s store\n", cfg.Store.Backend)
	return nil
}
