package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/americano/projectsync/config"
	"github.com/americano/projectsync/internal/projects/repository"
	"github.com/americano/projectsync/internal/storage/postgres"
	"github.com/americano/projectsync/internal/storage/redis"
	"github.com/americano/projectsync/internal/storage/sqlite"
)

// OpenStore connects the configured backend and returns the project store
// with a function that releases its connections.
func OpenStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.Store, func() error, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Store.Backend {
	case config.BackendPostgres:
		db, err := postgres.NewConnection(ctx, &cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("postgres connect: %w", err)
		}
		if cfg.Store.AutoMigrate {
			if err := postgres.Migrate(ctx, db); err != nil {
				db.Close()
				return nil, nil, err
			}
		}
		logger.Info("store ready", zap.String("backend", cfg.Store.Backend), zap.String("driver", cfg.Database.Driver))
		return repository.NewProjectRepository(db, repository.Postgres{}), db.Close, nil

	case config.BackendSQLite:
		db, err := sqlite.Open(cfg.SQLite.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("sqlite open: %w", err)
		}
		if cfg.Store.AutoMigrate {
			if err := sqlite.Migrate(ctx, db); err != nil {
				db.Close()
				return nil, nil, err
			}
		}
		logger.Info("store ready", zap.String("backend", cfg.Store.Backend), zap.String("path", cfg.SQLite.Path))
		return repository.NewProjectRepository(db, repository.SQLite{}), db.Close, nil

	case config.BackendRedis:
		client, err := redis.NewClient(ctx, &cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("store ready", zap.String("backend", cfg.Store.Backend), zap.String("addr", cfg.Redis.Addr))
		return repository.NewRedisProjectRepository(client), client.Close, nil
	}

	return nil, nil, fmt.Errorf("unsupported store backend %q", cfg.Store.Backend)
}

// MigrateSchema creates the projects schema for the SQL backends. Redis needs
// no schema and is a no-op.
func MigrateSchema(ctx context.Context, cfg *config.Config) error {
	var (
		db      *sql.DB
		err     error
		migrate func(context.Context, *sql.DB) error
	)

	switch cfg.Store.Backend {
	case config.BackendPostgres:
		db, err = postgres.NewConnection(ctx, &cfg.Database)
		migrate = postgres.Migrate
	case config.BackendSQLite:
		db, err = sqlite.Open(cfg.SQLite.Path)
		migrate = sqlite.Migrate
	case config.BackendRedis:
		return nil
	default:
		return fmt.Errorf("unsupported store backend %q", cfg.Store.Backend)
	}
	if err != nil {
		return err
	}
	defer db.Close()

	return migrate(ctx, db)
}
