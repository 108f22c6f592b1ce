package database

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vancomm/minesweeper-daily/internal/config"
)

func Connect(ctx context.Context, cfg config.Database) (*pgxpool.Pool, error) {
	poolConfig, err := cfg.PoolConfig()
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to reach database: %w", err)
	}
	return pool, nil
}

// Migrate applies every pending up migration found at the root of
// migrations and reports the resulting version.
func Migrate(cfg config.Database, migrations fs.FS) (version uint, dirty bool, err error) {
	source, err := iofs.New(migrations, ".")
	if err != nil {
		return 0, false, fmt.Errorf("unable to create migrations iofs: %w", err)
	}
	migrator, err := migrate.NewWithSourceInstance("iofs", source, cfg.ConnString())
	if err != nil {
		return 0, false, fmt.Errorf("unable to create migrator: %w", err)
	}
	defer migrator.Close()

	if err := migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, false, fmt.Errorf("failed to migrate database: %w", err)
	}
	return migrator.Version()
}

func ConnectAndMigrate(ctx context.Context, cfg config.Database, migrations fs.FS) (*pgxpool.Pool, error) {
	if _, _, err := Migrate(cfg, migrations); err != nil {
		return nil, err
	}
	return Connect(ctx, cfg)
}
