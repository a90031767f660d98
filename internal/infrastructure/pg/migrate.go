package pg

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"useful-api/internal/infrastructure/logx"

	"github.com/cenkalti/backoff/v4"
	"github.com/golang-migrate/migrate/v4"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var fs embed.FS

const (
	pingAttempts = 30
	pingInterval = 500 * time.Millisecond
)

// RunMigrations applies the embedded migrations. The database may still be
// starting, so the ping is retried for a while first.
func RunMigrations(ctx context.Context, db *DB) error {
	src, err := iofs.New(fs, "migrations")
	if err != nil {
		return fmt.Errorf("pg: migrate src: %w", err)
	}
	sqldb, err := sql.Open("pgx", db.Pool.Config().ConnString())
	if err != nil {
		return fmt.Errorf("pg: open sql db: %w", err)
	}
	defer sqldb.Close()

	if err := waitForDB(ctx, sqldb); err != nil {
		return err
	}
	driver, err := pgxmigrate.WithInstance(sqldb, &pgxmigrate.Config{})
	if err != nil {
		return fmt.Errorf("pg: migrate driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "pgx5", driver)
	if err != nil {
		return fmt.Errorf("pg: migrate init: %w", err)
	}
	defer m.Close()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("pg: migrate up: %w", err)
	}
	v, dirty, _ := m.Version()
	logx.L().Info("pg.migrated", zap.Uint("version", v), zap.Bool("dirty", dirty))
	return nil
}

func waitForDB(ctx context.Context, sqldb *sql.DB) error {
	b := backoff.WithMaxRetries(backoff.NewConstantBackOff(pingInterval), pingAttempts-1)
	err := backoff.Retry(func() error { return sqldb.PingContext(ctx) }, backoff.WithContext(b, ctx))
	if err != nil {
		return fmt.Errorf("pg: ping db: %w", err)
	}
	return nil
}
