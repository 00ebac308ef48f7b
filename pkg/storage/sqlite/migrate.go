package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/kasuboski/mediaindex/pkg/logger"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// RunMigrations brings the schema up to the latest embedded migration
func (s *SQLite) RunMigrations(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := runMigrations(s.db)
	if err != nil {
		return err
	}

	version, dirty, err := s.GetMigrationVersion()
	if err != nil {
		return err
	}
	logger.FromCtx(ctx).Debugw("database migrated", "version", version, "dirty", dirty)

	return nil
}

// runMigrations executes pending database migrations
func runMigrations(db *sql.DB) error {
	sourceDriver, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	dbDriver, err := sqlite3.WithInstance(db, &sqlite3.Config{
		MigrationsTable: "schema_migrations",
		NoTxWrap:        true,
	})
	if err != nil {
		return fmt.Errorf("failed to create database driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "sqlite3", dbDriver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// GetMigrationVersion returns the current migration version and dirty state
func (s *SQLite) GetMigrationVersion() (version uint, dirty bool, err error) {
	var v sql.NullInt64
	var d bool
	query := `SELECT version, dirty FROM schema_migrations LIMIT 1`
	err = s.db.QueryRow(query).Scan(&v, &d)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return uint(v.Int64), d, nil
}
