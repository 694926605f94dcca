package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
)

const migrationsLock = "leaguerats_migrations_lock"

// RunMigrations applies all pending migrations to the database.
func RunMigrations(db *sql.DB, migrationsPath string, databaseName string, logger zerolog.Logger) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		databaseName,
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	// Acquire an advisory lock to prevent concurrent migrations between processes.
	var lockAcquired bool
	err = db.QueryRow("SELECT pg_try_advisory_lock(hashtext($1))", migrationsLock).Scan(&lockAcquired)
	if err != nil {
		return err
	}

	if !lockAcquired {
		logger.Info().Msg("another process is already running migrations, skipping")
		return nil
	}

	upErr := m.Up()

	var lockReleased bool
	err = db.QueryRow("SELECT pg_advisory_unlock(hashtext($1))", migrationsLock).Scan(&lockReleased)

	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", upErr)
	}
	if err != nil || !lockReleased {
		return fmt.Errorf("could not release advisory lock: %v", err)
	}

	version, dirty, _ := m.Version()
	logger.Info().Uint("version", version).Bool("dirty", dirty).Msg("migrations applied")

	return nil
}
