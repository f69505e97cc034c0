package postgres

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
)

// MigrationStatus is the schema version recorded by the migrator.
type MigrationStatus struct {
	Version uint
	Dirty   bool
	// Applied is false on a database no migration has touched.
	Applied bool
}

// RunMigrations applies every pending migration.
func RunMigrations(databaseURL, migrationsPath string, logger zerolog.Logger) error {
	return withMigrate(databaseURL, migrationsPath, logger, func(m *migrate.Migrate) error {
		err := m.Up()
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info().Msg("database schema up to date")
			return nil
		}
		if err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
		logVersion(m, logger, "database migrations applied")
		return nil
	})
}

// RunMigrationsDown rolls back the last applied migration.
func RunMigrationsDown(databaseURL, migrationsPath string, logger zerolog.Logger) error {
	return withMigrate(databaseURL, migrationsPath, logger, func(m *migrate.Migrate) error {
		if err := m.Steps(-1); err != nil {
			return fmt.Errorf("roll back migration: %w", err)
		}
		logVersion(m, logger, "database migration rolled back")
		return nil
	})
}

// GetMigrationStatus reports the current schema version.
func GetMigrationStatus(databaseURL, migrationsPath string, logger zerolog.Logger) (MigrationStatus, error) {
	var status MigrationStatus
	err := withMigrate(databaseURL, migrationsPath, logger, func(m *migrate.Migrate) error {
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read schema version: %w", err)
		}
		status = MigrationStatus{Version: version, Dirty: dirty, Applied: true}
		return nil
	})
	return status, err
}

func withMigrate(databaseURL, migrationsPath string, logger zerolog.Logger, fn func(m *migrate.Migrate) error) error {
	m, err := migrate.New("file://"+migrationsPath, databaseURL)
	if err != nil {
		return fmt.Errorf("open migrations %s: %w", migrationsPath, err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if err := errors.Join(srcErr, dbErr); err != nil {
			logger.Warn().Err(err).Msg("close migrator")
		}
	}()

	return fn(m)
}

func logVersion(m *migrate.Migrate, logger zerolog.Logger, msg string) {
	version, dirty, err := m.Version()
	if err != nil {
		logger.Info().Msg(msg)
		return
	}
	logger.Info().Uint("version", version).Bool("dirty", dirty).Msg(msg)
}
