package dbpkg

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // postgres driver
	_ "github.com/golang-migrate/migrate/v4/source/file"       // file source driver
)

// Migrate applies all up migrations found at sourceURL (file://...) to the database.
func Migrate(sourceURL, databaseURL string) error {
	if sourceURL == "" {
		return errors.New("migration source url cannot be empty")
	}

	if databaseURL == "" {
		return errors.New("database url cannot be empty")
	}

	m, err := migrate.New(sourceURL, databaseURL)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return fmt.Errorf("migration source: %w", sourceErr)
	}

	if dbErr != nil {
		return fmt.Errorf("migration database: %w", dbErr)
	}

	return nil
}
