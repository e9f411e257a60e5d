package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // register postgres driver
	_ "github.com/golang-migrate/migrate/v4/source/file"       // register file source driver
)

// RunMigrations applies all pending schema migrations from migrationsDir,
// which may be a bare directory path or a source URL with an explicit scheme.
// Returns nil when the schema is already current.
func RunMigrations(dsn string, migrationsDir string) error {
	m, err := migrate.New(sourceURL(migrationsDir), dsn)
	if err != nil {
		return fmt.Errorf("postgres: create migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("postgres: run migrations up: %w", err)
	}

	return nil
}

func sourceURL(migrationsDir string) string {
	if strings.Contains(migrationsDir, "://") {
		return migrationsDir
	}
	return "file://" + migrationsDir
}
