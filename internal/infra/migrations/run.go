package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	pgxv5 "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed sql/*.sql
var migrationsFS embed.FS

// Run applies all pending migrations for the given database/sql driver name.
// The migrate instance is not closed: closing it would close db as well.
func Run(db *sql.DB, driverName string) error {
	src, err := iofs.New(migrationsFS, "sql")
	if err != nil {
		return fmt.Errorf("open migrations source: %w", err)
	}

	var (
		driver database.Driver
		dbName string
	)
	switch driverName {
	case "sqlite3":
		driver, err = sqlite3.WithInstance(db, &sqlite3.Config{})
		dbName = "sqlite3"
	case "pgx":
		driver, err = pgxv5.WithInstance(db, &pgxv5.Config{})
		dbName = "pgx5"
	default:
		return fmt.Errorf("migrations: unsupported driver %q", driverName)
	}
	if err != nil {
		return fmt.Errorf("init %s migration driver: %w", dbName, err)
	}

	m, err := migrate.NewWithInstance("iofs", src, dbName, driver)
	if err != nil {
		return fmt.Errorf("init migrate: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}
