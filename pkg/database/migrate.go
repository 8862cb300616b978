package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
)

//go:embed migrations
var migrations embed.FS

// migrateSQLite brings the schema of an open sqlite handle up to date.
//
// We don't Close() the migrate instance as that would close the handle we were given.
func migrateSQLite(db *sql.DB) error {
	src, err := iofs.New(migrations, "migrations/sqlite")
	if err != nil {
		return err
	}
	defer src.Close()

	drv, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", drv)
	if err != nil {
		return err
	}
	return up(m)
}

// migratePostgres applies migrations over a short lived lib/pq connection; pgx pools
// are used for everything else.
func migratePostgres(url string) error {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return err
	}

	src, err := iofs.New(migrations, "migrations/postgres")
	if err != nil {
		db.Close()
		return err
	}

	drv, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		db.Close()
		return err
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", drv)
	if err != nil {
		db.Close()
		return err
	}
	defer m.Close()

	return up(m)
}

func up(m *migrate.Migrate) error {
	err := m.Up()
	if err == nil || errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return fmt.Errorf("migration failed: %w", err)
}
