package sqlite

import (
	"database/sql"
	"embed"

	"github.com/pressly/goose/v3"
)

// migrations contains the goose migrations that set up the database schema.
// These run on startup to ensure tables exist.
//
//go:embed migrations/*.sql
var migrations embed.FS

// runMigrations applies all pending migrations.
func runMigrations(db *sql.DB) error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.Up(db, "migrations")
}
