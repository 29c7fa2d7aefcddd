// Package migrate applies the embedded goose migrations. The same SQL files
// run against SQLite and Postgres, so they stick to the portable subset of
// both dialects.
package migrate

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationsDir = "migrations"

// Commands accepted by Run.
const (
	CommandUp      = "up"
	CommandDown    = "down"
	CommandStatus  = "status"
	CommandVersion = "version"
	CommandReset   = "reset"
)

// goose keeps its dialect and filesystem in package globals.
var gooseMu sync.Mutex

// Dialect maps a config driver name onto the goose dialect name.
func Dialect(driver string) (string, error) {
	switch driver {
	case "sqlite", "sqlite3":
		return "sqlite3", nil
	case "postgres", "postgresql":
		return "postgres", nil
	default:
		return "", fmt.Errorf("migrate: no goose dialect for driver %q", driver)
	}
}

// Run executes a goose command against the embedded migrations.
func Run(ctx context.Context, db *sql.DB, driver, command string, args ...string) error {
	if db == nil {
		return fmt.Errorf("migrate: db is required")
	}
	dialect, err := Dialect(driver)
	if err != nil {
		return err
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrationsFS)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("migrate: set goose dialect: %w", err)
	}

	if err := goose.RunContext(ctx, command, db, migrationsDir, args...); err != nil {
		return fmt.Errorf("migrate: goose %s: %w", command, err)
	}
	return nil
}

// Up is shorthand for Run(..., CommandUp).
func Up(ctx context.Context, db *sql.DB, driver string) error {
	return Run(ctx, db, driver, CommandUp)
}

// Version returns the currently applied migration version.
func Version(ctx context.Context, db *sql.DB, driver string) (int64, error) {
	dialect, err := Dialect(driver)
	if err != nil {
		return 0, err
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	if err := goose.SetDialect(dialect); err != nil {
		return 0, fmt.Errorf("migrate: set goose dialect: %w", err)
	}
	v, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return 0, fmt.Errorf("migrate: read db version: %w", err)
	}
	return v, nil
}
