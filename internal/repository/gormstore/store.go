// Package gormstore implements the repository interfaces on top of GORM.
// SQLite (pure Go, modernc) is the default for local development and tests;
// Postgres is used in deployed environments.
package gormstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/sakif/skillup/internal/config"
	"github.com/sakif/skillup/internal/logger"
	"github.com/sakif/skillup/internal/migrate"

	_ "modernc.org/sqlite"
)

// Store wraps a GORM handle. A Store returned by WithTx is bound to the
// transaction; every repository method on it runs inside that transaction.
type Store struct {
	db     *gorm.DB
	driver string
}

// Open connects to the configured database and, when cfg.AutoMigrate is
// set, applies pending migrations.
func Open(ctx context.Context, cfg config.DBConfig, logg *logger.Logger) (*Store, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("gormstore: DSN is required")
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverSQLite:
		if err := ensureSQLiteDir(cfg.DSN); err != nil {
			return nil, err
		}
		dialector = sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: cfg.DSN})
	case config.DriverPostgres:
		dialector = postgres.New(postgres.Config{DSN: cfg.DSN, PreferSimpleProtocol: true})
	default:
		return nil, fmt.Errorf("gormstore: unsupported driver %q", cfg.Driver)
	}

	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 gormlogger.New(log.New(io.Discard, "", log.LstdFlags), gormlogger.Config{LogLevel: gormlogger.Silent}),
		SkipDefaultTransaction: true,
		NowFunc: func() time.Time {
			return time.Now().UTC().Truncate(time.Microsecond)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("gormstore: opening %s connection: %w", cfg.Driver, err)
	}

	s := &Store{db: conn, driver: cfg.Driver}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("gormstore: getting sql db handle: %w", err)
	}

	if cfg.Driver == config.DriverSQLite {
		// SQLite serialises writers anyway; one connection also keeps a
		// ":memory:" database alive for the lifetime of the pool.
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		if err := s.sqlitePragmas(ctx, cfg.DSN); err != nil {
			sqlDB.Close()
			return nil, err
		}
	} else {
		applyPoolSettings(sqlDB, cfg)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("gormstore: pinging database: %w", err)
	}

	if cfg.AutoMigrate {
		if err := migrate.Up(ctx, sqlDB, cfg.Driver); err != nil {
			sqlDB.Close()
			return nil, err
		}
	}

	if logg != nil {
		ctx = logg.WithField(ctx, "driver", cfg.Driver)
		logg.Info(ctx, "database connection established")
	}
	return s, nil
}

// OpenInMemory returns a migrated, private in-memory SQLite store.
func OpenInMemory(ctx context.Context) (*Store, error) {
	return Open(ctx, config.DBConfig{
		Driver:      config.DriverSQLite,
		DSN:         ":memory:",
		AutoMigrate: true,
	}, nil)
}

func applyPoolSettings(sqlDB *sql.DB, cfg config.DBConfig) {
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if cfg.ConnMaxIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}
}

func (s *Store) sqlitePragmas(ctx context.Context, dsn string) error {
	pragmas := []string{"PRAGMA foreign_keys = ON", "PRAGMA busy_timeout = 5000"}
	if !isMemoryDSN(dsn) {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL")
	}
	for _, p := range pragmas {
		if err := s.db.WithContext(ctx).Exec(p).Error; err != nil {
			return fmt.Errorf("gormstore: %s: %w", p, err)
		}
	}
	return nil
}

func isMemoryDSN(dsn string) bool {
	return strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}

func ensureSQLiteDir(dsn string) error {
	if isMemoryDSN(dsn) || strings.HasPrefix(dsn, "file:") {
		return nil
	}
	dir := filepath.Dir(dsn)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("gormstore: creating %s: %w", dir, err)
	}
	return nil
}

// Driver returns the config driver name this store was opened with.
func (s *Store) Driver() string {
	return s.driver
}

// DB returns the GORM handle bound to ctx.
func (s *Store) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return s.db
	}
	return s.db.WithContext(ctx)
}

// SQLDB exposes the pooled database/sql handle (used by migrations).
func (s *Store) SQLDB() (*sql.DB, error) {
	return s.db.DB()
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// WithTx runs fn inside a transaction, rolling back on error or panic.
// fn must only use the Store it is given.
func (s *Store) WithTx(ctx context.Context, fn func(tx *Store) error) error {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("gormstore: begin tx: %w", tx.Error)
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(&Store{db: tx, driver: s.driver}); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("gormstore: commit tx: %w", err)
	}
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
