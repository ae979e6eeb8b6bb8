// Package database opens the GORM connection and keeps the schema up to date.
//
// Two backends are supported:
//  1. PostgreSQL (postgres:// or postgresql:// DSNs), migrated with versioned SQL
//     files through golang-migrate
//  2. SQLite (sqlite://path, file:path or :memory:), used for local runs and tests,
//     migrated with GORM's AutoMigrate
package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"github.com/golang-migrate/migrate/v4"
	// Registers the postgres database driver for migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	// Registers the "file://" source driver so migrate can read .sql files from disk.
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fjvbn2003/fingerscore/internal/models"
)

// Dialect names the backend a DSN points at.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// ErrEmptyDSN is returned when no database URL was configured.
var ErrEmptyDSN = errors.New("database URL is empty")

// DialectOf inspects the DSN prefix.
func DialectOf(dsn string) Dialect {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return DialectPostgres
	case strings.HasPrefix(dsn, "sqlite://"), strings.HasPrefix(dsn, "file:"), dsn == ":memory:":
		return DialectSQLite
	}
	// Key/value DSNs ("host=... user=...") are postgres.
	return DialectPostgres
}

// Connect opens a database handle for the given DSN.
func Connect(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, ErrEmptyDSN
	}
	// GORM's own logger prints every query at Info level. Warn keeps slow queries
	// and errors without flooding the request log.
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}

	switch DialectOf(dsn) {
	case DialectSQLite:
		// The sqlite driver wants a plain path (or "file:..."), so the scheme
		// this package uses for detection is stripped first.
		return gorm.Open(sqlite.Open(strings.TrimPrefix(dsn, "sqlite://")), cfg)
	default:
		return gorm.Open(postgres.Open(dsn), cfg)
	}
}

// Migrate brings the schema up to date. Postgres databases run the SQL files from
// source (e.g. "file://migrations"); SQLite databases are auto-migrated from the
// models because the SQL files use postgres-only types.
func Migrate(db *gorm.DB, dsn, source string) error {
	if DialectOf(dsn) == DialectSQLite {
		return AutoMigrate(db)
	}
	return RunMigrations(dsn, source)
}

// AutoMigrate creates or alters tables to match the models.
func AutoMigrate(db *gorm.DB) error {
	// Order matters: matches reference users, sets reference matches.
	return db.AutoMigrate(&models.User{}, &models.FriendlyMatch{}, &models.MatchSet{})
}

// RunMigrations applies any pending "up" migrations from source. golang-migrate
// records applied versions in schema_migrations so nothing runs twice.
func RunMigrations(dsn, source string) error {
	// migrate opens its own connection from the DSN; it does not share the GORM pool.
	m, err := migrate.New(source, dsn)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}
	defer m.Close()

	// ErrNoChange only means the schema is already current.
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
