package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Mode selects how the shared store file is opened. The public reporting
// process uses ModeReadOnly; the admin process uses ModeReadWriteCreate and
// is the only role allowed to create or migrate the schema.
type Mode string

const (
	// ModeReadOnly opens the store read-only. Any write statement fails
	// inside the engine, and a missing file is an error rather than an
	// invitation to create one.
	ModeReadOnly Mode = "ro"

	// ModeReadWriteCreate opens the store read-write, creating the file if
	// it does not exist yet.
	ModeReadWriteCreate Mode = "rwc"
)

// Open establishes a connection pool to the SQLite store at path using the
// given access mode. It applies a small retry strategy so the reader survives
// starting before the writer has created the file. The returned *sqlx.DB has
// pool settings pre-configured and is pinged before returning.
func Open(path string, mode Mode) (*sqlx.DB, error) {
	if path == "" {
		return nil, errors.New("empty database path")
	}

	// SQLite creates the file but not its directory.
	if mode == ModeReadWriteCreate {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("could not create database directory: %w", err)
		}
	}

	// The access mode lives in the DSN so the engine itself enforces it;
	// the busy timeout covers lock contention with the other process.
	dsn := fmt.Sprintf("file:%s?mode=%s&_busy_timeout=5000", path, mode)

	// Retry policy: up to 5 attempts, exponential backoff starting at 500ms.
	const (
		maxAttempts = 5
		baseDelay   = 500 * time.Millisecond
	)

	var db *sqlx.DB
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		db, lastErr = sqlx.Open("sqlite3", dsn)
		if lastErr != nil {
			sleepWithBackoff(attempt, baseDelay)
			continue
		}

		setPool(db.DB, mode)

		// Ping with timeout to validate the connection (and, for the
		// read-only mode, that the file actually exists).
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		lastErr = db.PingContext(ctx)
		cancel()
		if lastErr == nil {
			return db, nil
		}

		_ = db.Close()
		sleepWithBackoff(attempt, baseDelay)
	}

	return nil, fmt.Errorf("failed to open database after %d attempts: %w", maxAttempts, lastErr)
}

// Migrate brings the schema up to date using the embedded migrations. Only
// the admin role calls this; the read-only role must never attempt a
// schema-creating statement.
func Migrate(db *sql.DB) error {
	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("could not load embedded migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

// setPool configures the connection pool. The writer keeps a single
// connection so its own statements never contend for the file lock; the
// reader allows a few parallel connections.
func setPool(db *sql.DB, mode Mode) {
	if mode == ModeReadWriteCreate {
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(4)
	}
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)
}

// sleepWithBackoff sleeps for an exponentially increasing duration.
func sleepWithBackoff(attempt int, base time.Duration) {
	// Simple exponential backoff: base * 2^(attempt-1), capped to 5s.
	d := base << (attempt - 1)
	if d > 5*time.Second {
		d = 5 * time.Second
	}
	time.Sleep(d)
}
