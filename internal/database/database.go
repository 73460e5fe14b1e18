// Package database provides SQLite database management for syntaxscore
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/mattn/go-sqlite3"

	"github.com/ryukyi/syntaxscore/internal/config"
	"github.com/ryukyi/syntaxscore/internal/loggy"
	"github.com/ryukyi/syntaxscore/internal/migrations"
)

var (
	// ErrNotInitialized is returned when the database has not been initialized
	ErrNotInitialized = errors.New("database not initialized")

	db     *sql.DB
	dbLock sync.Mutex
)

// DB returns the database connection
func DB() (*sql.DB, error) {
	dbLock.Lock()
	defer dbLock.Unlock()

	if db == nil {
		return nil, ErrNotInitialized
	}
	return db, nil
}

// InitDB opens the database connection and verifies it with retried pings
func InitDB(cfg *config.Config) error {
	dbLock.Lock()
	defer dbLock.Unlock()

	if db != nil {
		return nil
	}

	loggy.Info("Initializing database", "path", cfg.Database.Path)

	conn, err := Open(&cfg.Database)
	if err != nil {
		return err
	}

	db = conn
	loggy.Info("Database initialized successfully")
	return nil
}

// Open opens a standalone connection pool without touching the global one
func Open(cfg *config.DatabaseConfig) (*sql.DB, error) {
	conn, err := sql.Open("sqlite3", BuildSQLiteDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	conn.SetConnMaxLifetime(cfg.ConnMaxLife)
	conn.SetMaxOpenConns(1) // SQLite supports only one writer at a time
	conn.SetMaxIdleConns(1)

	if err := pingWithRetry(conn, cfg.OpenRetries); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return conn, nil
}

func pingWithRetry(conn *sql.DB, retries int) error {
	if retries < 0 {
		retries = 0
	}

	attempt := 0
	operation := func() error {
		attempt++
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err := conn.PingContext(ctx)
		if err != nil {
			loggy.Warn("Database ping failed", "attempt", attempt, "error", err)
		}
		return err
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 100 * time.Millisecond
	policy.MaxElapsedTime = 10 * time.Second
	return backoff.Retry(operation, backoff.WithMaxRetries(policy, uint64(retries)))
}

// BuildSQLiteDSN builds a SQLite DSN with additional parameters
func BuildSQLiteDSN(cfg *config.DatabaseConfig) string {
	if cfg.Path == ":memory:" || strings.HasPrefix(cfg.Path, "file::memory:") {
		return cfg.Path
	}

	params := url.Values{}
	if cfg.BusyTimeout > 0 {
		params.Add("_busy_timeout", strconv.Itoa(cfg.BusyTimeout))
	}
	if cfg.JournalMode != "" {
		params.Add("_journal_mode", cfg.JournalMode)
	}
	if cfg.SynchronousMode != "" {
		params.Add("_synchronous", cfg.SynchronousMode)
	}
	params.Add("_foreign_keys", strconv.FormatBool(cfg.ForeignKeys))

	return fmt.Sprintf("%s?%s", cfg.Path, params.Encode())
}

// CloseDB closes the database connection
func CloseDB() error {
	dbLock.Lock()
	defer dbLock.Unlock()

	if db == nil {
		return nil
	}

	err := db.Close()
	db = nil
	return err
}

func newMigrator(conn *sql.DB) (*migrate.Migrate, error) {
	driver, err := sqlite3.WithInstance(conn, &sqlite3.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create database driver: %w", err)
	}

	src, err := migrations.GetSource()
	if err != nil {
		return nil, err
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration instance: %w", err)
	}
	return m, nil
}

// currentVersion returns the applied schema version, 0 when none
func currentVersion(m *migrate.Migrate) (uint, bool, error) {
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to get migration version: %w", err)
	}
	return version, dirty, nil
}

// RunMigrations applies all pending embedded migrations and returns how many were applied
func RunMigrations() (int, error) {
	conn, err := DB()
	if err != nil {
		return 0, err
	}
	return Migrate(conn)
}

// Migrate applies all pending embedded migrations on conn
func Migrate(conn *sql.DB) (int, error) {
	m, err := newMigrator(conn)
	if err != nil {
		return 0, err
	}

	before, _, err := currentVersion(m)
	if err != nil {
		return 0, err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		loggy.Error("Failed to apply migrations", "error", err)
		return 0, fmt.Errorf("failed to apply migrations: %w", err)
	}

	after, dirty, err := currentVersion(m)
	if err != nil {
		return 0, err
	}

	loggy.Info("Database migration complete", "version", after, "dirty", dirty)
	return int(after - before), nil
}

// RevertMigrations reverts migrations back by the specified number of steps
func RevertMigrations(steps int) error {
	conn, err := DB()
	if err != nil {
		return err
	}

	m, err := newMigrator(conn)
	if err != nil {
		return err
	}

	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		loggy.Error("Failed to revert migrations", "error", err)
		return fmt.Errorf("failed to revert migrations: %w", err)
	}

	version, dirty, err := currentVersion(m)
	if err != nil {
		return err
	}

	loggy.Info("Database migration reversion complete", "version", version, "dirty", dirty)
	return nil
}
