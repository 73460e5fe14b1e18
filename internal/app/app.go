// Package app provides the application initialization and lifecycle management
package app

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/ryukyi/syntaxscore/internal/checker"
	"github.com/ryukyi/syntaxscore/internal/config"
	"github.com/ryukyi/syntaxscore/internal/database"
	"github.com/ryukyi/syntaxscore/internal/history"
	"github.com/ryukyi/syntaxscore/internal/loggy"
)

// ErrHistoryDisabled is returned when a history operation is requested but no store is open
var ErrHistoryDisabled = errors.New("run history is disabled")

// App represents the application instance with its dependencies
type App struct {
	Config  *config.Config
	Checker *checker.Service
	History *history.Service // nil when history is disabled or the store failed to open
}

// New initializes a new application instance with all its dependencies
func New() (*App, error) {
	cfg, err := initConfig()
	if err != nil {
		return nil, err
	}

	if err := initLogger(cfg); err != nil {
		return nil, err
	}

	loggy.Info("Application initializing",
		"version", os.Getenv("VERSION"),
		"config_dir", cfg.Dir(),
		"log_level", cfg.Logging.Level,
		"workers", cfg.Analysis.Workers,
	)

	app := &App{
		Config:  cfg,
		Checker: checker.NewService(cfg, loggy.GetGlobalLogger()),
	}

	if cfg.History.Enabled {
		if err := app.OpenHistory(); err != nil {
			// A broken store must not stop line checking
			loggy.Warn("Run history unavailable", "error", err)
		}
	}

	loggy.Info("Application initialized successfully")
	return app, nil
}

// initConfig loads and sets up the application configuration
func initConfig() (*config.Config, error) {
	cfg, err := config.LoadFromEnv("", "")
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	return cfg, nil
}

// initLogger initializes the logging system
func initLogger(cfg *config.Config) error {
	err := loggy.Init(loggy.Config{
		Level:      config.ParseLogLevel(cfg.Logging.Level),
		Format:     cfg.Logging.Format,
		Output:     cfg.Logging.Output,
		AddSource:  cfg.Logging.AddSource,
		TimeFormat: cfg.Logging.TimeFormat,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// OpenHistory opens the database, applies pending migrations and wires the history service
func (app *App) OpenHistory() error {
	if app.History != nil {
		return nil
	}

	if err := database.InitDB(app.Config); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	applied, err := database.RunMigrations()
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	if applied > 0 {
		loggy.Info("Applied database migrations", "count", applied)
	}

	db, err := database.DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}

	app.History = history.NewService(db, loggy.GetGlobalLogger())
	return nil
}

// RequireHistory returns the history service or ErrHistoryDisabled
func (app *App) RequireHistory() (*history.Service, error) {
	if app.History == nil {
		return nil, ErrHistoryDisabled
	}
	return app.History, nil
}

// Shutdown gracefully shuts down the application
func (app *App) Shutdown() error {
	loggy.Info("Shutting down application")

	if err := database.CloseDB(); err != nil {
		loggy.Error("Error closing database connection", "error", err)
	}

	return nil
}

// FromContext retrieves the App instance from the CLI context
func FromContext(c *cli.Context) (*App, error) {
	if c.App.Metadata == nil {
		return nil, fmt.Errorf("app metadata not found in context")
	}

	app, ok := c.App.Metadata["app"].(*App)
	if !ok {
		return nil, fmt.Errorf("app instance not found in context")
	}

	return app, nil
}
