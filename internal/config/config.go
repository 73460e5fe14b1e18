package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Output formats understood by the report renderer
const (
	FormatPlain    = "plain"
	FormatTable    = "table"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// Config represents the complete application configuration
type Config struct {
	Input     InputConfig
	Analysis  AnalysisConfig
	History   HistoryConfig
	Database  DatabaseConfig
	Logging   LoggingConfig
	configDir string // Internal: Directory where config was loaded from
}

// InputConfig controls where lines are read from
type InputConfig struct {
	Path string // Input file; empty falls back to the bundled example
}

// AnalysisConfig controls the bracket matcher
type AnalysisConfig struct {
	Workers      int    // Lines parsed concurrently; 1 is sequential
	StrictMedian bool   // Fail instead of warn when the score count is even
	OutputFormat string // plain, table, markdown or json
}

// HistoryConfig controls run persistence
type HistoryConfig struct {
	Enabled bool // Whether check runs are recorded
	Limit   int  // Default number of runs listed
}

// DatabaseConfig represents database configuration
type DatabaseConfig struct {
	Path            string        // Path to the SQLite database file
	JournalMode     string        // Journal mode (WAL recommended)
	SynchronousMode string        // Synchronous mode
	BusyTimeout     int           // Busy timeout in milliseconds
	ForeignKeys     bool          // Whether to enforce foreign key constraints
	ConnMaxLife     time.Duration // Maximum connection lifetime
	OpenRetries     int           // Ping attempts before giving up
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level      string // debug, info, warn, error
	Format     string // text or json
	Output     string // stdout, stderr, or file path
	AddSource  bool   // Include source code position in logs
	TimeFormat string // Time format for logs (empty uses RFC3339)
}

// New returns a new empty Config
func New() *Config {
	return &Config{}
}

// Dir returns the directory the configuration was loaded from
func (c *Config) Dir() string {
	return c.configDir
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.validateAnalysis(); err != nil {
		return fmt.Errorf("analysis config: %w", err)
	}

	if c.History.Enabled {
		if err := c.validateDatabase(); err != nil {
			return fmt.Errorf("database config: %w", err)
		}
	}

	if err := c.validateLogging(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

// ParseLogLevel parses a log level string to a slog.Level
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "none":
		// Set to a very high level that won't be triggered
		return slog.Level(9999)
	default:
		return slog.LevelInfo
	}
}

// IsValidFormat reports whether format names a known report format
func IsValidFormat(format string) bool {
	switch strings.ToLower(format) {
	case FormatPlain, FormatTable, FormatMarkdown, FormatJSON:
		return true
	}
	return false
}

func (c *Config) validateAnalysis() error {
	if c.Analysis.Workers <= 0 {
		return fmt.Errorf("workers must be positive")
	}

	if !IsValidFormat(c.Analysis.OutputFormat) {
		return fmt.Errorf("invalid output format: %s", c.Analysis.OutputFormat)
	}

	return nil
}

func (c *Config) validateDatabase() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database path cannot be empty")
	}

	if c.Database.Path != ":memory:" {
		dir := filepath.Dir(c.Database.Path)
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create directory for database: %w", err)
			}
		}
	}

	if c.Database.BusyTimeout <= 0 {
		return fmt.Errorf("busy timeout must be positive")
	}

	if c.Database.ConnMaxLife <= 0 {
		return fmt.Errorf("connection max life must be positive")
	}

	if c.Database.OpenRetries < 0 {
		return fmt.Errorf("open retries cannot be negative")
	}

	return nil
}

func (c *Config) validateLogging() error {
	level := strings.ToLower(c.Logging.Level)
	if level != "debug" && level != "info" && level != "warn" && level != "error" && level != "none" {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	format := strings.ToLower(c.Logging.Format)
	if format != "text" && format != "json" {
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}

	return nil
}

// getEnvString returns a string from the environment variable
func getEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt returns an int from the environment variable
func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool returns a bool from the environment variable
func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvDuration returns a time.Duration from the environment variable
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getTimeFormat converts a named time format to its actual format string
func getTimeFormat(name string) string {
	switch name {
	case "RFC3339":
		return time.RFC3339
	case "RFC3339Nano":
		return time.RFC3339Nano
	case "Kitchen":
		return time.Kitchen
	case "DateTime":
		return time.DateTime
	case "Date":
		return time.DateOnly
	case "Time":
		return time.TimeOnly
	default:
		return name
	}
}
