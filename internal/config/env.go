package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultDirName is the configuration directory created under the user's home
const DefaultDirName = ".syntaxscore"

// DefaultDir returns ~/.syntaxscore
func DefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, DefaultDirName), nil
}

// LoadFromEnv loads configuration from environment variables
// Parameters:
// - configDir: Directory containing config files (or empty for default)
// - configFilePath: Path to .env file (or empty for default)
func LoadFromEnv(configDir string, configFilePath string) (*Config, error) {
	cfg := New()

	if configDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		configDir = dir

		if err := os.MkdirAll(configDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	cfg.configDir = configDir

	if configFilePath == "" {
		configFilePath = filepath.Join(configDir, ".env")
	}

	// ENV_FILE_PATH points at a custom .env file
	envFilePath := getEnvString("ENV_FILE_PATH", "")
	if envFilePath != "" {
		if err := godotenv.Load(envFilePath); err != nil {
			return nil, fmt.Errorf("failed to load env file from %s: %w", envFilePath, err)
		}
	} else {
		if err := godotenv.Load(configFilePath); err != nil {
			_ = godotenv.Load() // Ignore errors if file doesn't exist
		}
	}

	cfg.Input = InputConfig{
		Path: getEnvString("SYNTAXSCORE_INPUT_PATH", ""),
	}

	cfg.Analysis = AnalysisConfig{
		Workers:      getEnvInt("SYNTAXSCORE_ANALYSIS_WORKERS", 1),
		StrictMedian: getEnvBool("SYNTAXSCORE_ANALYSIS_STRICT_MEDIAN", false),
		OutputFormat: strings.ToLower(getEnvString("SYNTAXSCORE_OUTPUT_FORMAT", FormatPlain)),
	}

	cfg.History = HistoryConfig{
		Enabled: getEnvBool("SYNTAXSCORE_HISTORY_ENABLED", true),
		Limit:   getEnvInt("SYNTAXSCORE_HISTORY_LIMIT", 20),
	}

	cfg.Database = DatabaseConfig{
		Path:            getEnvString("SYNTAXSCORE_DB_PATH", filepath.Join(configDir, "syntaxscore.db")),
		JournalMode:     getEnvString("SYNTAXSCORE_DB_JOURNAL_MODE", "WAL"),
		SynchronousMode: getEnvString("SYNTAXSCORE_DB_SYNCHRONOUS_MODE", "NORMAL"),
		BusyTimeout:     getEnvInt("SYNTAXSCORE_DB_BUSY_TIMEOUT", 5000),
		ForeignKeys:     getEnvBool("SYNTAXSCORE_DB_FOREIGN_KEYS", true),
		ConnMaxLife:     getEnvDuration("SYNTAXSCORE_DB_CONN_MAX_LIFE", time.Hour),
		OpenRetries:     getEnvInt("SYNTAXSCORE_DB_OPEN_RETRIES", 3),
	}

	cfg.Logging = LoggingConfig{
		Level:      getEnvString("SYNTAXSCORE_LOG_LEVEL", "info"),
		Format:     getEnvString("SYNTAXSCORE_LOG_FORMAT", "text"),
		Output:     getEnvString("SYNTAXSCORE_LOG_OUTPUT", filepath.Join(configDir, "syntaxscore.log")),
		AddSource:  getEnvBool("SYNTAXSCORE_LOG_ADD_SOURCE", false),
		TimeFormat: getTimeFormat(getEnvString("SYNTAXSCORE_LOG_TIME_FORMAT", "RFC3339")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
