package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnvString(t *testing.T) {
	tests := []struct {
		name         string
		envValue     string
		defaultValue string
		expected     string
	}{
		{
			name:         "env not set, return default",
			envValue:     "",
			defaultValue: "default",
			expected:     "default",
		},
		{
			name:         "env set, return env value",
			envValue:     "custom",
			defaultValue: "default",
			expected:     "custom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := "TEST_STRING_VALUE"
			if tt.envValue != "" {
				t.Setenv(key, tt.envValue)
			} else {
				os.Unsetenv(key)
			}

			result := getEnvString(key, tt.defaultValue)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name         string
		envValue     string
		defaultValue int
		expected     int
	}{
		{
			name:         "env not set, return default",
			envValue:     "",
			defaultValue: 1,
			expected:     1,
		},
		{
			name:         "env set to valid int, return int value",
			envValue:     "8",
			defaultValue: 1,
			expected:     8,
		},
		{
			name:         "env set to invalid int, return default",
			envValue:     "not_an_int",
			defaultValue: 1,
			expected:     1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := "TEST_INT_VALUE"
			if tt.envValue != "" {
				t.Setenv(key, tt.envValue)
			} else {
				os.Unsetenv(key)
			}

			result := getEnvInt(key, tt.defaultValue)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		name         string
		envValue     string
		defaultValue bool
		expected     bool
	}{
		{
			name:         "env not set, return default",
			envValue:     "",
			defaultValue: true,
			expected:     true,
		},
		{
			name:         "env set to false, return false",
			envValue:     "false",
			defaultValue: true,
			expected:     false,
		},
		{
			name:         "env set to invalid bool, return default",
			envValue:     "not_a_bool",
			defaultValue: true,
			expected:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := "TEST_BOOL_VALUE"
			if tt.envValue != "" {
				t.Setenv(key, tt.envValue)
			} else {
				os.Unsetenv(key)
			}

			result := getEnvBool(key, tt.defaultValue)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestGetEnvDuration(t *testing.T) {
	key := "TEST_DURATION_VALUE"

	os.Unsetenv(key)
	assert.Equal(t, time.Second, getEnvDuration(key, time.Second))

	t.Setenv(key, "5s")
	assert.Equal(t, 5*time.Second, getEnvDuration(key, time.Second))

	t.Setenv(key, "not_a_duration")
	assert.Equal(t, time.Second, getEnvDuration(key, time.Second))
}

func TestGetTimeFormat(t *testing.T) {
	assert.Equal(t, time.RFC3339, getTimeFormat("RFC3339"))
	assert.Equal(t, time.DateTime, getTimeFormat("DateTime"))
	assert.Equal(t, "15:04", getTimeFormat("15:04"))
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLogLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLogLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLogLevel("error"))
	assert.Equal(t, slog.Level(9999), ParseLogLevel("none"))
	assert.Equal(t, slog.LevelInfo, ParseLogLevel("something-else"))
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ENV_FILE_PATH",
		"SYNTAXSCORE_INPUT_PATH",
		"SYNTAXSCORE_ANALYSIS_WORKERS",
		"SYNTAXSCORE_ANALYSIS_STRICT_MEDIAN",
		"SYNTAXSCORE_OUTPUT_FORMAT",
		"SYNTAXSCORE_HISTORY_ENABLED",
		"SYNTAXSCORE_HISTORY_LIMIT",
		"SYNTAXSCORE_DB_PATH",
		"SYNTAXSCORE_LOG_LEVEL",
		"SYNTAXSCORE_LOG_FORMAT",
		"SYNTAXSCORE_LOG_OUTPUT",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadFromEnvDefaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	cfg, err := LoadFromEnv(dir, "")
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.Dir())
	assert.Empty(t, cfg.Input.Path)
	assert.Equal(t, 1, cfg.Analysis.Workers)
	assert.False(t, cfg.Analysis.StrictMedian)
	assert.Equal(t, FormatPlain, cfg.Analysis.OutputFormat)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, 20, cfg.History.Limit)
	assert.Equal(t, filepath.Join(dir, "syntaxscore.db"), cfg.Database.Path)
	assert.Equal(t, "WAL", cfg.Database.JournalMode)
	assert.Equal(t, 5000, cfg.Database.BusyTimeout)
	assert.Equal(t, time.Hour, cfg.Database.ConnMaxLife)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, filepath.Join(dir, "syntaxscore.log"), cfg.Logging.Output)
	assert.Equal(t, time.RFC3339, cfg.Logging.TimeFormat)
}

func TestLoadFromEnvFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	envFile := filepath.Join(dir, "custom.env")
	content := "SYNTAXSCORE_ANALYSIS_WORKERS=4\n" +
		"SYNTAXSCORE_OUTPUT_FORMAT=JSON\n" +
		"SYNTAXSCORE_HISTORY_ENABLED=false\n" +
		"SYNTAXSCORE_LOG_LEVEL=debug\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0644))

	cfg, err := LoadFromEnv(dir, envFile)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Analysis.Workers)
	assert.Equal(t, FormatJSON, cfg.Analysis.OutputFormat)
	assert.False(t, cfg.History.Enabled)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadFromEnvInvalid(t *testing.T) {
	clearEnv(t)
	t.Setenv("SYNTAXSCORE_OUTPUT_FORMAT", "yaml")

	_, err := LoadFromEnv(t.TempDir(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}

func validConfig(t *testing.T) *Config {
	cfg := New()
	cfg.Analysis = AnalysisConfig{Workers: 1, OutputFormat: FormatTable}
	cfg.History.Enabled = true
	cfg.Database = DatabaseConfig{
		Path:        filepath.Join(t.TempDir(), "db", "test.db"),
		BusyTimeout: 5000,
		ConnMaxLife: time.Minute,
	}
	cfg.Logging = LoggingConfig{Level: "info", Format: "text"}
	return cfg
}

func TestValidate(t *testing.T) {
	cfg := validConfig(t)
	require.NoError(t, cfg.Validate())
	assert.DirExists(t, filepath.Dir(cfg.Database.Path))

	invalidWorkers := validConfig(t)
	invalidWorkers.Analysis.Workers = 0
	err := invalidWorkers.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "analysis config")

	invalidDB := validConfig(t)
	invalidDB.Database.BusyTimeout = 0
	err = invalidDB.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database config")

	// Database settings are ignored when history is off
	invalidDB.History.Enabled = false
	assert.NoError(t, invalidDB.Validate())

	invalidLogging := validConfig(t)
	invalidLogging.Logging.Format = "xml"
	err = invalidLogging.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "logging config")
}

func TestSetupConfigDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "conf")

	envPath, err := SetupConfigDirectory(dir, false)
	require.NoError(t, err)
	assert.FileExists(t, envPath)

	data, err := os.ReadFile(envPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "SYNTAXSCORE_ANALYSIS_WORKERS")

	// Existing files are left alone without backup
	require.NoError(t, os.WriteFile(envPath, []byte("KEEP=1\n"), 0644))
	_, err = SetupConfigDirectory(dir, false)
	require.NoError(t, err)
	data, err = os.ReadFile(envPath)
	require.NoError(t, err)
	assert.Equal(t, "KEEP=1\n", string(data))

	// With backup the old file is preserved next to the new one
	_, err = SetupConfigDirectory(dir, true)
	require.NoError(t, err)
	matches, err := filepath.Glob(envPath + ".*.bak")
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}
