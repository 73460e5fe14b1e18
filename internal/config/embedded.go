package config

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ryukyi/syntaxscore/internal/loggy"
)

//go:embed env.sample
var configFS embed.FS

// SetupConfigDirectory ensures the config directory exists and holds a .env file.
// It returns the path of the .env file.
func SetupConfigDirectory(configDir string, backupExisting bool) (string, error) {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	envPath := filepath.Join(configDir, ".env")
	if err := ExtractEmbeddedFile("env.sample", envPath, backupExisting); err != nil {
		return envPath, fmt.Errorf("failed to extract sample env file: %w", err)
	}

	return envPath, nil
}

// ExtractEmbeddedFile extracts an embedded file to the target path if it doesn't exist
// If backupExisting is true and the file exists, it will be backed up before overwriting
func ExtractEmbeddedFile(embeddedPath, targetPath string, backupExisting bool) error {
	if _, err := os.Stat(targetPath); err == nil {
		if !backupExisting {
			return nil
		}

		backupPath := fmt.Sprintf("%s.%s.bak", targetPath, time.Now().Format("2006-01-02"))

		existingData, err := os.ReadFile(targetPath)
		if err != nil {
			return fmt.Errorf("failed to read existing file for backup: %w", err)
		}

		if err := os.WriteFile(backupPath, existingData, 0644); err != nil {
			return fmt.Errorf("failed to write backup file: %w", err)
		}

		loggy.Info("Created backup of existing file", "original", targetPath, "backup", backupPath)
	}

	fileData, err := configFS.ReadFile(embeddedPath)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(targetPath), 0755); err != nil {
		return err
	}

	if err := os.WriteFile(targetPath, fileData, 0644); err != nil {
		return err
	}

	loggy.Info("Extracted embedded file", "source", embeddedPath, "target", targetPath)
	return nil
}
