package config

import (
	"os"
	"strings"

	"sheetdiff/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Compare  CompareConfig
}

// DatabaseConfig holds dashboard database connection settings. The
// dashboard store is optional: an empty URL disables persistence.
type DatabaseConfig struct {
	URL     string
	SSLMode string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	APIPort string
}

// CompareConfig holds default comparison inputs
type CompareConfig struct {
	OldFile    string
	NewFile    string
	OutputFile string
	KeyColumns []string
	Sheet      string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Database: DatabaseConfig{
			URL:     getEnvOrDefault("DATABASE_URL", ""),
			SSLMode: getEnvOrDefault("SSL_MODE", "disable"),
		},
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			APIPort: getEnvOrDefault("API_PORT", "8081"),
		},
		Compare: CompareConfig{
			OldFile:    getEnvOrDefault("OLD_FILE", ""),
			NewFile:    getEnvOrDefault("NEW_FILE", ""),
			OutputFile: getEnvOrDefault("OUTPUT_FILE", "comparison_results.xlsx"),
			KeyColumns: splitKeyColumns(getEnvOrDefault("KEY_COLUMNS", "")),
			Sheet:      getEnvOrDefault("SHEET", ""),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("PORT cannot be empty")
	}
	if config.Compare.OutputFile == "" {
		return errors.ConfigInvalid("OUTPUT_FILE cannot be empty")
	}
	return nil
}

// splitKeyColumns parses the comma-separated KEY_COLUMNS form used by the
// CLI and env config into an ordered column list
func splitKeyColumns(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	cols := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			cols = append(cols, trimmed)
		}
	}
	return cols
}

// SplitKeyColumns is the exported form used by CLI flag parsing
func SplitKeyColumns(raw string) []string {
	return splitKeyColumns(raw)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
