package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Backend names accepted by DATA_BACKEND.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

type Config struct {
	// Storage
	DataBackend  string
	DataDir      string
	SQLiteDBPath string

	// Logging
	LogLevel string
}

func Load() *Config {
	cfg := &Config{
		DataBackend:  getEnv("GASTOS_BACKEND", BackendJSON),
		DataDir:      getEnv("GASTOS_DATA_DIR", "data"),
		SQLiteDBPath: getEnv("GASTOS_SQLITE_PATH", ""),

		LogLevel: getEnv("LOG_LEVEL", "warn"),
	}

	return cfg
}

// SQLitePath returns SQLiteDBPath, or gastos.db inside DataDir when unset.
func (c *Config) SQLitePath() string {
	if c.SQLiteDBPath != "" || c.DataDir == "" {
		return c.SQLiteDBPath
	}
	return filepath.Join(c.DataDir, "gastos.db")
}

// ExpensesPath is the location of the expenses document.
func (c *Config) ExpensesPath() string {
	return filepath.Join(c.DataDir, "expenses.json")
}

// BudgetPath is the location of the budget document.
func (c *Config) BudgetPath() string {
	return filepath.Join(c.DataDir, "budget.json")
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate data backend
	validBackends := []string{BackendJSON, BackendSQLite, BackendMemory}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	if c.DataBackend == BackendJSON {
		if c.DataDir == "" {
			errors = append(errors, "data directory cannot be empty when using json backend")
		} else if info, err := os.Stat(c.DataDir); err == nil && !info.IsDir() {
			errors = append(errors, fmt.Sprintf("data directory '%s' is not a directory", c.DataDir))
		}
	}

	if c.DataBackend == BackendSQLite && c.SQLitePath() == "" {
		errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
