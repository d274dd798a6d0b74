package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		wantErr     bool
		errorString string
	}{
		{
			name: "valid json backend config",
			config: Config{
				DataBackend: BackendJSON,
				DataDir:     "./data",
				LogLevel:    "warn",
			},
			wantErr: false,
		},
		{
			name: "valid sqlite backend config",
			config: Config{
				DataBackend:  BackendSQLite,
				SQLiteDBPath: "./test.db",
				LogLevel:     "debug",
			},
			wantErr: false,
		},
		{
			name: "valid memory backend config",
			config: Config{
				DataBackend: BackendMemory,
				LogLevel:    "info",
			},
			wantErr: false,
		},
		{
			name: "invalid data backend",
			config: Config{
				DataBackend: "invalid",
				LogLevel:    "warn",
			},
			wantErr:     true,
			errorString: "invalid data backend 'invalid': must be one of [json sqlite memory]",
		},
		{
			name: "json backend missing data directory",
			config: Config{
				DataBackend: BackendJSON,
				LogLevel:    "warn",
			},
			wantErr:     true,
			errorString: "data directory cannot be empty when using json backend",
		},
		{
			name: "sqlite backend missing database path",
			config: Config{
				DataBackend: BackendSQLite,
				LogLevel:    "warn",
			},
			wantErr:     true,
			errorString: "SQLite database path cannot be empty when using sqlite backend",
		},
		{
			name: "invalid log level",
			config: Config{
				DataBackend: BackendMemory,
				LogLevel:    "loud",
			},
			wantErr:     true,
			errorString: "invalid log level 'loud'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				if err == nil {
					t.Errorf("Config.Validate() error = nil, wantErr %v", tt.wantErr)
					return
				}
				if tt.errorString != "" && !strings.Contains(err.Error(), tt.errorString) {
					t.Errorf("Config.Validate() error = %v, want error containing %v", err.Error(), tt.errorString)
				}
			} else {
				if err != nil {
					t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
				}
			}
		})
	}
}

func TestConfig_ValidateDataDirIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	cfg := Config{DataBackend: BackendJSON, DataDir: file, LogLevel: "warn"}
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "is not a directory") {
		t.Errorf("Config.Validate() error = %v, want 'is not a directory'", err)
	}
}

func TestLoad(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		t.Setenv("GASTOS_BACKEND", "")
		t.Setenv("GASTOS_DATA_DIR", "")
		t.Setenv("GASTOS_SQLITE_PATH", "")
		t.Setenv("LOG_LEVEL", "")

		cfg := Load()

		if cfg.DataBackend != BackendJSON {
			t.Errorf("Load() DataBackend = %v, want json", cfg.DataBackend)
		}
		if cfg.DataDir != "data" {
			t.Errorf("Load() DataDir = %v, want data", cfg.DataDir)
		}
		if cfg.SQLitePath() != filepath.Join("data", "gastos.db") {
			t.Errorf("SQLitePath() = %v, want data/gastos.db", cfg.SQLitePath())
		}
		if cfg.LogLevel != "warn" {
			t.Errorf("Load() LogLevel = %v, want warn", cfg.LogLevel)
		}
		if cfg.ExpensesPath() != filepath.Join("data", "expenses.json") {
			t.Errorf("ExpensesPath() = %v", cfg.ExpensesPath())
		}
		if cfg.BudgetPath() != filepath.Join("data", "budget.json") {
			t.Errorf("BudgetPath() = %v", cfg.BudgetPath())
		}
	})

	t.Run("environment variables", func(t *testing.T) {
		t.Setenv("GASTOS_BACKEND", "sqlite")
		t.Setenv("GASTOS_DATA_DIR", "/tmp/gastos")
		t.Setenv("GASTOS_SQLITE_PATH", "/tmp/other.db")
		t.Setenv("LOG_LEVEL", "debug")

		cfg := Load()

		if cfg.DataBackend != BackendSQLite {
			t.Errorf("Load() DataBackend = %v, want sqlite", cfg.DataBackend)
		}
		if cfg.DataDir != "/tmp/gastos" {
			t.Errorf("Load() DataDir = %v, want /tmp/gastos", cfg.DataDir)
		}
		if cfg.SQLitePath() != "/tmp/other.db" {
			t.Errorf("SQLitePath() = %v, want /tmp/other.db", cfg.SQLitePath())
		}
		if cfg.LogLevel != "debug" {
			t.Errorf("Load() LogLevel = %v, want debug", cfg.LogLevel)
		}
	})

	t.Run("sqlite path follows data dir", func(t *testing.T) {
		t.Setenv("GASTOS_DATA_DIR", "/var/lib/gastos")
		t.Setenv("GASTOS_SQLITE_PATH", "")

		cfg := Load()
		if cfg.SQLitePath() != filepath.Join("/var/lib/gastos", "gastos.db") {
			t.Errorf("SQLitePath() = %v", cfg.SQLitePath())
		}

		cfg.DataDir = "/elsewhere"
		if cfg.SQLitePath() != filepath.Join("/elsewhere", "gastos.db") {
			t.Errorf("SQLitePath() after override = %v", cfg.SQLitePath())
		}
	})
}
