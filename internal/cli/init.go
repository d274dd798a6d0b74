// Package cli provides common CLI initialization utilities: environment
// loading, configuration, logging and store wiring for cmd/gastos.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/joho/godotenv"

	"gastos/internal/backend"
	"gastos/internal/config"
	"gastos/internal/log"
	"gastos/internal/services"
)

// Overrides carries values given on the command line. Empty fields keep
// the environment configuration.
type Overrides struct {
	DataDir string
	Backend string
	Verbose bool
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as the file is optional.
func LoadEnvFile(filenames ...string) {
	_ = godotenv.Load(filenames...)
}

// LoadAndValidateConfig loads configuration, applies overrides and
// validates the result.
func LoadAndValidateConfig(o Overrides) (*config.Config, error) {
	cfg := config.Load()
	if o.DataDir != "" {
		cfg.DataDir = o.DataDir
	}
	if o.Backend != "" {
		cfg.DataBackend = o.Backend
	}
	if o.Verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SetupLogger initializes structured logging at the configured level.
// Returns the configured logger and sets it as the default logger.
func SetupLogger(cfg *config.Config, w io.Writer) *log.Logger {
	logger := log.New(log.Config{
		Level:     log.ParseLevel(cfg.LogLevel, slog.LevelWarn),
		Component: log.ComponentCLI,
		Output:    w,
	})
	log.SetDefault(logger)
	return logger
}

// OpenService builds the configured store and the expense service on top
// of it. The service's Close releases the store.
func OpenService(ctx context.Context, cfg *config.Config, logger *log.Logger, opts ...services.Option) (*services.ExpenseService, error) {
	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}

	res, err := backend.NewFactory(logger).CreateBackend(ctx, backendCfg)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", backendCfg.Type, err)
	}

	opts = append([]services.Option{services.WithLogger(logger)}, opts...)
	return services.NewExpenseService(res.Store, opts...), nil
}
