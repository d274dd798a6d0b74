package main

import (
	"io"
	"strings"

	"github.com/spf13/cobra"

	"gastos/internal/backend"
	"gastos/internal/cli"
	"gastos/internal/log"
	"gastos/internal/services"
	"gastos/internal/ui"
)

// app holds the per-invocation state shared by every command.
type app struct {
	overrides cli.Overrides
	stderr    io.Writer

	service *services.ExpenseService
	printer *ui.Printer
	logger  *log.Logger

	// opts are appended when the service is built; tests use it to pin the clock.
	opts []services.Option
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stderr:  stderr,
		printer: ui.NewPrinter(stdout, stderr),
		logger:  log.Nop(),
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "gastos",
		Short: "Track personal expenses against a monthly budget",
		Long: `gastos records expenses, lists, edits and removes them, summarizes
spending per category and compares the total against a monthly budget.

Data lives in expenses.json and budget.json under the data directory
(GASTOS_DATA_DIR, default ./data). Set GASTOS_BACKEND=sqlite to keep it
in a SQLite database instead.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.open,
	}

	root.PersistentFlags().StringVar(&a.overrides.DataDir, "data-dir", "", "directory holding the data files (overrides GASTOS_DATA_DIR)")
	root.PersistentFlags().StringVar(&a.overrides.Backend, "backend", "",
		"storage backend: "+strings.Join(backend.GetBackendTypeStrings(), ", ")+" (overrides GASTOS_BACKEND)")
	root.PersistentFlags().BoolVarP(&a.overrides.Verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		a.addCmd(),
		a.listCmd(),
		a.updateCmd(),
		a.deleteCmd(),
		a.summaryCmd(),
		a.setBudgetCmd(),
		a.getBudgetCmd(),
		a.compareCmd(),
	)
	return root
}

// open loads configuration and opens the store before any subcommand runs.
func (a *app) open(cmd *cobra.Command, _ []string) error {
	cfg, err := cli.LoadAndValidateConfig(a.overrides)
	if err != nil {
		return err
	}
	a.logger = cli.SetupLogger(cfg, a.stderr).With(log.FieldCommand, cmd.Name())

	svc, err := cli.OpenService(cmd.Context(), cfg, a.logger, a.opts...)
	if err != nil {
		return err
	}
	a.service = svc
	cmd.SetContext(log.WithLogger(cmd.Context(), a.logger))

	a.logger.Debug("Store opened", log.FieldBackend, cfg.DataBackend, log.FieldPath, cfg.DataDir)
	return nil
}

func (a *app) close() error {
	if a.service == nil {
		return nil
	}
	err := a.service.Close()
	a.service = nil
	return err
}
