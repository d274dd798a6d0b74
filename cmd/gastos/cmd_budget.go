package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"gastos/internal/log"
	"gastos/internal/services"
)

func (a *app) setBudgetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-budget <amount>",
		Short: "Set the monthly budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmountArg(args[0])
			if err != nil {
				return err
			}
			if err := a.service.SetBudget(cmd.Context(), amount); err != nil {
				return err
			}
			a.printer.Success("Budget set to $%s", amount.StringFixed(2))
			return nil
		},
	}
}

func (a *app) getBudgetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get-budget",
		Short: "Show the monthly budget",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := a.service.Budget(cmd.Context())
			if err := a.reportBudgetFallback(cmd.Context(), err); err != nil {
				return err
			}
			a.printer.Budget(b)
			return nil
		},
	}
}

func (a *app) compareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compare",
		Short: "Compare total spending with the budget",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.service.Compare(cmd.Context())
			if err := a.reportBudgetFallback(cmd.Context(), err); err != nil {
				return err
			}
			a.printer.Comparison(c)
			return nil
		},
	}
}

// reportBudgetFallback prints the message for a substituted zero budget
// and returns any error that is not such a fallback.
func (a *app) reportBudgetFallback(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if services.IsBudgetFallback(err) {
		log.FromContext(ctx).DebugContext(ctx, "Reporting zero budget", log.FieldError, err, log.FieldFallback, true)
	}
	switch {
	case errors.Is(err, services.ErrBudgetNotSet):
		a.printer.Warn("No budget set, using $0.00. Set one with: gastos set-budget <amount>")
		return nil
	case errors.Is(err, services.ErrBudgetCorrupt):
		a.printer.Error("Budget could not be read, using $0.00 (%v)", err)
		return nil
	default:
		return err
	}
}
