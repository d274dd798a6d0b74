package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"gastos/internal/core"
	"gastos/internal/services"
	"gastos/internal/ui"
)

func (a *app) addCmd() *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "add <description> <amount>",
		Short: "Add a new expense",
		Long: `Records an expense dated today. The category defaults to "Other".

Example:
  gastos add "coffee" 3.5
  gastos add "bus ticket" 2,20 --category Transport`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmountArg(args[1])
			if err != nil {
				return err
			}
			e, err := a.service.Add(cmd.Context(), args[0], amount, category)
			if err != nil {
				return err
			}
			a.printer.Success("Expense added successfully (id %d)", e.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", core.DefaultCategory, "expense category")
	return cmd
}

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all expenses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := a.service.List(cmd.Context())
			if err != nil {
				return err
			}
			a.printer.Expenses(list)
			return nil
		},
	}
}

func (a *app) updateCmd() *cobra.Command {
	var description, amount, category string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update fields of an existing expense",
		Long: `Overwrites the fields given as flags. Fields not given keep their
value, so --amount 0 sets the amount to zero. The date never changes.

Example:
  gastos update 3 --amount 12.50 --category Food`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}

			var upd core.ExpenseUpdate
			if cmd.Flags().Changed("description") {
				upd.Description = &description
			}
			if cmd.Flags().Changed("amount") {
				d, err := parseAmountArg(amount)
				if err != nil {
					return err
				}
				upd.Amount = &d
			}
			if cmd.Flags().Changed("category") {
				upd.Category = &category
			}
			if upd.IsEmpty() {
				return errors.New("nothing to update: pass --description, --amount or --category")
			}

			e, err := a.service.Update(cmd.Context(), id, upd)
			if errors.Is(err, services.ErrExpenseNotFound) {
				a.printer.Warn("Expense %d not found", id)
				return nil
			}
			if err != nil {
				return err
			}
			a.printer.Success("Expense updated successfully: %s", ui.ExpenseLine(e))
			return nil
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "new description")
	cmd.Flags().StringVarP(&amount, "amount", "a", "", "new amount")
	cmd.Flags().StringVarP(&category, "category", "c", "", "new category")
	return cmd
}

func (a *app) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an expense",
		Long:  "Removes the expense with the given id. Other expenses keep their ids.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}
			if _, err := a.service.Delete(cmd.Context(), id); errors.Is(err, services.ErrExpenseNotFound) {
				a.printer.Warn("Expense %d not found", id)
				return nil
			} else if err != nil {
				return err
			}
			a.printer.Success("Expense %d deleted successfully", id)
			return nil
		},
	}
}

func (a *app) summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show totals and per-category statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.service.Summary(cmd.Context())
			if err != nil {
				return err
			}
			a.printer.Summary(s)
			return nil
		},
	}
}

func parseAmountArg(s string) (decimal.Decimal, error) {
	d, err := core.ParseAmount(s)
	if err != nil {
		return d, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d, nil
}

func parseIDArg(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w: %q", core.ErrInvalidID, s)
	}
	return id, nil
}
