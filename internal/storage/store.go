package storage

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"gastos/internal/core"
)

var (
	// ErrNotFound reports that a document has never been written.
	ErrNotFound = errors.New("document not found")
	// ErrCorrupt reports a document that exists but cannot be parsed.
	ErrCorrupt = errors.New("document corrupt")
)

// Ports implemented by every backend. Reads return the whole snapshot and
// writes replace it; there are no partial updates.
type (
	ExpenseRepository interface {
		// ReadExpenses returns every stored expense in insertion order.
		ReadExpenses(ctx context.Context) ([]core.Expense, error)
		// SaveExpenses overwrites the stored list with list.
		SaveExpenses(ctx context.Context, list []core.Expense) error
	}

	BudgetRepository interface {
		GetBudget(ctx context.Context) (core.Budget, error)
		// SetBudget replaces the amount and keeps any other stored attribute.
		SetBudget(ctx context.Context, amount decimal.Decimal) error
	}

	Store interface {
		ExpenseRepository
		BudgetRepository
		Close() error
	}
)
