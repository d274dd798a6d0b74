package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"gastos/internal/core"
	"gastos/internal/log"
	"gastos/internal/storage"
)

var (
	// ErrExpenseNotFound is returned by Update and Delete when no expense
	// has the requested id. Nothing is saved in that case.
	ErrExpenseNotFound = errors.New("expense not found")

	// ErrBudgetNotSet and ErrBudgetCorrupt accompany a zero budget that
	// was substituted for a missing or unreadable budget document.
	ErrBudgetNotSet  = errors.New("budget not set")
	ErrBudgetCorrupt = errors.New("budget unreadable")
)

// ExpenseService runs each command as one load, compute, save cycle
// against a Store.
type ExpenseService struct {
	store  storage.Store
	now    func() time.Time
	logger *log.Logger
}

type Option func(*ExpenseService)

// WithClock overrides the time source used to date new expenses.
func WithClock(now func() time.Time) Option {
	return func(s *ExpenseService) { s.now = now }
}

func WithLogger(logger *log.Logger) Option {
	return func(s *ExpenseService) { s.logger = logger }
}

func NewExpenseService(store storage.Store, opts ...Option) *ExpenseService {
	s := &ExpenseService{
		store:  store,
		now:    time.Now,
		logger: log.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.Nop()
	}
	s.logger = s.logger.WithComponent(log.ComponentExpense)
	return s
}

// Add appends a new expense dated today. An empty category falls back to
// core.DefaultCategory.
func (s *ExpenseService) Add(ctx context.Context, description string, amount decimal.Decimal, category string) (core.Expense, error) {
	list, err := s.load(ctx)
	if err != nil {
		return core.Expense{}, err
	}

	if strings.TrimSpace(category) == "" {
		category = core.DefaultCategory
	}
	e := core.Expense{
		ID:          core.NextID(list),
		Description: description,
		Amount:      amount,
		Date:        core.DateOf(s.now()),
		Category:    category,
	}
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}

	if err := s.save(ctx, append(list, e)); err != nil {
		return core.Expense{}, err
	}

	fields := log.NewFields().WithExpense(e.ID, e.Description, e.Amount, e.Category).WithOperation(log.OpCreate)
	s.logger.InfoContext(ctx, "Expense added", fields.ToSlice()...)
	return e, nil
}

// List returns the stored expenses in insertion order.
func (s *ExpenseService) List(ctx context.Context) ([]core.Expense, error) {
	return s.load(ctx)
}

// Update overwrites the fields set in upd on the first expense with id.
func (s *ExpenseService) Update(ctx context.Context, id int64, upd core.ExpenseUpdate) (core.Expense, error) {
	list, err := s.load(ctx)
	if err != nil {
		return core.Expense{}, err
	}

	i := core.IndexOf(list, id)
	if i < 0 {
		s.logger.InfoContext(ctx, "Expense to update not found", log.FieldExpenseID, id)
		return core.Expense{}, fmt.Errorf("%w: id %d", ErrExpenseNotFound, id)
	}

	updated := upd.Apply(list[i])
	if err := updated.Validate(); err != nil {
		return core.Expense{}, err
	}
	list[i] = updated

	if err := s.save(ctx, list); err != nil {
		return core.Expense{}, err
	}

	fields := log.NewFields().WithExpense(updated.ID, updated.Description, updated.Amount, updated.Category).WithOperation(log.OpUpdate)
	s.logger.InfoContext(ctx, "Expense updated", fields.ToSlice()...)
	return updated, nil
}

// Delete removes the first expense with id. Remaining ids keep their values.
func (s *ExpenseService) Delete(ctx context.Context, id int64) (core.Expense, error) {
	list, err := s.load(ctx)
	if err != nil {
		return core.Expense{}, err
	}

	i := core.IndexOf(list, id)
	if i < 0 {
		s.logger.InfoContext(ctx, "Expense to delete not found", log.FieldExpenseID, id)
		return core.Expense{}, fmt.Errorf("%w: id %d", ErrExpenseNotFound, id)
	}

	removed := list[i]
	list = append(list[:i], list[i+1:]...)
	if err := s.save(ctx, list); err != nil {
		return core.Expense{}, err
	}

	s.logger.InfoContext(ctx, "Expense deleted", log.FieldExpenseID, id, log.FieldOperation, log.OpDelete)
	return removed, nil
}

// Summary aggregates the stored expenses by category.
func (s *ExpenseService) Summary(ctx context.Context) (core.Summary, error) {
	list, err := s.load(ctx)
	if err != nil {
		return core.Summary{}, err
	}
	return core.Summarize(list), nil
}

// SetBudget stores amount as the monthly budget.
func (s *ExpenseService) SetBudget(ctx context.Context, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return core.ErrNegativeAmount
	}
	if err := s.store.SetBudget(ctx, amount); err != nil {
		return fmt.Errorf("save budget: %w", err)
	}
	s.logger.WithComponent(log.ComponentBudget).InfoContext(ctx, "Budget set", log.FieldAmount, amount.String())
	return nil
}

// Budget returns the stored budget. When the budget document is missing
// or unreadable it returns a zero budget together with ErrBudgetNotSet or
// ErrBudgetCorrupt; the zero budget is usable in both cases. Any other
// error means the budget could not be determined.
func (s *ExpenseService) Budget(ctx context.Context) (core.Budget, error) {
	b, err := s.store.GetBudget(ctx)
	switch {
	case err == nil:
		return b, nil
	case errors.Is(err, storage.ErrNotFound):
		s.logger.WithComponent(log.ComponentBudget).InfoContext(ctx, "No budget stored, using zero", log.FieldFallback, true)
		return core.Budget{Amount: decimal.Zero}, ErrBudgetNotSet
	case errors.Is(err, storage.ErrCorrupt):
		s.logger.WithComponent(log.ComponentBudget).InfoContext(ctx, "Stored budget unreadable, using zero", log.FieldError, err, log.FieldFallback, true)
		return core.Budget{Amount: decimal.Zero}, fmt.Errorf("%w: %v", ErrBudgetCorrupt, err)
	default:
		return core.Budget{}, fmt.Errorf("read budget: %w", err)
	}
}

// Compare relates total spend to the budget. The budget fallback errors of
// Budget are passed through alongside a valid comparison.
func (s *ExpenseService) Compare(ctx context.Context) (core.Comparison, error) {
	list, err := s.load(ctx)
	if err != nil {
		return core.Comparison{}, err
	}

	b, budgetErr := s.Budget(ctx)
	if budgetErr != nil && !IsBudgetFallback(budgetErr) {
		return core.Comparison{}, budgetErr
	}
	return core.Compare(b, list), budgetErr
}

// IsBudgetFallback reports whether err only signals a substituted zero budget.
func IsBudgetFallback(err error) bool {
	return errors.Is(err, ErrBudgetNotSet) || errors.Is(err, ErrBudgetCorrupt)
}

// load reads the snapshot. A missing or corrupt expenses document is an
// empty list; other read failures are returned.
func (s *ExpenseService) load(ctx context.Context) ([]core.Expense, error) {
	list, err := s.store.ReadExpenses(ctx)
	switch {
	case err == nil:
		return list, nil
	case errors.Is(err, storage.ErrNotFound), errors.Is(err, storage.ErrCorrupt):
		s.logger.DebugContext(ctx, "Starting from an empty expense list",
			log.FieldOperation, log.OpLoad, log.FieldError, err, log.FieldFallback, true)
		return []core.Expense{}, nil
	default:
		return nil, fmt.Errorf("load expenses: %w", err)
	}
}

func (s *ExpenseService) save(ctx context.Context, list []core.Expense) error {
	if err := s.store.SaveExpenses(ctx, list); err != nil {
		return fmt.Errorf("save expenses: %w", err)
	}
	return nil
}

// Close closes the underlying store
func (s *ExpenseService) Close() error {
	if s.store == nil {
		return nil
	}
	if err := s.store.Close(); err != nil {
		return fmt.Errorf("close expense service: %w", err)
	}
	return nil
}
