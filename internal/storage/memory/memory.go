package memory

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"gastos/internal/core"
	"gastos/internal/storage"
)

// Store keeps the snapshot in process memory. Nothing survives the process.
type Store struct {
	mu     sync.Mutex
	items  []core.Expense
	saved  bool
	budget *core.Budget
	saves  int
}

var _ storage.Store = (*Store)(nil)

func New() *Store {
	return &Store{}
}

// NewWithExpenses seeds the store as if list had been saved.
func NewWithExpenses(list []core.Expense) *Store {
	s := New()
	s.items = append([]core.Expense(nil), list...)
	s.saved = true
	return s
}

// ReadExpenses returns a copy of the snapshot, or ErrNotFound before the
// first save.
func (s *Store) ReadExpenses(_ context.Context) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.saved {
		return nil, storage.ErrNotFound
	}
	return append([]core.Expense(nil), s.items...), nil
}

func (s *Store) SaveExpenses(_ context.Context, list []core.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]core.Expense(nil), list...)
	s.saved = true
	s.saves++
	return nil
}

func (s *Store) GetBudget(_ context.Context) (core.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.budget == nil {
		return core.Budget{}, storage.ErrNotFound
	}
	return *s.budget, nil
}

func (s *Store) SetBudget(_ context.Context, amount decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.budget = &core.Budget{Amount: amount}
	return nil
}

// Saves reports how many times SaveExpenses has been called.
func (s *Store) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

func (s *Store) Close() error { return nil }
