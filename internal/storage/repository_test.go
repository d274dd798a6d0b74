package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"

	"gastos/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "nested", "gastos.db"), nil)
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

var decimalEqual = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func TestSQLiteRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	got, err := repo.ReadExpenses(ctx)
	if err != nil || len(got) != 0 {
		t.Fatalf("expected empty list, got %v err=%v", got, err)
	}

	want := []core.Expense{
		{ID: 2, Description: "rent", Amount: decimal.RequireFromString("1000"), Date: core.NewDate(2025, 2, 1), Category: "Home"},
		{ID: 1, Description: "coffee", Amount: decimal.RequireFromString("3.5"), Date: core.NewDate(2025, 1, 31), Category: core.DefaultCategory},
	}
	if err := repo.SaveExpenses(ctx, want); err != nil {
		t.Fatalf("SaveExpenses: %v", err)
	}

	got, err = repo.ReadExpenses(ctx)
	if err != nil {
		t.Fatalf("ReadExpenses: %v", err)
	}
	if diff := cmp.Diff(want, got, decimalEqual); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}

	// A shorter snapshot replaces the previous one entirely.
	if err := repo.SaveExpenses(ctx, want[:1]); err != nil {
		t.Fatalf("SaveExpenses: %v", err)
	}
	got, _ = repo.ReadExpenses(ctx)
	if diff := cmp.Diff(want[:1], got, decimalEqual); diff != "" {
		t.Fatalf("replace mismatch (-want +got):\n%s", diff)
	}
}

func TestSQLiteRepositoryBudget(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	if _, err := repo.GetBudget(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := repo.SetBudget(ctx, decimal.RequireFromString("900")); err != nil {
		t.Fatalf("SetBudget: %v", err)
	}
	if err := repo.SetBudget(ctx, decimal.RequireFromString("950.25")); err != nil {
		t.Fatalf("SetBudget: %v", err)
	}

	b, err := repo.GetBudget(ctx)
	if err != nil || !b.Amount.Equal(decimal.RequireFromString("950.25")) {
		t.Fatalf("unexpected budget %s err=%v", b.Amount, err)
	}
}

func TestSQLiteRepositoryCorruptBudget(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	if _, err := repo.db.ExecContext(ctx, `INSERT INTO budget (id, amount) VALUES (1, 'lots')`); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := repo.GetBudget(ctx); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", err)
	}
}

func TestSQLiteRepositoryKeepsRowsWithBadColumns(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	if _, err := repo.db.ExecContext(ctx, `INSERT INTO expenses (position, id, description, amount, date, category) VALUES
		(0, 1, 'coffee', '3.5', '2025-01-31', 'Other'),
		(1, 2, 'lunch', 'lots', 'someday', 'Food'),
		(2, 3, 'bus', '2,20', '2025-2-1', 'Transport')`); err != nil {
		t.Fatalf("seed: %v", err)
	}

	got, err := repo.ReadExpenses(ctx)
	if err != nil {
		t.Fatalf("ReadExpenses: %v", err)
	}
	want := []core.Expense{
		{ID: 1, Description: "coffee", Amount: decimal.RequireFromString("3.5"), Date: core.NewDate(2025, 1, 31), Category: "Other"},
		{ID: 2, Description: "lunch", Amount: decimal.Zero, Date: core.Date{}, Category: "Food"},
		{ID: 3, Description: "bus", Amount: decimal.RequireFromString("2.20"), Date: core.NewDate(2025, 2, 1), Category: "Transport"},
	}
	if diff := cmp.Diff(want, got, decimalEqual); diff != "" {
		t.Fatalf("lenient read mismatch (-want +got):\n%s", diff)
	}
}

func TestRunMigrationsIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gastos.db")
	first, err := RunMigrations(path, nil)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := RunMigrations(path, nil)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if first != 1 || second != first {
		t.Fatalf("expected schema version 1 twice, got %d then %d", first, second)
	}
}
