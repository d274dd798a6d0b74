package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"

	"gastos/internal/core"
	"gastos/internal/log"

	_ "modernc.org/sqlite"
)

// SQLiteRepository keeps the expense snapshot and the budget in one
// SQLite file. Rows carry their list position so reads return the
// snapshot in the order it was saved.
type SQLiteRepository struct {
	db     *sql.DB
	logger *log.Logger
}

var _ Store = (*SQLiteRepository)(nil)

func NewSQLiteRepository(dbPath string, logger *log.Logger) (*SQLiteRepository, error) {
	if logger == nil {
		logger = log.Nop()
	}
	logger = logger.WithComponent(log.ComponentStorage)

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := RunMigrations(dbPath, logger); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Debug("SQLite store ready", log.FieldPath, dbPath)

	return &SQLiteRepository{db: db, logger: logger}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// ReadExpenses implements ExpenseRepository. An empty table is an empty
// list, not ErrNotFound. A row whose amount or date cannot be parsed keeps
// its other columns and gets the zero value.
func (r *SQLiteRepository) ReadExpenses(ctx context.Context) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, description, amount, date, category FROM expenses ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	var list []core.Expense
	for rows.Next() {
		var (
			e            core.Expense
			amount, date string
		)
		if err := rows.Scan(&e.ID, &e.Description, &amount, &date, &e.Category); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		if e.Amount, err = core.ParseStoredAmount(amount); err != nil {
			r.logger.WarnContext(ctx, "Expense amount unreadable, using zero value",
				log.FieldExpenseID, e.ID, log.FieldName, "amount", log.FieldError, err)
		}
		if e.Date, err = core.ParseStoredDate(date); err != nil {
			r.logger.WarnContext(ctx, "Expense date unreadable, using zero value",
				log.FieldExpenseID, e.ID, log.FieldName, "date", log.FieldError, err)
		}
		list = append(list, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}

	r.logger.DebugContext(ctx, "Expenses loaded from SQLite", log.FieldCount, len(list))
	return list, nil
}

// SaveExpenses implements ExpenseRepository by replacing every row inside
// one transaction.
func (r *SQLiteRepository) SaveExpenses(ctx context.Context, list []core.Expense) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM expenses`); err != nil {
		return fmt.Errorf("clear expenses: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO expenses (position, id, description, amount, date, category) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range list {
		if _, err := stmt.ExecContext(ctx, i, e.ID, e.Description, e.Amount.String(), e.Date.String(), e.Category); err != nil {
			return fmt.Errorf("insert expense %d: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit expenses: %w", err)
	}

	r.logger.DebugContext(ctx, "Expenses saved to SQLite", log.FieldCount, len(list))
	return nil
}

// GetBudget implements BudgetRepository
func (r *SQLiteRepository) GetBudget(ctx context.Context) (core.Budget, error) {
	var amount string
	err := r.db.QueryRowContext(ctx, `SELECT amount FROM budget WHERE id = 1`).Scan(&amount)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Budget{}, ErrNotFound
	}
	if err != nil {
		return core.Budget{}, fmt.Errorf("query budget: %w", err)
	}

	d, err := decimal.NewFromString(amount)
	if err != nil {
		return core.Budget{}, fmt.Errorf("%w: budget amount %q", ErrCorrupt, amount)
	}
	return core.Budget{Amount: d}, nil
}

// SetBudget implements BudgetRepository
func (r *SQLiteRepository) SetBudget(ctx context.Context, amount decimal.Decimal) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO budget (id, amount, updated_at) VALUES (1, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (id) DO UPDATE SET amount = excluded.amount, updated_at = excluded.updated_at`,
		amount.String())
	if err != nil {
		return fmt.Errorf("upsert budget: %w", err)
	}

	r.logger.DebugContext(ctx, "Budget saved to SQLite", log.FieldAmount, amount.String())
	return nil
}
