// Package jsonfile stores the expense list and the budget as two JSON
// documents under a data directory.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"

	"gastos/internal/core"
	"gastos/internal/log"
	"gastos/internal/storage"
)

const (
	ExpensesFile = "expenses.json"
	BudgetFile   = "budget.json"
)

// Store reads and writes whole documents; every save rewrites the file.
type Store struct {
	expensesPath string
	budgetPath   string
	logger       *log.Logger
}

var _ storage.Store = (*Store)(nil)

// New returns a store for expenses.json and budget.json inside dir.
func New(dir string, logger *log.Logger) *Store {
	return NewWithPaths(filepath.Join(dir, ExpensesFile), filepath.Join(dir, BudgetFile), logger)
}

func NewWithPaths(expensesPath, budgetPath string, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Nop()
	}
	return &Store{
		expensesPath: expensesPath,
		budgetPath:   budgetPath,
		logger:       logger.WithComponent(log.ComponentStorage),
	}
}

// expenseRecord is the on-disk shape written by SaveExpenses.
type expenseRecord struct {
	ID          int64       `json:"id"`
	Description string      `json:"description"`
	Amount      json.Number `json:"amount"`
	Date        core.Date   `json:"date"`
	Category    string      `json:"category"`
}

// ReadExpenses returns ErrCorrupt only when the document is not a JSON
// array. A record with an unreadable field keeps its other fields and
// gets the zero value for that one, so a single bad entry never hides
// the rest of the history.
func (s *Store) ReadExpenses(ctx context.Context) ([]core.Expense, error) {
	data, err := readDocument(s.expensesPath)
	if err != nil {
		return nil, err
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", storage.ErrCorrupt, s.expensesPath, err)
	}

	list := make([]core.Expense, 0, len(elems))
	for i, elem := range elems {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(elem, &fields); err != nil || fields == nil {
			s.logger.WarnContext(ctx, "Skipping expense entry that is not an object",
				log.FieldPath, s.expensesPath, log.FieldRecord, i)
			continue
		}

		e, problems := decodeRecord(fields)
		for _, p := range problems {
			s.logger.WarnContext(ctx, "Expense field unreadable, using zero value",
				log.FieldPath, s.expensesPath, log.FieldRecord, i, log.FieldName, p.field, log.FieldError, p.err)
		}
		list = append(list, e)
	}

	s.logger.DebugContext(ctx, "Expenses document loaded", log.FieldPath, s.expensesPath, log.FieldCount, len(list))
	return list, nil
}

type fieldProblem struct {
	field string
	err   error
}

// decodeRecord fills an expense from one document entry. Absent or null
// fields are zero without a problem being reported.
func decodeRecord(fields map[string]json.RawMessage) (core.Expense, []fieldProblem) {
	var (
		e        core.Expense
		problems []fieldProblem
		err      error
	)
	note := func(field string, err error) {
		if err != nil {
			problems = append(problems, fieldProblem{field: field, err: err})
		}
	}

	e.ID, err = decodeID(fields["id"])
	note("id", err)
	e.Description, err = decodeString(fields["description"])
	note("description", err)
	e.Amount, err = decodeAmount(fields["amount"])
	note("amount", err)
	e.Date, err = decodeDate(fields["date"])
	note("date", err)
	e.Category, err = decodeString(fields["category"])
	note("category", err)

	return e, problems
}

func isNull(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || string(raw) == "null"
}

func decodeID(raw json.RawMessage) (int64, error) {
	if isNull(raw) {
		return 0, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, err
	}
	return n.Int64()
}

func decodeString(raw json.RawMessage) (string, error) {
	if isNull(raw) {
		return "", nil
	}
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", err
	}
	return v, nil
}

// decodeAmount accepts a JSON number or a string holding one.
func decodeAmount(raw json.RawMessage) (decimal.Decimal, error) {
	if isNull(raw) {
		return decimal.Zero, nil
	}
	text := string(bytes.TrimSpace(raw))
	if text[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return decimal.Zero, err
		}
	}
	return core.ParseStoredAmount(text)
}

func decodeDate(raw json.RawMessage) (core.Date, error) {
	s, err := decodeString(raw)
	if err != nil {
		return core.Date{}, err
	}
	return core.ParseStoredDate(s)
}

func (s *Store) SaveExpenses(ctx context.Context, list []core.Expense) error {
	records := make([]expenseRecord, len(list))
	for i, e := range list {
		records[i] = expenseRecord{
			ID:          e.ID,
			Description: e.Description,
			Amount:      json.Number(e.Amount.String()),
			Date:        e.Date,
			Category:    e.Category,
		}
	}

	if err := writeDocument(s.expensesPath, records); err != nil {
		return err
	}

	s.logger.DebugContext(ctx, "Expenses document saved", log.FieldPath, s.expensesPath, log.FieldCount, len(list))
	return nil
}

func (s *Store) GetBudget(ctx context.Context) (core.Budget, error) {
	fields, err := s.readBudgetFields()
	if err != nil {
		return core.Budget{}, err
	}

	raw, ok := fields["amount"]
	if !ok {
		return core.Budget{}, fmt.Errorf("%w: %s: missing amount", storage.ErrCorrupt, s.budgetPath)
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return core.Budget{}, fmt.Errorf("%w: %s: %v", storage.ErrCorrupt, s.budgetPath, err)
	}
	amount, err := parseNumber(n)
	if err != nil {
		return core.Budget{}, fmt.Errorf("%w: %s: %v", storage.ErrCorrupt, s.budgetPath, err)
	}

	s.logger.DebugContext(ctx, "Budget document loaded", log.FieldPath, s.budgetPath, log.FieldAmount, amount.String())
	return core.Budget{Amount: amount}, nil
}

// SetBudget rewrites the amount field. Other fields of an existing, valid
// document are preserved; a missing or corrupt document is replaced.
func (s *Store) SetBudget(ctx context.Context, amount decimal.Decimal) error {
	fields, err := s.readBudgetFields()
	switch {
	case err == nil:
	case errors.Is(err, storage.ErrNotFound), errors.Is(err, storage.ErrCorrupt):
		s.logger.DebugContext(ctx, "Starting a new budget document", log.FieldPath, s.budgetPath, log.FieldError, err)
		fields = map[string]json.RawMessage{}
	default:
		return err
	}

	fields["amount"] = json.RawMessage(amount.String())
	if err := writeDocument(s.budgetPath, fields); err != nil {
		return err
	}

	s.logger.DebugContext(ctx, "Budget document saved", log.FieldPath, s.budgetPath, log.FieldAmount, amount.String())
	return nil
}

func (s *Store) Close() error { return nil }

func (s *Store) readBudgetFields() (map[string]json.RawMessage, error) {
	data, err := readDocument(s.budgetPath)
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", storage.ErrCorrupt, s.budgetPath, err)
	}
	if fields == nil {
		return nil, fmt.Errorf("%w: %s: not an object", storage.ErrCorrupt, s.budgetPath)
	}
	return fields, nil
}

func readDocument(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: %s: empty document", storage.ErrCorrupt, path)
	}
	return data, nil
}

func writeDocument(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// parseNumber treats an absent amount as zero.
func parseNumber(n json.Number) (decimal.Decimal, error) {
	if n == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", n.String())
	}
	return d, nil
}
