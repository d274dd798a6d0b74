package core

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCategory is assigned to expenses recorded without a category.
const DefaultCategory = "Other"

// DateLayout is the on-disk representation of a Date.
const DateLayout = "2006-01-02"

type (
	Date struct {
		time.Time
	}

	Expense struct {
		ID          int64
		Description string
		Amount      decimal.Decimal
		Date        Date // set at creation, never updated
		Category    string
	}

	// ExpenseUpdate lists the fields to overwrite on an existing expense.
	// A nil field leaves the stored value untouched; a non-nil field is
	// applied even when it holds a zero value.
	ExpenseUpdate struct {
		Description *string
		Amount      *decimal.Decimal
		Category    *string
	}

	Budget struct {
		Amount decimal.Decimal
	}
)

var (
	ErrInvalidDate    = errors.New("invalid date")
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrNegativeAmount = errors.New("amount must not be negative")
	ErrInvalidID      = errors.New("invalid expense id")
)

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, int(m), d)
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{Time: t}, nil
}

// storedDateLayouts are the layouts accepted when reading a data file.
var storedDateLayouts = []string{DateLayout, "2006-1-2", time.RFC3339Nano}

// ParseStoredDate reads a date written to a data file. Besides DateLayout
// it accepts unpadded month and day and full timestamps, which keep only
// their calendar day. An empty string is the zero Date.
func ParseStoredDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	for _, layout := range storedDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			y, m, d := t.Date()
			return NewDate(y, int(m), d), nil
		}
	}
	if len(s) > len(DateLayout) && s[len(DateLayout)] == 'T' {
		return ParseDate(s[:len(DateLayout)])
	}
	return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseStoredDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (e Expense) Validate() error {
	if e.ID < 1 {
		return ErrInvalidID
	}
	if e.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	return nil
}

// IsEmpty reports whether the update carries no field at all.
func (u ExpenseUpdate) IsEmpty() bool {
	return u.Description == nil && u.Amount == nil && u.Category == nil
}

// Apply returns a copy of e with every field set in u overwritten.
// ID and Date are never touched.
func (u ExpenseUpdate) Apply(e Expense) Expense {
	if u.Description != nil {
		e.Description = *u.Description
	}
	if u.Amount != nil {
		e.Amount = *u.Amount
	}
	if u.Category != nil {
		e.Category = *u.Category
	}
	return e
}

// NextID returns the id for a new expense appended to list.
// It is len(list)+1 for a list without gaps and never collides with
// an id still present after deletions.
func NextID(list []Expense) int64 {
	var maxID int64
	for _, e := range list {
		if e.ID > maxID {
			maxID = e.ID
		}
	}
	if n := int64(len(list)); n > maxID {
		maxID = n
	}
	return maxID + 1
}

// IndexOf returns the position of the first expense with id, or -1.
func IndexOf(list []Expense, id int64) int {
	for i, e := range list {
		if e.ID == id {
			return i
		}
	}
	return -1
}
