package core

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"2025-01-01", true},
		{" 2025-12-31 ", true},
		{"2025-13-01", false},
		{"01/02/2025", false},
		{"", false},
	}
	for _, tc := range cases {
		_, err := ParseDate(tc.in)
		if tc.ok && err != nil {
			t.Fatalf("%q expected ok, got %v", tc.in, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("%q expected error", tc.in)
		}
	}
}

func TestDateJSON(t *testing.T) {
	b, err := json.Marshal(NewDate(2025, 3, 7))
	if err != nil || string(b) != `"2025-03-07"` {
		t.Fatalf("unexpected marshal: %s err=%v", b, err)
	}

	var d Date
	if err := json.Unmarshal([]byte(`"2025-03-07T10:11:12.000Z"`), &d); err != nil {
		t.Fatalf("unmarshal timestamp: %v", err)
	}
	if !d.Equal(NewDate(2025, 3, 7).Time) {
		t.Fatalf("expected truncated date, got %v", d)
	}

	if err := json.Unmarshal([]byte(`"yesterday"`), &d); err == nil {
		t.Fatalf("expected error for garbage date")
	}
}

func TestDateOfUsesLocalCalendarDay(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	got := DateOf(time.Date(2025, 6, 30, 22, 0, 0, 0, loc))
	if got.String() != "2025-06-30" {
		t.Fatalf("expected 2025-06-30, got %s", got)
	}
}

func TestNextID(t *testing.T) {
	cases := []struct {
		name string
		ids  []int64
		want int64
	}{
		{"empty", nil, 1},
		{"contiguous", []int64{1, 2, 3}, 4},
		{"gap after delete", []int64{1, 3}, 4},
		{"first deleted", []int64{2, 3}, 4},
	}
	for _, tc := range cases {
		list := make([]Expense, len(tc.ids))
		for i, id := range tc.ids {
			list[i] = Expense{ID: id}
		}
		if got := NextID(list); got != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.want, got)
		}
	}
}

func TestExpenseUpdateApply(t *testing.T) {
	orig := Expense{
		ID:          7,
		Description: "coffee",
		Amount:      decimal.RequireFromString("3.5"),
		Date:        NewDate(2025, 1, 1),
		Category:    DefaultCategory,
	}

	if got := (ExpenseUpdate{}).Apply(orig); got != orig {
		t.Fatalf("empty update changed expense: %+v", got)
	}

	zero := decimal.Zero
	empty := ""
	got := ExpenseUpdate{Amount: &zero, Category: &empty}.Apply(orig)
	if !got.Amount.IsZero() {
		t.Fatalf("expected amount set to zero, got %s", got.Amount)
	}
	if got.Category != "" {
		t.Fatalf("expected category cleared, got %q", got.Category)
	}
	if got.Description != "coffee" || got.ID != 7 || got.Date != orig.Date {
		t.Fatalf("untouched fields changed: %+v", got)
	}
}

func TestExpenseValidate(t *testing.T) {
	good := Expense{ID: 1, Amount: decimal.Zero}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Expense{ID: 0}).Validate(); err == nil {
		t.Fatalf("expected error for zero id")
	}
	if err := (Expense{ID: 1, Amount: decimal.NewFromInt(-1)}).Validate(); err == nil {
		t.Fatalf("expected error for negative amount")
	}
}

func TestParseStoredDate(t *testing.T) {
	cases := []struct {
		in   string
		want Date
		ok   bool
	}{
		{"2024-01-05", NewDate(2024, 1, 5), true},
		{"2024-1-5", NewDate(2024, 1, 5), true},
		{"2024-01-06T08:15:00.000Z", NewDate(2024, 1, 6), true},
		{"2024-01-06T23:30:00+02:00", NewDate(2024, 1, 6), true},
		{"", Date{}, true},
		{"someday", Date{}, false},
		{"05/01/2024", Date{}, false},
	}
	for _, tc := range cases {
		got, err := ParseStoredDate(tc.in)
		if !tc.ok {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
			continue
		}
		if err != nil || !got.Equal(tc.want.Time) {
			t.Fatalf("%q expected %s, got %s (err=%v)", tc.in, tc.want, got, err)
		}
	}
}
