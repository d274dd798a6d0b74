package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"gastos/internal/core"
)

func newTestPrinter() (*Printer, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return NewPrinter(&out, &errOut), &out, &errOut
}

func sampleExpenses() []core.Expense {
	return []core.Expense{
		{ID: 1, Description: "coffee", Amount: decimal.RequireFromString("3.5"), Date: core.NewDate(2026, 10, 14), Category: core.DefaultCategory},
		{ID: 2, Description: "rent", Amount: decimal.RequireFromString("1000"), Date: core.NewDate(2026, 10, 14), Category: core.DefaultCategory},
	}
}

func TestExpensesEmpty(t *testing.T) {
	p, out, _ := newTestPrinter()
	p.Expenses(nil)
	assert.Equal(t, "No expenses recorded.\n", out.String())
}

func TestExpensesLinesAndTable(t *testing.T) {
	p, out, _ := newTestPrinter()
	p.Expenses(sampleExpenses())

	text := out.String()
	assert.Contains(t, text, "#1 2026-10-14 coffee $3.50 (Other)\n")
	assert.Contains(t, text, "#2 2026-10-14 rent $1000.00 (Other)\n")
	assert.Contains(t, text, "Expenses\n")

	var rows int
	for _, line := range strings.Split(text, "\n") {
		if strings.Count(line, "|") == 4 {
			rows++
		}
	}
	assert.Equal(t, 3, rows, "header plus two rows")
}

func TestSummaryOutput(t *testing.T) {
	p, out, _ := newTestPrinter()
	p.Summary(core.Summarize(sampleExpenses()))

	text := out.String()
	for _, want := range []string{
		"Total: $1003.50",
		"Transactions: 2",
		"Category: Other",
		"Total:   $1003.50",
		"Count:   2",
		"Average: $501.75",
		"Max:     $1000.00",
		"Min:     $3.50",
	} {
		assert.Contains(t, text, want)
	}
}

func TestComparisonOutput(t *testing.T) {
	p, out, _ := newTestPrinter()
	p.Comparison(core.Compare(core.Budget{Amount: decimal.NewFromInt(900)}, sampleExpenses()))

	text := out.String()
	assert.Contains(t, text, "Budget: $900.00")
	assert.Contains(t, text, "Total spent: $1003.50")
	assert.Contains(t, text, "Difference: -$103.50")
	assert.Contains(t, text, "Over budget by $103.50")

	p, out, _ = newTestPrinter()
	p.Comparison(core.Compare(core.Budget{Amount: decimal.NewFromInt(2000)}, sampleExpenses()))
	assert.Contains(t, out.String(), "Remaining within budget: $996.50")
}

func TestDiagnosticsGoToErrOut(t *testing.T) {
	p, out, errOut := newTestPrinter()
	p.Warn("no budget set")
	p.Error("budget unreadable")

	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "Warning: no budget set")
	assert.Contains(t, errOut.String(), "Error: budget unreadable")
}

func TestSimpleTableEmpty(t *testing.T) {
	p, _, _ := newTestPrinter()
	assert.Empty(t, NewSimpleTable("x", []string{"a"}).View(p.styles))
}

func TestSimpleTablePadsShortRows(t *testing.T) {
	p, _, _ := newTestPrinter()
	table := NewSimpleTable("", []string{"ID", "Category"})
	table.AddRow("1")
	table.AddRow("2", "Food", "extra")

	lines := strings.Split(strings.TrimRight(table.View(p.styles), "\n"), "\n")
	assert.Len(t, lines, 4)
	for _, row := range lines[2:] {
		assert.Equal(t, 1, strings.Count(row, "|"), row)
	}
	assert.Contains(t, lines[3], "Food")
	assert.NotContains(t, lines[3], "extra")
}
