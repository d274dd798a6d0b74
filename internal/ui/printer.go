package ui

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"gastos/internal/core"
)

// Printer writes command results to out and diagnostics to errOut.
type Printer struct {
	out       io.Writer
	errOut    io.Writer
	styles    Styles
	errStyles Styles
}

func NewPrinter(out, errOut io.Writer) *Printer {
	return &Printer{
		out:       out,
		errOut:    errOut,
		styles:    NewStyles(lipgloss.NewRenderer(out)),
		errStyles: NewStyles(lipgloss.NewRenderer(errOut)),
	}
}

func (p *Printer) Success(format string, args ...any) {
	fmt.Fprintln(p.out, p.styles.Success.Render(fmt.Sprintf(format, args...)))
}

func (p *Printer) Info(format string, args ...any) {
	fmt.Fprintln(p.out, p.styles.Info.Render(fmt.Sprintf(format, args...)))
}

func (p *Printer) Warn(format string, args ...any) {
	fmt.Fprintln(p.errOut, p.errStyles.Warning.Render("Warning: "+fmt.Sprintf(format, args...)))
}

func (p *Printer) Error(format string, args ...any) {
	fmt.Fprintln(p.errOut, p.errStyles.Error.Render("Error: "+fmt.Sprintf(format, args...)))
}

// ExpenseLine renders one expense on a single line.
func ExpenseLine(e core.Expense) string {
	return fmt.Sprintf("#%d %s %s %s (%s)", e.ID, e.Date, e.Description, core.FormatMoney(e.Amount), e.Category)
}

// Expenses prints every expense as a line followed by a table.
func (p *Printer) Expenses(list []core.Expense) {
	if len(list) == 0 {
		p.Info("No expenses recorded.")
		return
	}

	for _, e := range list {
		fmt.Fprintln(p.out, ExpenseLine(e))
	}
	fmt.Fprintln(p.out)

	table := NewSimpleTable("Expenses", []string{"ID", "Date", "Description", "Amount", "Category"})
	for _, e := range list {
		table.AddRow(strconv.FormatInt(e.ID, 10), e.Date.String(), e.Description, core.FormatMoney(e.Amount), e.Category)
	}
	fmt.Fprint(p.out, table.View(p.styles))
}

// Summary prints the grand totals then one block per category.
func (p *Printer) Summary(s core.Summary) {
	fmt.Fprintf(p.out, "%s %s\n", p.styles.Bold.Render("Total:"), p.styles.Money.Render(core.FormatMoney(s.Total)))
	fmt.Fprintf(p.out, "%s %d\n", p.styles.Bold.Render("Transactions:"), s.Count)

	for _, c := range s.Categories {
		fmt.Fprintln(p.out)
		fmt.Fprintln(p.out, p.styles.Title.Render("Category: "+c.Name))
		fmt.Fprintf(p.out, "  Total:   %s\n", core.FormatMoney(c.Total))
		fmt.Fprintf(p.out, "  Count:   %d\n", c.Count)
		fmt.Fprintf(p.out, "  Average: %s\n", core.FormatMoney(c.Average()))
		fmt.Fprintf(p.out, "  Max:     %s\n", core.FormatMoney(c.Max))
		fmt.Fprintf(p.out, "  Min:     %s\n", core.FormatMoney(c.Min))
	}
}

func (p *Printer) Budget(b core.Budget) {
	fmt.Fprintf(p.out, "%s %s\n", p.styles.Bold.Render("Budget:"), p.styles.Money.Render(core.FormatMoney(b.Amount)))
}

// Comparison prints budget, spend and the signed difference, then either
// the remaining headroom or the overage.
func (p *Printer) Comparison(c core.Comparison) {
	fmt.Fprintf(p.out, "%s %s\n", p.styles.Bold.Render("Budget:"), core.FormatMoney(c.Budget))
	fmt.Fprintf(p.out, "%s %s\n", p.styles.Bold.Render("Total spent:"), core.FormatMoney(c.Total))
	fmt.Fprintf(p.out, "%s %s\n", p.styles.Bold.Render("Difference:"), core.FormatMoney(c.Difference))

	if c.WithinBudget() {
		p.Success("Remaining within budget: %s", core.FormatMoney(c.Headroom()))
		return
	}
	fmt.Fprintln(p.out, p.styles.Error.Render("Over budget by "+core.FormatMoney(c.Overage())))
}
