package core

import "github.com/shopspring/decimal"

// CategoryStats aggregates the expenses sharing one category.
type CategoryStats struct {
	Name  string
	Total decimal.Decimal
	Count int
	Max   decimal.Decimal
	Min   decimal.Decimal
}

// Average returns Total/Count, or zero for an empty group.
func (c CategoryStats) Average() decimal.Decimal {
	if c.Count == 0 {
		return decimal.Zero
	}
	return c.Total.Div(decimal.NewFromInt(int64(c.Count)))
}

// Summary is the grand total plus per-category stats in first-seen order.
type Summary struct {
	Total      decimal.Decimal
	Count      int
	Categories []CategoryStats
}

// Summarize computes totals over list in a single pass.
func Summarize(list []Expense) Summary {
	s := Summary{Total: decimal.Zero}
	index := make(map[string]int)
	for _, e := range list {
		s.Total = s.Total.Add(e.Amount)
		s.Count++

		i, ok := index[e.Category]
		if !ok {
			i = len(s.Categories)
			index[e.Category] = i
			s.Categories = append(s.Categories, CategoryStats{
				Name:  e.Category,
				Total: decimal.Zero,
				Max:   e.Amount,
				Min:   e.Amount,
			})
		}
		c := &s.Categories[i]
		c.Total = c.Total.Add(e.Amount)
		c.Count++
		c.Max = decimal.Max(c.Max, e.Amount)
		c.Min = decimal.Min(c.Min, e.Amount)
	}
	return s
}

// Comparison relates total spend to the configured budget.
type Comparison struct {
	Budget     decimal.Decimal
	Total      decimal.Decimal
	Difference decimal.Decimal // Budget - Total
}

// Compare sums list and relates it to budget.
func Compare(budget Budget, list []Expense) Comparison {
	total := decimal.Zero
	for _, e := range list {
		total = total.Add(e.Amount)
	}
	return Comparison{
		Budget:     budget.Amount,
		Total:      total,
		Difference: budget.Amount.Sub(total),
	}
}

// WithinBudget reports whether spend has not exceeded the budget.
func (c Comparison) WithinBudget() bool {
	return !c.Difference.IsNegative()
}

// Headroom is the amount still available, zero when over budget.
func (c Comparison) Headroom() decimal.Decimal {
	if !c.WithinBudget() {
		return decimal.Zero
	}
	return c.Difference
}

// Overage is the amount spent beyond the budget, zero when within it.
func (c Comparison) Overage() decimal.Decimal {
	if c.WithinBudget() {
		return decimal.Zero
	}
	return c.Difference.Abs()
}
