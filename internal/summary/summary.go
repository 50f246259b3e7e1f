// Package summary derives totals and breakdowns from the full ledger.
// Every function is total: an empty ledger yields zero values.
package summary

import (
	"time"

	"github.com/shopspring/decimal"

	"ledger/internal/core"
	"ledger/internal/query"
)

// DefaultWindow is the number of trailing months used by the category and
// monthly breakdowns.
const DefaultWindow = 6

// TotalSpent sums every amount in the ledger.
func TotalSpent(ledger []core.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range ledger {
		total = total.Add(e.Amount)
	}
	return total
}

// Balance is the negated total; the ledger has no income side.
func Balance(ledger []core.Expense) decimal.Decimal {
	total := TotalSpent(ledger)
	if total.IsZero() {
		return decimal.Zero
	}
	return total.Neg()
}

// CurrentMonthSpent sums the amounts dated in ref's calendar month.
func CurrentMonthSpent(ledger []core.Expense, ref core.Date) decimal.Decimal {
	total := decimal.Zero
	for _, e := range ledger {
		if e.Date.SameMonth(ref) {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// WindowStart is the first day of the month windowMonths-1 months before
// ref's month.
func WindowStart(ref core.Date, windowMonths int) core.Date {
	if windowMonths <= 0 {
		windowMonths = DefaultWindow
	}
	return core.DateOf(ref.MonthStart().AddDate(0, -(windowMonths - 1), 0))
}

// CategoryTotals sums amounts per category for records dated on or after
// WindowStart. Categories without records are omitted. Recognised
// categories come first in their configured order, followed by any other
// category in the order it was first seen.
func CategoryTotals(ledger []core.Expense, ref core.Date, windowMonths int) []core.CategoryAmount {
	start := WindowStart(ref, windowMonths)

	byCat := map[core.Category]decimal.Decimal{}
	var extra []core.Category
	for _, e := range ledger {
		if e.Date.Before(start.Time) {
			continue
		}
		cat := e.Category.OrDefault()
		sum, seen := byCat[cat]
		if !seen && !cat.IsKnown() {
			extra = append(extra, cat)
		}
		byCat[cat] = sum.Add(e.Amount)
	}

	list := make([]core.CategoryAmount, 0, len(byCat))
	for _, cat := range append(core.Categories(), extra...) {
		sum, ok := byCat[cat]
		if !ok {
			continue
		}
		list = append(list, core.CategoryAmount{Category: cat, Color: cat.Color(), Amount: sum})
	}
	return list
}

// MonthlySeries returns the n months ending at ref's month, oldest first,
// each with the sum of amounts dated in it.
func MonthlySeries(ledger []core.Expense, ref core.Date, n int) []core.MonthAmount {
	if n <= 0 {
		n = DefaultWindow
	}
	start := WindowStart(ref, n)

	series := make([]core.MonthAmount, n)
	for i := range series {
		d := start.AddDate(0, i, 0)
		series[i] = core.MonthAmount{
			Year:   d.Year(),
			Month:  int(d.Month()),
			Label:  query.MonthLabel(d.Year(), d.Month()),
			Amount: decimal.Zero,
		}
	}

	for _, e := range ledger {
		i := monthsBetween(start, e.Date)
		if i < 0 || i >= n {
			continue
		}
		series[i].Amount = series[i].Amount.Add(e.Amount)
	}
	return series
}

func monthsBetween(from, to core.Date) int {
	return (to.Year()-from.Year())*12 + to.Month() - from.Month()
}

// Build computes every dashboard figure with the default windows.
func Build(ledger []core.Expense, ref core.Date) core.Overview {
	return core.Overview{
		Reference:         ref,
		TotalSpent:        TotalSpent(ledger),
		Balance:           Balance(ledger),
		CurrentMonthSpent: CurrentMonthSpent(ledger, ref),
		ByCategory:        CategoryTotals(ledger, ref, DefaultWindow),
		Monthly:           MonthlySeries(ledger, ref, DefaultWindow),
	}
}

// Today is the reference date used when callers do not supply one.
func Today() core.Date {
	return core.DateOf(time.Now())
}
