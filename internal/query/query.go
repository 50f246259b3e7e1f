// Package query filters and orders the ledger for display.
package query

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"ledger/internal/core"
)

// AllMonths disables the month filter.
const AllMonths = "all"

// Filters narrows a ledger view. Zero values disable each filter.
type Filters struct {
	MonthToken string
	SearchText string
}

// Query returns the expenses matching f, most recent first. Expenses on the
// same date keep their ledger order. The result is never nil.
func Query(ledger []core.Expense, f Filters) []core.Expense {
	out := make([]core.Expense, 0, len(ledger))

	monthFilter := strings.TrimSpace(f.MonthToken)
	var year, month int
	if monthFilter != "" && !strings.EqualFold(monthFilter, AllMonths) {
		var ok bool
		year, month, ok = ParseMonthToken(monthFilter)
		if !ok {
			return out
		}
	} else {
		monthFilter = ""
	}

	needle := strings.ToLower(strings.TrimSpace(f.SearchText))

	for _, e := range ledger {
		if monthFilter != "" && (e.Date.Year() != year || e.Date.Month() != month) {
			continue
		}
		if needle != "" && !matches(e, needle) {
			continue
		}
		out = append(out, e)
	}

	slices.SortStableFunc(out, func(a, b core.Expense) int {
		return b.Date.Compare(a.Date.Time)
	})
	return out
}

func matches(e core.Expense, needle string) bool {
	if strings.Contains(strings.ToLower(e.Title), needle) {
		return true
	}
	return strings.Contains(strings.ToLower(string(e.Category.OrDefault())), needle)
}

// ParseMonthToken parses "YYYY-M" or "YYYY-MM".
func ParseMonthToken(tok string) (year, month int, ok bool) {
	y, m, found := strings.Cut(strings.TrimSpace(tok), "-")
	if !found || len(y) != 4 || len(m) == 0 || len(m) > 2 {
		return 0, 0, false
	}
	year, err := strconv.Atoi(y)
	if err != nil || year < 1 {
		return 0, 0, false
	}
	month, err = strconv.Atoi(m)
	if err != nil || month < 1 || month > 12 {
		return 0, 0, false
	}
	return year, month, true
}

// MonthToken formats a month the way the month filter expects it.
func MonthToken(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// MonthOption is one entry of the month picker.
type MonthOption struct {
	Token string `json:"token"`
	Label string `json:"label"`
}

// RecentMonths lists the n months ending at ref's month, newest first.
func RecentMonths(ref core.Date, n int) []MonthOption {
	if n <= 0 {
		n = 12
	}
	start := ref.MonthStart().Time
	out := make([]MonthOption, 0, n)
	for i := 0; i < n; i++ {
		d := start.AddDate(0, -i, 0)
		out = append(out, MonthOption{
			Token: MonthToken(d.Year(), int(d.Month())),
			Label: MonthLabel(d.Year(), d.Month()),
		})
	}
	return out
}

// MonthLabel renders a short month label such as "Mar 2024".
func MonthLabel(year int, month time.Month) string {
	return fmt.Sprintf("%s %d", month.String()[:3], year)
}
