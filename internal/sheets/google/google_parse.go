package google

import (
	"fmt"
	"strconv"
	"strings"

	"ledger/internal/core"
	"ledger/internal/export"
)

// sheetRange addresses the five ledger columns of a tab. Tab names are
// always quoted so names with spaces work.
func sheetRange(sheetName string) string {
	return fmt.Sprintf("'%s'!A:E", strings.ReplaceAll(sheetName, "'", "''"))
}

// rows lays the ledger out like the CSV export. Amounts are numbers so
// the sheet can sum them.
func rows(ledger []core.Expense) [][]interface{} {
	header := strings.Split(export.Header, ",")
	out := make([][]interface{}, 0, len(ledger)+1)
	out = append(out, toInterfaces(header))
	for _, e := range ledger {
		out = append(out, []interface{}{
			e.ID,
			e.Title,
			e.Amount.InexactFloat64(),
			string(e.Category),
			e.Date.String(),
		})
	}
	return out
}

// parseRows is the inverse of rows. A leading header row is ignored.
func parseRows(values [][]interface{}) (items []core.Expense, skipped int) {
	for i, row := range values {
		cols := toStrings(row)
		if i == 0 && len(cols) > 0 && strings.EqualFold(strings.TrimSpace(cols[0]), "id") {
			continue
		}
		if len(cols) < 5 {
			skipped++
			continue
		}
		amount, err := core.ParseAmount(cols[2])
		if err != nil {
			skipped++
			continue
		}
		date, err := core.ParseDate(cols[4])
		if err != nil {
			skipped++
			continue
		}
		e := core.Expense{
			ID:       strings.TrimSpace(cols[0]),
			Title:    strings.TrimSpace(cols[1]),
			Amount:   amount,
			Category: core.NormalizeCategory(cols[3]),
			Date:     date,
		}
		if e.Validate() != nil {
			skipped++
			continue
		}
		items = append(items, e)
	}
	return items, skipped
}

func toInterfaces(in []string) []interface{} {
	out := make([]interface{}, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}

func toStrings(in []interface{}) []string {
	out := make([]string, len(in))
	for i, v := range in {
		switch n := v.(type) {
		case float64:
			out[i] = strconv.FormatFloat(n, 'f', -1, 64)
		default:
			out[i] = fmt.Sprint(v)
		}
	}
	return out
}
