// Package export renders the ledger as a downloadable CSV file.
//
// Only the title column is quoted. Category and date values are written
// as-is and must not contain commas or quotes.
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"ledger/internal/core"
)

const (
	Filename    = "expenses.csv"
	ContentType = "text/csv"
	Header      = "id,title,amount,category,date"
)

// ErrEmptyLedger is returned instead of producing a header-only file.
var ErrEmptyLedger = errors.New("no expenses to export")

// ToCSV encodes the ledger in its stored order. Lines are separated by
// "\n" with no trailing newline.
func ToCSV(ledger []core.Expense) (string, error) {
	if len(ledger) == 0 {
		return "", ErrEmptyLedger
	}
	lines := make([]string, 0, len(ledger)+1)
	lines = append(lines, Header)
	for _, e := range ledger {
		lines = append(lines, Row(e))
	}
	return strings.Join(lines, "\n"), nil
}

// Row encodes a single expense without a line terminator.
func Row(e core.Expense) string {
	return strings.Join(Fields(e), ",")
}

// Fields returns the encoded columns of e in header order.
func Fields(e core.Expense) []string {
	return []string{
		e.ID,
		quote(e.Title),
		e.Amount.String(),
		string(e.Category),
		e.Date.String(),
	}
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// WriteCSV writes the same text ToCSV returns.
func WriteCSV(w io.Writer, ledger []core.Expense) error {
	text, err := ToCSV(ledger)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, text); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}
