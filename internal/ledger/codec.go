package ledger

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"ledger/internal/core"
)

// record is the persisted shape of an expense. Amounts are written as
// JSON numbers; numeric strings are accepted when reading.
type record struct {
	ID       string      `json:"id"`
	Title    string      `json:"title"`
	Amount   json.Number `json:"amount"`
	Category string      `json:"category"`
	Date     string      `json:"date"`
}

// Encode serialises the ledger to its blob form.
func Encode(items []core.Expense) ([]byte, error) {
	out := make([]record, len(items))
	for i, e := range items {
		out[i] = record{
			ID:       e.ID,
			Title:    e.Title,
			Amount:   json.Number(e.Amount.String()),
			Category: string(e.Category),
			Date:     e.Date.String(),
		}
	}
	return json.Marshal(out)
}

// Decode parses a blob. Records that do not form a valid expense are
// returned in skipped rather than failing the whole blob; a blob that is
// not a JSON array of objects is an error.
func Decode(data []byte) (items []core.Expense, skipped int, err error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, 0, nil
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, 0, fmt.Errorf("decode ledger: %w", err)
	}

	items = make([]core.Expense, 0, len(raws))
	for _, raw := range raws {
		var r record
		if err := json.Unmarshal(raw, &r); err != nil {
			skipped++
			continue
		}
		e, ok := r.expense()
		if !ok {
			skipped++
			continue
		}
		items = append(items, e)
	}
	return items, skipped, nil
}

func (r record) expense() (core.Expense, bool) {
	amount, err := decimal.NewFromString(r.Amount.String())
	if err != nil {
		return core.Expense{}, false
	}
	date, err := core.ParseDate(r.Date)
	if err != nil {
		return core.Expense{}, false
	}
	e := core.Expense{
		ID:       r.ID,
		Title:    r.Title,
		Amount:   amount,
		Category: core.NormalizeCategory(r.Category),
		Date:     date,
	}
	if e.Validate() != nil {
		return core.Expense{}, false
	}
	return e, true
}
