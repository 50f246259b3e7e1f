// Package core provides amount parsing for expense input.
//
// Amounts are kept as decimals so that sums of many small values do not
// drift the way binary floats do.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts user input to a decimal amount.
//
// Surrounding whitespace is ignored and a decimal comma is accepted when
// the value has no dot. A comma followed by exactly three digits could be
// a thousands separator and is rejected. The sign is preserved; callers
// that need a non-negative amount take Abs. Empty input, NaN, infinities
// and any non-numeric text are rejected with ErrInvalidAmount.
//
// Examples:
//
//	ParseAmount("12.34") -> 12.34, nil
//	ParseAmount("12,34") -> 12.34, nil
//	ParseAmount("1,234") -> 0, ErrInvalidAmount
//	ParseAmount("-50")   -> -50, nil
//	ParseAmount("abc")   -> 0, ErrInvalidAmount
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	if !strings.Contains(s, ".") && strings.Count(s, ",") == 1 {
		// "1,234" reads as a thousands separator just as well.
		if i := strings.Index(s, ","); len(s)-i-1 == 3 {
			return decimal.Zero, ErrInvalidAmount
		}
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}
