package core

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateLayout is the ISO calendar date format used everywhere a date is
// written as text.
const DateLayout = "2006-01-02"

type (
	Date struct {
		time.Time
	}

	// Expense is a single spending event in the ledger.
	Expense struct {
		ID       string          `json:"id"`
		Title    string          `json:"title"`
		Amount   decimal.Decimal `json:"amount"`
		Category Category        `json:"category"`
		Date     Date            `json:"date"`
	}

	// Candidate is unvalidated expense input as it arrives from a form or
	// an API body.
	Candidate struct {
		Title    string `json:"title"`
		Amount   string `json:"amount"`
		Category string `json:"category"`
		Date     string `json:"date"`
	}
)

var (
	ErrEmptyTitle    = errors.New("empty title")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidDate   = errors.New("invalid date")
	ErrEmptyID       = errors.New("empty id")
)

// ValidationError reports which candidate field was rejected.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(field string, err error) error {
	return &ValidationError{Field: field, Err: err}
}

// IsValidationError reports whether err (or anything it wraps) is a
// ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// NewID returns a fresh opaque expense id. Tests may replace it.
var NewID = uuid.NewString

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// ParseDate parses an ISO YYYY-MM-DD string. Out-of-range days such as
// 2024-02-30 are rejected.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, ErrInvalidDate
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{Time: t}, nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return errors.New("date cannot be zero")
	}
	return nil
}

// Day returns the day of the month
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year
func (d Date) Year() int {
	return d.Time.Year()
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// MonthStart returns the first day of d's month.
func (d Date) MonthStart() Date {
	return NewDate(d.Year(), d.Month(), 1)
}

// SameMonth reports whether d and other fall in the same calendar year and month.
func (d Date) SameMonth(other Date) bool {
	return d.Year() == other.Year() && d.Month() == other.Month()
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Validate checks an already-built expense, e.g. one read back from storage.
func (e Expense) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return invalid("id", ErrEmptyID)
	}
	if strings.TrimSpace(e.Title) == "" {
		return invalid("title", ErrEmptyTitle)
	}
	if e.Amount.IsNegative() {
		return invalid("amount", ErrInvalidAmount)
	}
	if err := e.Date.Validate(); err != nil {
		return invalid("date", ErrInvalidDate)
	}
	return nil
}

// Validate turns a candidate into a normalised Expense with a fresh id.
// The amount is stored as its absolute value and an empty category
// becomes Other; nothing else is corrected.
func Validate(c Candidate) (Expense, error) {
	title := strings.TrimSpace(c.Title)
	if title == "" {
		return Expense{}, invalid("title", ErrEmptyTitle)
	}

	amount, err := ParseAmount(c.Amount)
	if err != nil {
		return Expense{}, invalid("amount", err)
	}

	date, err := ParseDate(c.Date)
	if err != nil {
		return Expense{}, invalid("date", err)
	}

	return Expense{
		ID:       NewID(),
		Title:    title,
		Amount:   amount.Abs(),
		Category: NormalizeCategory(c.Category),
		Date:     date,
	}, nil
}
