package core

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"2024-01-05", true},
		{" 2024-12-31 ", true},
		{"2024-02-29", true},
		{"2023-02-29", false},
		{"2024-13-01", false},
		{"05/01/2024", false},
		{"", false},
	}
	for _, tc := range cases {
		_, err := ParseDate(tc.in)
		if tc.ok && err != nil {
			t.Fatalf("%q expected ok, got %v", tc.in, err)
		}
		if !tc.ok {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
			if !errors.Is(err, ErrInvalidDate) {
				t.Fatalf("%q expected ErrInvalidDate, got %v", tc.in, err)
			}
		}
	}
}

func TestDateValidate(t *testing.T) {
	if err := NewDate(2025, 1, 1).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Date{Time: time.Time{}}).Validate(); err == nil {
		t.Fatalf("expected error for zero date")
	}
}

func TestDateHelpers(t *testing.T) {
	d := NewDate(2024, 3, 17)
	if d.String() != "2024-03-17" {
		t.Fatalf("unexpected string %q", d.String())
	}
	if got := d.MonthStart(); got.String() != "2024-03-01" {
		t.Fatalf("unexpected month start %q", got.String())
	}
	if !d.SameMonth(NewDate(2024, 3, 1)) || d.SameMonth(NewDate(2023, 3, 17)) {
		t.Fatalf("SameMonth mismatch")
	}
	if got := DateOf(time.Date(2024, 3, 17, 23, 59, 0, 0, time.UTC)); !got.Equal(d.Time) {
		t.Fatalf("DateOf truncation failed: %v", got)
	}
}

func TestDateJSON(t *testing.T) {
	b, err := json.Marshal(NewDate(2024, 1, 5))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"2024-01-05"` {
		t.Fatalf("unexpected json %s", b)
	}
	var d Date
	if err := json.Unmarshal([]byte(`"2024-02-30"`), &d); err == nil {
		t.Fatalf("expected error for impossible date")
	}
}

func TestValidate(t *testing.T) {
	orig := NewID
	NewID = func() string { return "fixed" }
	defer func() { NewID = orig }()

	e, err := Validate(Candidate{Title: "  Coffee ", Amount: "-80.50", Category: "", Date: "2024-03-02"})
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if e.ID != "fixed" {
		t.Fatalf("expected generated id, got %q", e.ID)
	}
	if e.Title != "Coffee" {
		t.Fatalf("title not trimmed: %q", e.Title)
	}
	if !e.Amount.Equal(decimal.RequireFromString("80.5")) {
		t.Fatalf("amount not absolute: %s", e.Amount)
	}
	if e.Category != Other {
		t.Fatalf("expected default category, got %q", e.Category)
	}
	if e.Date.String() != "2024-03-02" {
		t.Fatalf("unexpected date %s", e.Date)
	}

	unknown, err := Validate(Candidate{Title: "Gift", Amount: "10", Category: "Presents", Date: "2024-03-02"})
	if err != nil {
		t.Fatalf("unknown category should be tolerated: %v", err)
	}
	if unknown.Category != "Presents" {
		t.Fatalf("unknown category not kept: %q", unknown.Category)
	}
}

func TestValidateRejects(t *testing.T) {
	bads := []struct {
		c     Candidate
		field string
		want  error
	}{
		{Candidate{Title: "   ", Amount: "1", Date: "2024-01-01"}, "title", ErrEmptyTitle},
		{Candidate{Title: "a", Amount: "abc", Date: "2024-01-01"}, "amount", ErrInvalidAmount},
		{Candidate{Title: "a", Amount: "NaN", Date: "2024-01-01"}, "amount", ErrInvalidAmount},
		{Candidate{Title: "a", Amount: "", Date: "2024-01-01"}, "amount", ErrInvalidAmount},
		{Candidate{Title: "a", Amount: "1", Date: ""}, "date", ErrInvalidDate},
		{Candidate{Title: "a", Amount: "1", Date: "yesterday"}, "date", ErrInvalidDate},
	}
	for i, tc := range bads {
		_, err := Validate(tc.c)
		if err == nil {
			t.Fatalf("case %d expected error", i)
		}
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("case %d expected ValidationError, got %T", i, err)
		}
		if ve.Field != tc.field {
			t.Fatalf("case %d expected field %q, got %q", i, tc.field, ve.Field)
		}
		if !errors.Is(err, tc.want) {
			t.Fatalf("case %d expected %v, got %v", i, tc.want, err)
		}
		if !IsValidationError(err) {
			t.Fatalf("case %d IsValidationError false", i)
		}
	}
}

func TestExpenseValidate(t *testing.T) {
	good := Expense{ID: "a1", Title: "Tea", Amount: decimal.NewFromInt(5), Category: Food, Date: NewDate(2024, 1, 5)}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Expense{
		{ID: "", Title: "Tea", Amount: decimal.NewFromInt(5), Date: NewDate(2024, 1, 5)},
		{ID: "a1", Title: " ", Amount: decimal.NewFromInt(5), Date: NewDate(2024, 1, 5)},
		{ID: "a1", Title: "Tea", Amount: decimal.NewFromInt(-5), Date: NewDate(2024, 1, 5)},
		{ID: "a1", Title: "Tea", Amount: decimal.NewFromInt(5)},
	}
	for i, e := range bads {
		if err := e.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestCategories(t *testing.T) {
	cats := Categories()
	if len(cats) != 5 || cats[0] != Food || cats[4] != Other {
		t.Fatalf("unexpected categories %v", cats)
	}
	cats[0] = "mutated"
	if Categories()[0] != Food {
		t.Fatalf("Categories must return a copy")
	}
	if Transport.Color() != "#7c3aed" {
		t.Fatalf("unexpected colour %s", Transport.Color())
	}
	if Category("Pets").Color() != Food.Color() {
		t.Fatalf("unknown categories should use the first colour")
	}
	if Category("Pets").IsKnown() || !Bills.IsKnown() {
		t.Fatalf("IsKnown mismatch")
	}
	if NormalizeCategory("  ") != Other || Category("").OrDefault() != Other {
		t.Fatalf("empty category should default to Other")
	}
}
