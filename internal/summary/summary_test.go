package summary

import (
	"testing"

	"github.com/shopspring/decimal"

	"ledger/internal/core"
)

func exp(amount string, category core.Category, y, m, d int) core.Expense {
	return core.Expense{
		ID:       core.NewID(),
		Title:    "x",
		Amount:   decimal.RequireFromString(amount),
		Category: category,
		Date:     core.NewDate(y, m, d),
	}
}

func TestTotalsOnEmptyLedger(t *testing.T) {
	if !TotalSpent(nil).IsZero() {
		t.Error("total of empty ledger should be zero")
	}
	if b := Balance(nil); !b.IsZero() || b.String() != "0" {
		t.Errorf("balance of empty ledger should be 0, got %s", b)
	}
	if got := CategoryTotals(nil, core.NewDate(2024, 3, 1), 6); len(got) != 0 {
		t.Errorf("expected no categories, got %v", got)
	}
}

func TestTotalSpentIsAdditive(t *testing.T) {
	ledger := []core.Expense{
		exp("10.10", core.Food, 2024, 1, 1),
		exp("0.20", core.Bills, 2024, 2, 1),
	}
	e := exp("5.70", core.Other, 2024, 3, 1)

	got := TotalSpent(append(ledger, e))
	want := TotalSpent(ledger).Add(e.Amount)
	if !got.Equal(want) {
		t.Fatalf("total not additive: %s != %s", got, want)
	}
	if !got.Equal(decimal.RequireFromString("16")) {
		t.Fatalf("expected exact decimal sum 16, got %s", got)
	}
	if !Balance(ledger).Equal(decimal.RequireFromString("-10.3")) {
		t.Fatalf("balance should be negated total, got %s", Balance(ledger))
	}
}

func TestCurrentMonthSpent(t *testing.T) {
	ledger := []core.Expense{
		exp("10", core.Food, 2024, 3, 1),
		exp("5", core.Food, 2024, 3, 31),
		exp("7", core.Food, 2023, 3, 15),
		exp("9", core.Food, 2024, 2, 29),
	}
	got := CurrentMonthSpent(ledger, core.NewDate(2024, 3, 10))
	if !got.Equal(decimal.NewFromInt(15)) {
		t.Fatalf("expected 15, got %s", got)
	}
}

func TestCategoryTotalsWindow(t *testing.T) {
	ref := core.NewDate(2024, 8, 15)
	ledger := []core.Expense{
		exp("100", core.Food, 2024, 1, 15), // 7 months before ref
		exp("20", core.Food, 2024, 3, 1),   // first day of window
		exp("5", "Pets", 2024, 5, 3),
		exp("3", core.Transport, 2024, 8, 14),
		exp("1", "", 2024, 6, 1),
		exp("2", "Gifts", 2024, 7, 1),
		exp("4", "Pets", 2024, 8, 1),
		exp("50", core.Food, 2024, 2, 29), // day before window
	}

	got := CategoryTotals(ledger, ref, 6)
	want := []struct {
		cat    core.Category
		amount string
	}{
		{core.Food, "20"},
		{core.Transport, "3"},
		{core.Other, "1"},
		{"Pets", "9"},
		{"Gifts", "2"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d categories (%v), want %d", len(got), got, len(want))
	}
	for i, w := range want {
		if got[i].Category != w.cat || !got[i].Amount.Equal(decimal.RequireFromString(w.amount)) {
			t.Errorf("entry %d = %s %s, want %s %s", i, got[i].Category, got[i].Amount, w.cat, w.amount)
		}
		if got[i].Color != w.cat.Color() {
			t.Errorf("entry %d colour = %s, want %s", i, got[i].Color, w.cat.Color())
		}
	}
}

func TestCategoryTotalsDefaultWindow(t *testing.T) {
	ref := core.NewDate(2024, 8, 15)
	ledger := []core.Expense{exp("1", core.Food, 2024, 2, 1)}
	if got := CategoryTotals(ledger, ref, 0); len(got) != 0 {
		t.Fatalf("non-positive window should fall back to 6 months, got %v", got)
	}
}

func TestMonthlySeries(t *testing.T) {
	ref := core.NewDate(2024, 2, 10)
	ledger := []core.Expense{
		exp("10", core.Food, 2024, 2, 1),
		exp("2.5", core.Food, 2024, 2, 28),
		exp("4", core.Food, 2023, 11, 30),
		exp("99", core.Food, 2023, 8, 31), // outside the 6-month series
		exp("99", core.Food, 2024, 3, 1),  // after ref month
	}

	got := MonthlySeries(ledger, ref, 6)
	want := []struct {
		label  string
		amount string
	}{
		{"Sep 2023", "0"},
		{"Oct 2023", "0"},
		{"Nov 2023", "4"},
		{"Dec 2023", "0"},
		{"Jan 2024", "0"},
		{"Feb 2024", "12.5"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d months, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].Label != w.label || !got[i].Amount.Equal(decimal.RequireFromString(w.amount)) {
			t.Errorf("month %d = %s %s, want %s %s", i, got[i].Label, got[i].Amount, w.label, w.amount)
		}
	}
	if got[0].Year != 2023 || got[0].Month != 9 {
		t.Errorf("unexpected first month %d-%d", got[0].Year, got[0].Month)
	}
}

func TestBuild(t *testing.T) {
	ref := core.NewDate(2024, 2, 10)
	ledger := []core.Expense{
		exp("10", core.Food, 2024, 2, 1),
		exp("5", core.Bills, 2024, 1, 1),
	}
	o := Build(ledger, ref)
	if !o.TotalSpent.Equal(decimal.NewFromInt(15)) || !o.Balance.Equal(decimal.NewFromInt(-15)) {
		t.Errorf("unexpected totals %s / %s", o.TotalSpent, o.Balance)
	}
	if !o.CurrentMonthSpent.Equal(decimal.NewFromInt(10)) {
		t.Errorf("unexpected month spend %s", o.CurrentMonthSpent)
	}
	if len(o.ByCategory) != 2 || len(o.Monthly) != DefaultWindow {
		t.Errorf("unexpected breakdown sizes %d / %d", len(o.ByCategory), len(o.Monthly))
	}
	if o.Reference.String() != "2024-02-10" {
		t.Errorf("unexpected reference %s", o.Reference)
	}
}
