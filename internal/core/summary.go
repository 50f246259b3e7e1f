package core

import "github.com/shopspring/decimal"

// CategoryAmount represents an amount aggregated by category.
type CategoryAmount struct {
	Category Category        `json:"category"`
	Color    string          `json:"color"`
	Amount   decimal.Decimal `json:"amount"`
}

// MonthAmount is the spend of one calendar month.
type MonthAmount struct {
	Year   int             `json:"year"`
	Month  int             `json:"month"` // 1-12
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// Overview bundles every derived view the dashboard shows.
type Overview struct {
	Reference         Date             `json:"reference"`
	TotalSpent        decimal.Decimal  `json:"total_spent"`
	Balance           decimal.Decimal  `json:"balance"`
	CurrentMonthSpent decimal.Decimal  `json:"current_month_spent"`
	ByCategory        []CategoryAmount `json:"by_category"`
	Monthly           []MonthAmount    `json:"monthly"`
}
