package core

import "strings"

// Category is the spending category of an expense. Values outside the
// recognised set are kept as entered.
type Category string

const (
	Food      Category = "Food"
	Transport Category = "Transport"
	Shopping  Category = "Shopping"
	Bills     Category = "Bills"
	Other     Category = "Other"
)

var categories = []Category{Food, Transport, Shopping, Bills, Other}

var palette = []string{"#06b6d4", "#7c3aed", "#ef4444", "#f59e0b", "#10b981", "#3b82f6", "#8b5cf6", "#ef7ac7"}

// Categories returns the recognised categories in display order.
func Categories() []Category {
	return append([]Category(nil), categories...)
}

// NormalizeCategory trims s and defaults an empty value to Other.
func NormalizeCategory(s string) Category {
	s = strings.TrimSpace(s)
	if s == "" {
		return Other
	}
	return Category(s)
}

// Index returns the position of c in the recognised list, or -1.
func (c Category) Index() int {
	for i, known := range categories {
		if c == known {
			return i
		}
	}
	return -1
}

func (c Category) IsKnown() bool {
	return c.Index() >= 0
}

// Color returns the presentation colour of c. Unknown categories share
// the first colour.
func (c Category) Color() string {
	idx := c.Index()
	if idx < 0 {
		idx = 0
	}
	return palette[idx%len(palette)]
}

// OrDefault maps the empty category to Other.
func (c Category) OrDefault() Category {
	if strings.TrimSpace(string(c)) == "" {
		return Other
	}
	return c
}
