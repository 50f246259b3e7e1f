// Package memory is an in-process stand-in for the spreadsheet mirror.
package memory

import (
	"context"
	"sync"

	"ledger/internal/core"
	"ledger/internal/sheets"
)

type Store struct {
	mu     sync.Mutex
	items  []core.Expense
	writes int

	// FailWrites makes ReplaceLedger fail.
	FailWrites error
}

var _ sheets.Mirror = (*Store)(nil)

func New() *Store {
	return &Store{}
}

// ReplaceLedger stores a copy of ledger.
func (s *Store) ReplaceLedger(_ context.Context, ledger []core.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites != nil {
		return s.FailWrites
	}
	s.items = append([]core.Expense(nil), ledger...)
	s.writes++
	return nil
}

// ReadLedger returns a copy of the last written ledger.
func (s *Store) ReadLedger(_ context.Context) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Expense(nil), s.items...), nil
}

// Writes reports how many successful ReplaceLedger calls were made.
func (s *Store) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}
