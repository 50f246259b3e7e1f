package sheets

import (
	"context"

	"ledger/internal/core"
)

// Ports for the spreadsheet mirror.
type (
	// LedgerWriter overwrites the mirrored ledger.
	LedgerWriter interface {
		ReplaceLedger(ctx context.Context, ledger []core.Expense) error
	}

	// LedgerReader reads back what is currently mirrored.
	LedgerReader interface {
		ReadLedger(ctx context.Context) ([]core.Expense, error)
	}

	Mirror interface {
		LedgerWriter
		LedgerReader
	}
)
