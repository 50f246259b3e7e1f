// Package storage defines the persistence collaborator of the ledger: an
// opaque key-value blob store. The ledger reads and writes its whole state
// as one blob under a fixed namespace key.
package storage

import (
	"context"
	"errors"
)

// DefaultKey is the namespace key the ledger is stored under.
const DefaultKey = "et_expenses_v1"

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("blob not found")

// Ports for persistence adapters.
type (
	BlobReader interface {
		Get(ctx context.Context, key string) ([]byte, error)
	}

	BlobWriter interface {
		Set(ctx context.Context, key string, value []byte) error
	}

	BlobStore interface {
		BlobReader
		BlobWriter
	}
)
