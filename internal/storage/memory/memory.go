package memory

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"ledger/internal/storage"
)

// Store keeps blobs in process memory. Nothing survives a restart.
type Store struct {
	mu    sync.Mutex
	blobs map[string][]byte

	// FailWrites makes Set fail, for exercising degraded persistence.
	FailWrites error
}

var _ storage.BlobStore = (*Store)(nil)

func New() *Store {
	return &Store{blobs: map[string][]byte{}}
}

// NewFromFile seeds key with the contents of path when the file exists.
// A missing or unreadable seed leaves the store empty.
func NewFromFile(path, key string) *Store {
	s := New()
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil || len(data) == 0 {
		return s
	}
	s.blobs[key] = data
	return s
}

// Get returns a copy of the stored blob.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.blobs[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// Set stores a copy of value under key.
func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites != nil {
		return s.FailWrites
	}
	s.blobs[key] = append([]byte(nil), value...)
	return nil
}

// SetFailWrites toggles write failures at runtime.
func (s *Store) SetFailWrites(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.FailWrites = err
}
