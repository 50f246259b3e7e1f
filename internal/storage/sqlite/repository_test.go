package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"ledger/internal/storage"
)

func newTestRepository(t *testing.T) (*Repository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "ledger.db")
	repo, err := NewRepository(path)
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo, path
}

func TestRepositoryGetMissing(t *testing.T) {
	repo, _ := newTestRepository(t)
	if _, err := repo.Get(context.Background(), storage.DefaultKey); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRepositorySetOverwrites(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	if err := repo.Set(ctx, storage.DefaultKey, []byte(`[{"id":"a"}]`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := repo.Set(ctx, storage.DefaultKey, []byte(`[]`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err := repo.Get(ctx, storage.DefaultKey)
	if err != nil || string(got) != `[]` {
		t.Fatalf("unexpected value %q err=%v", got, err)
	}
}

func TestRepositoryPersistsAcrossReopen(t *testing.T) {
	repo, path := newTestRepository(t)
	ctx := context.Background()
	if err := repo.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("set: %v", err)
	}
	repo.Close()

	// Migrations must be idempotent on reopen
	reopened, err := NewRepository(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Get(ctx, "k")
	if err != nil || string(got) != "v" {
		t.Fatalf("unexpected value after reopen %q err=%v", got, err)
	}
}
