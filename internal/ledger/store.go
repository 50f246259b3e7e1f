// Package ledger owns the in-memory list of expenses and keeps it in sync
// with the blob store.
//
// Every mutation is written through synchronously. A failed write is
// logged and leaves the in-memory ledger ahead of storage until the next
// successful write; it is never rolled back and never returned to the
// caller.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"ledger/internal/core"
	applog "ledger/internal/log"
	"ledger/internal/storage"
)

// ErrNotFound is returned by Update and Delete for an unknown id.
var ErrNotFound = errors.New("expense not found")

// Change describes a completed mutation for notifiers.
type Change struct {
	Op      string
	ID      string
	Count   int
	Version uint64
}

// Notifier is told about every mutation after it has been persisted.
type Notifier interface {
	LedgerChanged(ctx context.Context, change Change) error
}

type Store struct {
	mu       sync.RWMutex
	blobs    storage.BlobStore
	key      string
	logger   *applog.Logger
	notifier Notifier

	items   []core.Expense
	version uint64
	synced  bool
}

type Option func(*Store)

// WithKey overrides the namespace key the ledger is stored under.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

func WithLogger(logger *applog.Logger) Option {
	return func(s *Store) { s.logger = logger.WithComponent(applog.ComponentLedger) }
}

func WithNotifier(n Notifier) Option {
	return func(s *Store) { s.notifier = n }
}

func New(blobs storage.BlobStore, opts ...Option) *Store {
	s := &Store{
		blobs:  blobs,
		key:    storage.DefaultKey,
		logger: applog.Discard(),
		synced: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the in-memory ledger with the stored one. Missing or
// corrupt data yields an empty ledger; Load never fails.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.version++

	data, err := s.blobs.Get(ctx, s.key)
	if errors.Is(err, storage.ErrNotFound) {
		s.logger.InfoContext(ctx, "No stored ledger, starting empty", applog.FieldKey, s.key)
		return
	}
	if err != nil {
		s.synced = false
		s.logger.WarnContext(ctx, "Could not read stored ledger, starting empty",
			applog.FieldKey, s.key, applog.FieldError, err)
		return
	}

	items, skipped, err := Decode(data)
	if err != nil {
		s.logger.WarnContext(ctx, "Stored ledger is corrupt, starting empty",
			applog.FieldKey, s.key, applog.FieldError, err)
		return
	}

	seen := make(map[string]struct{}, len(items))
	for _, e := range items {
		if _, dup := seen[e.ID]; dup {
			skipped++
			continue
		}
		seen[e.ID] = struct{}{}
		s.items = append(s.items, e)
	}
	if skipped > 0 {
		s.logger.WarnContext(ctx, "Dropped unusable stored records",
			applog.FieldKey, s.key, "skipped", skipped)
	}

	s.logger.InfoContext(ctx, "Ledger loaded",
		applog.FieldKey, s.key, applog.FieldCount, len(s.items))
}

// All returns a snapshot of the ledger in insertion order.
func (s *Store) All() []core.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.Expense(nil), s.items...)
}

// Snapshot returns the ledger together with the version it belongs to.
func (s *Store) Snapshot() ([]core.Expense, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.Expense(nil), s.items...), s.version
}

// Get returns the expense with the given id.
func (s *Store) Get(id string) (core.Expense, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.items[i], true
	}
	return core.Expense{}, false
}

// Len returns the number of records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Version increases on every mutation and reload.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Synced reports whether the last persistence attempt succeeded.
func (s *Store) Synced() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.synced
}

// Add validates c and appends the resulting expense.
func (s *Store) Add(ctx context.Context, c core.Candidate) (core.Expense, error) {
	e, err := core.Validate(c)
	if err != nil {
		return core.Expense{}, err
	}

	s.mu.Lock()
	for s.indexOf(e.ID) >= 0 {
		e.ID = core.NewID()
	}
	s.items = append(s.items, e)
	change := s.commit(ctx, applog.OpAdd, e.ID)
	s.mu.Unlock()

	s.notify(ctx, change)
	return e, nil
}

// Update replaces the expense with the given id, keeping the id.
func (s *Store) Update(ctx context.Context, id string, c core.Candidate) (core.Expense, error) {
	e, err := core.Validate(c)
	if err != nil {
		return core.Expense{}, err
	}
	e.ID = id

	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return core.Expense{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.items[i] = e
	change := s.commit(ctx, applog.OpUpdate, id)
	s.mu.Unlock()

	s.notify(ctx, change)
	return e, nil
}

// Delete removes the expense with the given id. The remaining records
// keep their relative order.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.items = append(s.items[:i:i], s.items[i+1:]...)
	change := s.commit(ctx, applog.OpDelete, id)
	s.mu.Unlock()

	s.notify(ctx, change)
	return nil
}

// Clear empties the ledger.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.items = nil
	change := s.commit(ctx, applog.OpClear, "")
	s.mu.Unlock()

	s.notify(ctx, change)
}

// AddSample appends a handful of demo expenses dated relative to now.
func (s *Store) AddSample(ctx context.Context, now time.Time) []core.Expense {
	samples := []struct {
		title    string
		amount   int64
		category core.Category
		daysAgo  int
	}{
		{"Grocery", 520, core.Food, 2},
		{"Bus pass", 120, core.Transport, 10},
		{"Electricity bill", 980, core.Bills, 25},
		{"Shoes", 2400, core.Shopping, 40},
		{"Coffee", 80, core.Food, 5},
	}

	added := make([]core.Expense, 0, len(samples))
	s.mu.Lock()
	for _, sm := range samples {
		e := core.Expense{
			ID:       core.NewID(),
			Title:    sm.title,
			Amount:   decimal.NewFromInt(sm.amount),
			Category: sm.category,
			Date:     core.DateOf(now.AddDate(0, 0, -sm.daysAgo)),
		}
		for s.indexOf(e.ID) >= 0 {
			e.ID = core.NewID()
		}
		s.items = append(s.items, e)
		added = append(added, e)
	}
	change := s.commit(ctx, applog.OpSample, "")
	s.mu.Unlock()

	s.notify(ctx, change)
	return added
}

func (s *Store) indexOf(id string) int {
	for i, e := range s.items {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// commit bumps the version and writes the ledger. Caller holds s.mu.
func (s *Store) commit(ctx context.Context, op, id string) Change {
	s.version++
	s.save(ctx, op)
	return Change{Op: op, ID: id, Count: len(s.items), Version: s.version}
}

// save writes the full ledger. Failures are logged, not returned.
func (s *Store) save(ctx context.Context, op string) {
	data, err := Encode(s.items)
	if err == nil {
		err = s.blobs.Set(ctx, s.key, data)
	}
	if err != nil {
		s.synced = false
		s.logger.WarnContext(ctx, "Could not persist ledger, keeping in-memory state",
			applog.FieldOperation, op,
			applog.FieldKey, s.key,
			applog.FieldCount, len(s.items),
			applog.FieldError, err)
		return
	}
	s.synced = true
	s.logger.DebugContext(ctx, "Ledger persisted",
		applog.FieldOperation, op, applog.FieldCount, len(s.items))
}

func (s *Store) notify(ctx context.Context, change Change) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.LedgerChanged(ctx, change); err != nil {
		s.logger.WarnContext(ctx, "Could not publish ledger change",
			applog.FieldOperation, change.Op,
			applog.FieldVersion, change.Version,
			applog.FieldError, err)
	}
}
