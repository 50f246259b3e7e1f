// Package worker keeps the spreadsheet mirror in step with the stored
// ledger.
package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"ledger/internal/amqp"
	"ledger/internal/core"
	"ledger/internal/ledger"
	applog "ledger/internal/log"
	"ledger/internal/sheets"
)

// DefaultInterval is the period of the safety-net full mirror.
const DefaultInterval = 5 * time.Minute

// MirrorWorker reloads the ledger from the shared blob store and writes it
// to the mirror. It reacts to change events and also runs periodically in
// case events are lost.
type MirrorWorker struct {
	store    *ledger.Store
	mirror   sheets.Mirror
	interval time.Duration
	logger   *applog.Logger

	syncMu   sync.Mutex
	mirrored uint64

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

func NewMirrorWorker(store *ledger.Store, mirror sheets.Mirror, interval time.Duration, logger *applog.Logger) *MirrorWorker {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = applog.Discard()
	}
	return &MirrorWorker{
		store:    store,
		mirror:   mirror,
		interval: interval,
		logger:   logger.WithComponent(applog.ComponentWorker),
	}
}

// HandleLedgerChanged is the AMQP handler. Returning an error requeues the
// message.
func (w *MirrorWorker) HandleLedgerChanged(ctx context.Context, msg *amqp.LedgerChangedMessage) error {
	w.logger.InfoContext(ctx, "Processing ledger change",
		applog.FieldOperation, msg.Op,
		applog.FieldVersion, msg.Version,
		applog.FieldCount, msg.Count)
	_, err := w.Sync(ctx)
	return err
}

// Sync reloads the ledger and rewrites the mirror unless it already holds
// the same records. It reports whether a write happened.
func (w *MirrorWorker) Sync(ctx context.Context) (bool, error) {
	w.syncMu.Lock()
	defer w.syncMu.Unlock()

	w.store.Load(ctx)
	items := w.store.All()

	current, err := w.mirror.ReadLedger(ctx)
	if err != nil {
		w.logger.WarnContext(ctx, "Could not read mirror, rewriting it", applog.FieldError, err)
	} else if sameLedger(current, items) {
		w.logger.DebugContext(ctx, "Mirror already up to date", applog.FieldCount, len(items))
		return false, nil
	}

	if err := w.mirror.ReplaceLedger(ctx, items); err != nil {
		w.logger.ErrorContext(ctx, "Failed to mirror ledger",
			applog.FieldOperation, applog.OpSync, applog.FieldError, err)
		return false, err
	}
	w.mirrored++
	w.logger.InfoContext(ctx, "Ledger mirrored",
		applog.FieldOperation, applog.OpSync, applog.FieldCount, len(items))
	return true, nil
}

// Mirrored reports how many times the mirror has been rewritten.
func (w *MirrorWorker) Mirrored() uint64 {
	w.syncMu.Lock()
	defer w.syncMu.Unlock()
	return w.mirrored
}

func sameLedger(a, b []core.Expense) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		x, y := a[i], b[i]
		if x.ID != y.ID || x.Title != y.Title || !x.Amount.Equal(y.Amount) ||
			x.Category != y.Category || x.Date.String() != y.Date.String() {
			return false
		}
	}
	return true
}

// Start runs an immediate sync and then one every interval until Stop or
// ctx cancellation.
func (w *MirrorWorker) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return errors.New("mirror worker is already running")
	}
	w.running = true
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	stopCh, doneCh := w.stopCh, w.doneCh
	w.mu.Unlock()

	go w.runLoop(ctx, stopCh, doneCh)

	w.logger.InfoContext(ctx, "Mirror worker started", "interval", w.interval)
	return nil
}

// Stop waits for the loop to finish or ctx to expire.
func (w *MirrorWorker) Stop(ctx context.Context) error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	stopCh, doneCh := w.stopCh, w.doneCh
	w.running = false
	w.mu.Unlock()

	close(stopCh)

	select {
	case <-doneCh:
		w.logger.InfoContext(ctx, "Mirror worker stopped")
		return nil
	case <-ctx.Done():
		w.logger.WarnContext(ctx, "Mirror worker stop timed out")
		return ctx.Err()
	}
}

func (w *MirrorWorker) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

func (w *MirrorWorker) runLoop(ctx context.Context, stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.Sync(ctx)

	for {
		select {
		case <-stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Sync(ctx)
		}
	}
}
