package mirror

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/alfredjeanlab/hallbook/internal/store"
)

// Reconciler periodically re-exports the full store to the mirror's
// snapshot object. Incremental mirror writes are best-effort; the
// snapshot interval is the upper bound on how long a dropped write can
// stay missing from the mirror.
type Reconciler struct {
	store    store.Store
	mirror   Mirror
	interval time.Duration
	logger   *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewReconciler creates a reconciler that snapshots the store to the
// mirror at the given interval.
func NewReconciler(s store.Store, m Mirror, interval time.Duration, logger *slog.Logger) *Reconciler {
	return &Reconciler{
		store:    s,
		mirror:   m,
		interval: interval,
		logger:   logger,
	}
}

// Start begins periodic reconciliation. It runs an initial snapshot
// immediately, then on each tick.
func (r *Reconciler) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.run(ctx)
	}()
}

// Stop cancels the reconciler and waits for any in-flight snapshot to finish.
func (r *Reconciler) Stop() {
	if r.cancel != nil {
		r.cancel()
	}
	r.wg.Wait()
}

func (r *Reconciler) run(ctx context.Context) {
	r.snapshotOnce(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.snapshotOnce(ctx)
		}
	}
}

func (r *Reconciler) snapshotOnce(ctx context.Context) {
	var buf bytes.Buffer
	if err := ExportJSONL(ctx, r.store, &buf); err != nil {
		r.logger.Error("mirror snapshot export failed", "err", err)
		return
	}
	data := buf.Bytes()

	if err := r.mirror.PutSnapshot(ctx, data); err != nil {
		r.logger.Error("mirror snapshot write failed", "err", err)
		return
	}

	r.logger.Info("mirror snapshot completed", "bytes", len(data))
}
