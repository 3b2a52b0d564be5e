package schedule

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/alfredjeanlab/hallbook/internal/model"
)

// ActiveLister reads active (pending or approved) reservations from the
// authoritative store.
type ActiveLister interface {
	ListActiveByHallDay(ctx context.Context, hall string, day time.Time) ([]*model.Reservation, error)
}

// Index answers per-hall/per-day availability queries against the
// authoritative store. It is an advisory read path: a store failure degrades
// to an empty result so that bookings are never blocked by a read outage,
// and the failure is logged for alerting.
type Index struct {
	store  ActiveLister
	logger *slog.Logger
}

// NewIndex returns an Index backed by the given store.
func NewIndex(store ActiveLister, logger *slog.Logger) *Index {
	if logger == nil {
		logger = slog.Default()
	}
	return &Index{store: store, logger: logger}
}

// ListActive returns the hall's active reservations for the given day,
// ordered by start time. On read failure it returns an empty slice;
// under-reporting conflicts is safer for an availability hint than
// blocking all bookings.
func (i *Index) ListActive(ctx context.Context, hall string, day time.Time) []*model.Reservation {
	active, err := i.store.ListActiveByHallDay(ctx, hall, model.Day(day))
	if err != nil {
		i.logger.Error("availability read failed, degrading to empty",
			"hall", hall, "day", day.Format("2006-01-02"), "error", err)
		return nil
	}
	sort.Slice(active, func(a, b int) bool {
		return active[a].StartMinute < active[b].StartMinute
	})
	return active
}
