// Package mirror provides best-effort secondary persistence for
// reservations. Mirror writes never gate or fail the primary booking
// path; callers log failures and move on.
package mirror

import (
	"context"

	"github.com/alfredjeanlab/hallbook/internal/model"
)

// Mirror is a best-effort secondary store for reservation records.
type Mirror interface {
	// PutReservation upserts the current state of one reservation,
	// including its per-requester index entry.
	PutReservation(ctx context.Context, r *model.Reservation) error

	// PutSnapshot replaces the full JSONL snapshot of the store. The
	// snapshot bounds how stale the mirror can be after missed
	// incremental writes.
	PutSnapshot(ctx context.Context, data []byte) error
}

// Noop discards all mirror writes. Used when no mirror is configured.
type Noop struct{}

func (Noop) PutReservation(context.Context, *model.Reservation) error { return nil }
func (Noop) PutSnapshot(context.Context, []byte) error                { return nil }
