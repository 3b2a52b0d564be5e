// Package store defines the persistence interface for the authoritative
// reservation store.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/alfredjeanlab/hallbook/internal/model"
)

// ErrTokenCollision is returned when an insert would violate the unique
// token index. Tokens are generated with enough entropy that this is an
// unexpected, fatal condition rather than something to retry silently.
var ErrTokenCollision = errors.New("reservation token already exists")

// Store is the authoritative persistence interface for reservations.
// Reads used by availability computations may be degraded by their callers;
// the store itself always reports failures.
type Store interface {
	// CreateReservation inserts a new pending reservation. A token
	// collision fails with ErrTokenCollision.
	CreateReservation(ctx context.Context, r *model.Reservation) error

	// GetReservationByToken looks a reservation up through the unique
	// token index. Returns sql.ErrNoRows when the token is unknown.
	GetReservationByToken(ctx context.Context, token string) (*model.Reservation, error)

	// GetReservationByID returns a reservation by primary key.
	GetReservationByID(ctx context.Context, id string) (*model.Reservation, error)

	// ListActiveByHallDay returns pending and approved reservations for
	// the hall on the given calendar day, ordered by start time.
	ListActiveByHallDay(ctx context.Context, hall string, day time.Time) ([]*model.Reservation, error)

	// ListByRequester returns all reservations for a requester email,
	// newest first.
	ListByRequester(ctx context.Context, email string) ([]*model.Reservation, error)

	// ListByMonth returns all reservations whose day falls in the month.
	ListByMonth(ctx context.Context, year int, month time.Month) ([]*model.Reservation, error)

	// ListAll returns every reservation, ordered by ID. Used by the
	// mirror reconciler's full snapshot.
	ListAll(ctx context.Context) ([]*model.Reservation, error)

	// DecideReservation performs the conditional pending -> terminal
	// transition for the reservation addressed by token. The update is
	// keyed on status = 'pending' so that exactly one concurrent caller
	// can succeed; when no pending row matches (unknown token or already
	// decided) it returns sql.ErrNoRows and the caller disambiguates.
	DecideReservation(ctx context.Context, token string, status model.Status, reason string, decidedAt time.Time) (*model.Reservation, error)

	// LockHallDay takes a transaction-scoped advisory lock serializing
	// writers on the same hall/day. Only meaningful inside RunInTransaction.
	LockHallDay(ctx context.Context, hall string, day time.Time) error

	// RunInTransaction runs fn against a transactional view of the store,
	// committing on success and rolling back on error.
	RunInTransaction(ctx context.Context, fn func(tx Store) error) error

	// Lifecycle
	Close() error
}
