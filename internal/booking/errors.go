package booking

import (
	"errors"
	"fmt"

	"github.com/alfredjeanlab/hallbook/internal/model"
)

// Sentinel errors returned by the booking service. Handlers map these to
// HTTP status codes; callers test with errors.Is.
var (
	// ErrNotFound means no reservation matches the given token or id.
	ErrNotFound = errors.New("reservation not found")

	// ErrConflict means the requested interval, widened by the buffer,
	// overlaps an active reservation on the same hall and day.
	ErrConflict = errors.New("reservation conflicts with an existing booking")

	// ErrMissingReason means a rejection was submitted without a reason.
	ErrMissingReason = errors.New("a reason is required when rejecting")

	// ErrInvalidOutcome means a decision outcome other than approved or
	// rejected was submitted.
	ErrInvalidOutcome = errors.New("decision outcome must be approved or rejected")

	// ErrClassifierUnavailable means the approval classifier could not be
	// reached; the reservation was not created.
	ErrClassifierUnavailable = errors.New("approval classifier unavailable")

	// ErrStorageUnavailable means the authoritative store failed during a
	// state-mutating operation. Unlike advisory reads, these failures are
	// never degraded.
	ErrStorageUnavailable = errors.New("reservation store unavailable")
)

// AlreadyDecidedError is returned when a decision targets a reservation
// that already reached a different terminal status. It carries the stored
// record so callers can show the winning outcome.
type AlreadyDecidedError struct {
	Reservation *model.Reservation
}

func (e *AlreadyDecidedError) Error() string {
	return fmt.Sprintf("reservation already %s", e.Reservation.Status)
}
