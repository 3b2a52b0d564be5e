package events

import (
	"context"

	"github.com/alfredjeanlab/hallbook/internal/model"
)

// Event topic constants
const (
	TopicReservationRequested = "hallbook.reservation.requested"
	TopicReservationDecided   = "hallbook.reservation.decided"
)

// Event types

// ReservationRequested is emitted after a reservation is durably created
// in pending status. The token is deliberately omitted; it travels only
// through the create response.
type ReservationRequested struct {
	Reservation      *model.Reservation `json:"reservation"`
	ApprovalRequired bool               `json:"approval_required"`
}

// ReservationDecided is emitted after a pending reservation reaches a
// terminal status. Emission is fire-and-forget; a lost event never
// reverts the already-durable decision.
type ReservationDecided struct {
	Reservation *model.Reservation `json:"reservation"`
	Outcome     string             `json:"outcome"`
}

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}
