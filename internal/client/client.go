// Package client provides a transport-agnostic interface for the hallbook
// service and an HTTP/JSON implementation that talks to the hallbook REST API.
package client

import (
	"context"
)

// HallbookClient is the interface that all hallbook CLI commands use to
// communicate with the reservation server. It is implemented by HTTPClient.
type HallbookClient interface {
	// Reservations
	CreateReservation(ctx context.Context, req *CreateReservationRequest) (*Reservation, error)
	GetReservation(ctx context.Context, token string) (*Reservation, error)
	Decide(ctx context.Context, token string, req *DecideRequest) (*Reservation, error)
	ListReservations(ctx context.Context, requesterEmail string) ([]*Reservation, error)

	// Availability
	CheckAvailability(ctx context.Context, req *AvailabilityRequest) (*AvailabilityResponse, error)
	Calendar(ctx context.Context, req *CalendarRequest) (*CalendarResponse, error)
	ListHalls(ctx context.Context) (*HallsResponse, error)

	// Health
	Health(ctx context.Context) (string, error)

	// Lifecycle
	Close() error
}

// Requester identifies who a reservation is for.
type Requester struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Reservation is the wire representation returned by the server.
type Reservation struct {
	ID               string    `json:"id"`
	Hall             string    `json:"hall"`
	Day              string    `json:"day"`   // YYYY-MM-DD
	Start            string    `json:"start"` // HH:MM
	End              string    `json:"end"`   // HH:MM
	Requester        Requester `json:"requester"`
	Status           string    `json:"status"`
	DisplayState     string    `json:"display_state"`
	Token            string    `json:"token,omitempty"`
	ApprovalRequired bool      `json:"approval_required"`
	ClassifierReason string    `json:"classifier_reason,omitempty"`
	DecisionReason   string    `json:"decision_reason,omitempty"`
	CreatedAt        string    `json:"created_at"`
	DecidedAt        string    `json:"decided_at,omitempty"`
}

// CreateReservationRequest holds parameters for creating a reservation.
type CreateReservationRequest struct {
	Hall      string    `json:"hall"`
	Day       string    `json:"day"`   // YYYY-MM-DD
	Start     string    `json:"start"` // HH:MM
	End       string    `json:"end"`   // HH:MM
	Requester Requester `json:"requester"`
}

// DecideRequest holds the decision for a pending reservation.
type DecideRequest struct {
	Outcome string `json:"outcome"` // approved | rejected
	Reason  string `json:"reason,omitempty"`
}

// AvailabilityRequest holds parameters for an availability check.
type AvailabilityRequest struct {
	Hall  string
	Day   string // YYYY-MM-DD
	Start string // HH:MM
	End   string // HH:MM
}

// AvailabilityResponse is the response from CheckAvailability.
type AvailabilityResponse struct {
	Hall      string `json:"hall"`
	Day       string `json:"day"`
	Start     string `json:"start"`
	End       string `json:"end"`
	Available bool   `json:"available"`
}

// CalendarRequest holds parameters for a monthly calendar query.
type CalendarRequest struct {
	Year  int
	Month int
	Halls []string
}

// CalendarResponse maps day-of-month to availability status.
type CalendarResponse struct {
	Year  int            `json:"year"`
	Month int            `json:"month"`
	Days  map[int]string `json:"days"`
}

// HallsResponse lists the configured halls and operational hours.
type HallsResponse struct {
	Halls []string          `json:"halls"`
	Hours map[string]string `json:"hours"`
}
