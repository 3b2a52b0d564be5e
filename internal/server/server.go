// Package server exposes the booking service over an HTTP/JSON API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/alfredjeanlab/hallbook/internal/booking"
	"github.com/alfredjeanlab/hallbook/internal/model"
	"github.com/alfredjeanlab/hallbook/internal/schedule"
)

// Booking is the service surface the HTTP layer depends on.
type Booking interface {
	CreateReservation(ctx context.Context, req booking.CreateRequest) (*model.Reservation, error)
	CheckAvailability(ctx context.Context, hall string, day time.Time, startMinute, endMinute int) (bool, error)
	MonthlyCalendar(ctx context.Context, halls []string, year int, month time.Month) map[int]schedule.DayStatus
	Decide(ctx context.Context, token string, outcome model.Status, reason string) (*model.Reservation, error)
	GetByToken(ctx context.Context, token string) (*model.Reservation, error)
	ListForRequester(ctx context.Context, email string) ([]*model.Reservation, error)
	Halls() []string
	Hours() schedule.Hours
}

// ReservationServer serves the reservation HTTP API.
type ReservationServer struct {
	booking Booking
}

// NewReservationServer returns a server backed by the given booking service.
func NewReservationServer(b Booking) *ReservationServer {
	return &ReservationServer{booking: b}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeBookingError maps service errors onto HTTP status codes. An
// AlreadyDecided response carries the stored record so the caller can
// show the winning outcome.
func writeBookingError(w http.ResponseWriter, err error) {
	var ve *model.ValidationError
	if errors.As(err, &ve) {
		writeError(w, http.StatusBadRequest, ve.Error())
		return
	}
	var ad *booking.AlreadyDecidedError
	if errors.As(err, &ad) {
		writeJSON(w, http.StatusConflict, map[string]any{
			"error":       ad.Error(),
			"reservation": reservationView(ad.Reservation, false),
		})
		return
	}

	switch {
	case errors.Is(err, booking.ErrMissingReason), errors.Is(err, booking.ErrInvalidOutcome):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, booking.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, booking.ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, booking.ErrClassifierUnavailable):
		writeError(w, http.StatusBadGateway, err.Error())
	case errors.Is(err, booking.ErrStorageUnavailable):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// reservationView renders a reservation for API responses. The token is
// a decision capability, so it is included only where the caller already
// proved possession (create response, token-addressed fetch).
func reservationView(r *model.Reservation, includeToken bool) map[string]any {
	v := map[string]any{
		"id":                r.ID,
		"hall":              r.Hall,
		"day":               r.Day.Format("2006-01-02"),
		"start":             model.FormatMinute(r.StartMinute),
		"end":               model.FormatMinute(r.EndMinute),
		"requester":         r.Requester,
		"status":            r.Status,
		"display_state":     r.DisplayState(),
		"approval_required": r.ApprovalRequired,
		"created_at":        r.CreatedAt,
	}
	if includeToken {
		v["token"] = r.Token
	}
	if r.ClassifierReason != "" {
		v["classifier_reason"] = r.ClassifierReason
	}
	if r.DecisionReason != "" {
		v["decision_reason"] = r.DecisionReason
	}
	if r.DecidedAt != nil {
		v["decided_at"] = r.DecidedAt
	}
	return v
}
