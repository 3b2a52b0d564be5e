package model

import (
	"strings"
	"testing"
	"time"
)

const (
	testOpen  = 9 * 60
	testClose = 17 * 60
)

func validReservation() *Reservation {
	return &Reservation{
		Hall:        "Main Hall",
		Day:         time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		StartMinute: 10 * 60,
		EndMinute:   11 * 60,
		Requester:   Requester{Name: "Dana Mills", Email: "dana@example.com"},
		Status:      StatusPending,
	}
}

func TestValidateReservation_Valid(t *testing.T) {
	if err := ValidateReservation(validReservation(), testOpen, testClose); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateReservation(t *testing.T) {
	for _, tc := range []struct {
		name      string
		mutate    func(*Reservation)
		wantField string
	}{
		{
			name:      "MissingHall",
			mutate:    func(r *Reservation) { r.Hall = "  " },
			wantField: "hall",
		},
		{
			name:      "ZeroDay",
			mutate:    func(r *Reservation) { r.Day = time.Time{} },
			wantField: "day",
		},
		{
			name:      "EndEqualsStart",
			mutate:    func(r *Reservation) { r.EndMinute = r.StartMinute },
			wantField: "end",
		},
		{
			name:      "EndBeforeStart",
			mutate:    func(r *Reservation) { r.StartMinute, r.EndMinute = 11*60, 10*60 },
			wantField: "end",
		},
		{
			name:      "StartBeforeOpen",
			mutate:    func(r *Reservation) { r.StartMinute = 8 * 60 },
			wantField: "start",
		},
		{
			name:      "StartAtClose",
			mutate:    func(r *Reservation) { r.StartMinute, r.EndMinute = 17*60, 18*60 },
			wantField: "start",
		},
		{
			name:      "EndPastClose",
			mutate:    func(r *Reservation) { r.StartMinute, r.EndMinute = 16*60, 18*60 },
			wantField: "end",
		},
		{
			name:      "MissingRequesterName",
			mutate:    func(r *Reservation) { r.Requester.Name = "" },
			wantField: "requester.name",
		},
		{
			name:      "MissingRequesterEmail",
			mutate:    func(r *Reservation) { r.Requester.Email = "" },
			wantField: "requester.email",
		},
		{
			name:      "MalformedEmail",
			mutate:    func(r *Reservation) { r.Requester.Email = "not-an-address" },
			wantField: "requester.email",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			r := validReservation()
			tc.mutate(r)
			err := ValidateReservation(r, testOpen, testClose)
			if err == nil {
				t.Fatal("expected validation error")
			}
			ve, ok := err.(*ValidationError)
			if !ok {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			found := false
			for _, fe := range ve.Errors {
				if fe.Field == tc.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("expected error on field %q, got: %v", tc.wantField, err)
			}
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	ve := &ValidationError{Errors: []FieldError{
		{Field: "hall", Message: "is required"},
		{Field: "end", Message: "must be after start"},
	}}
	msg := ve.Error()
	if !strings.Contains(msg, "hall: is required") || !strings.Contains(msg, "end: must be after start") {
		t.Errorf("unexpected message: %q", msg)
	}
}
