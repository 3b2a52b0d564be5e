package model

import (
	"fmt"
	"strings"
)

// ValidationError holds a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation failure on a named field.
type FieldError struct {
	Field   string
	Message string
}

// Error formats the validation error as a semicolon-separated list of field messages.
func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// HasErrors reports whether the validation error contains any field errors.
func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}

// ValidateReservation checks a Reservation request against operational
// constraints. openMinute and closeMinute bound the hall's operational hours.
// It returns a *ValidationError if any rules fail, or nil if the record is valid.
func ValidateReservation(r *Reservation, openMinute, closeMinute int) error {
	var ve ValidationError

	if strings.TrimSpace(r.Hall) == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "hall", Message: "is required"})
	}

	if r.Day.IsZero() {
		ve.Errors = append(ve.Errors, FieldError{Field: "day", Message: "is required"})
	}

	// Interval: end strictly after start, both within operational hours.
	if r.EndMinute <= r.StartMinute {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "end",
			Message: fmt.Sprintf("must be after start (%s)", FormatMinute(r.StartMinute)),
		})
	}
	if r.StartMinute < openMinute || r.StartMinute >= closeMinute {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "start",
			Message: fmt.Sprintf("must be within operational hours %s-%s", FormatMinute(openMinute), FormatMinute(closeMinute)),
		})
	}
	if r.EndMinute > closeMinute {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "end",
			Message: fmt.Sprintf("must be within operational hours %s-%s", FormatMinute(openMinute), FormatMinute(closeMinute)),
		})
	}

	if strings.TrimSpace(r.Requester.Name) == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "requester.name", Message: "is required"})
	}
	email := strings.TrimSpace(r.Requester.Email)
	if email == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "requester.email", Message: "is required"})
	} else if !strings.Contains(email, "@") {
		ve.Errors = append(ve.Errors, FieldError{Field: "requester.email", Message: fmt.Sprintf("invalid address %q", email)})
	}

	if ve.HasErrors() {
		return &ve
	}
	return nil
}
