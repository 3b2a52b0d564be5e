package model

import "time"

// Status represents the approval state of a reservation.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsValid checks whether the status is a known value.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether the status permits no further transitions.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Active reports whether a reservation in this status still occupies its
// time slot for conflict purposes. Rejected reservations vacate their slot
// immediately.
func (s Status) Active() bool {
	return s == StatusPending || s == StatusApproved
}

// Requester identifies the person a reservation was made for.
type Requester struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Reservation is the core booking record. It is created once in pending
// status, decided at most once, and never deleted.
type Reservation struct {
	ID          string    `json:"id"`
	Hall        string    `json:"hall"`
	Day         time.Time `json:"day"` // calendar day, midnight UTC
	StartMinute int       `json:"start_minute"`
	EndMinute   int       `json:"end_minute"`
	Requester   Requester `json:"requester"`
	Status      Status    `json:"status"`

	// Token grants decision authority over this reservation. It is globally
	// unique and single-use: the first pending -> terminal transition consumes it.
	Token string `json:"token,omitempty"`

	ApprovalRequired bool   `json:"approval_required"`
	ClassifierReason string `json:"classifier_reason,omitempty"`

	DecisionReason string     `json:"decision_reason,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	DecidedAt      *time.Time `json:"decided_at,omitempty"`
}

// Interval returns the reservation's time-of-day interval.
func (r *Reservation) Interval() Interval {
	return Interval{Start: r.StartMinute, End: r.EndMinute}
}

// Redacted returns a copy with the decision token cleared. Every channel
// other than the create response and the token-addressed lookup carries
// the redacted form: whoever holds the token holds decision authority.
func (r *Reservation) Redacted() *Reservation {
	c := *r
	c.Token = ""
	return &c
}

// DisplayState maps the persisted status to a user-facing label. It is a
// pure function of the record; no rendering state is stored alongside it.
func (r *Reservation) DisplayState() string {
	switch r.Status {
	case StatusPending:
		if r.ApprovalRequired {
			return "awaiting approval"
		}
		return "pending"
	case StatusApproved:
		return "confirmed"
	case StatusRejected:
		return "declined"
	}
	return string(r.Status)
}

// Day normalizes t to its calendar day at midnight UTC.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
