// Package gate abstracts the external approval classifier. The core
// never interprets the classifier's internals; it records the verdict
// and moves on.
package gate

import "context"

// Request carries the reservation details the classifier sees.
type Request struct {
	Hall           string `json:"hall"`
	Day            string `json:"day"` // YYYY-MM-DD
	StartMinute    int    `json:"start_minute"`
	EndMinute      int    `json:"end_minute"`
	RequesterName  string `json:"requester_name"`
	RequesterEmail string `json:"requester_email"`
}

// Decision is the classifier's verdict. Reason is advisory only.
type Decision struct {
	RequiresApproval bool   `json:"requires_approval"`
	Reason           string `json:"reason"`
}

// Gate decides whether a reservation request needs manual approval.
// An error means the classifier could not be reached; callers must not
// create the reservation in that case.
type Gate interface {
	Evaluate(ctx context.Context, req Request) (Decision, error)
}
