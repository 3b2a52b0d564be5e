package gate

import "context"

// Static is a deterministic gate used when no classifier service is
// configured. Reservations at or under MaxAutoMinutes are auto-approved;
// longer ones are flagged for manual approval.
type Static struct {
	MaxAutoMinutes int
}

// DefaultMaxAutoMinutes is the duration threshold for the static gate.
const DefaultMaxAutoMinutes = 120

// NewStatic creates a static gate with the default threshold.
func NewStatic() *Static {
	return &Static{MaxAutoMinutes: DefaultMaxAutoMinutes}
}

func (g *Static) Evaluate(_ context.Context, req Request) (Decision, error) {
	if req.EndMinute-req.StartMinute > g.MaxAutoMinutes {
		return Decision{
			RequiresApproval: true,
			Reason:           "duration exceeds auto-approval threshold",
		}, nil
	}
	return Decision{}, nil
}
