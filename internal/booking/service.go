// Package booking implements the reservation core: request intake,
// buffered conflict enforcement, the approval state machine, and
// best-effort propagation to the mirror and event bus.
package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alfredjeanlab/hallbook/internal/events"
	"github.com/alfredjeanlab/hallbook/internal/gate"
	"github.com/alfredjeanlab/hallbook/internal/idgen"
	"github.com/alfredjeanlab/hallbook/internal/mirror"
	"github.com/alfredjeanlab/hallbook/internal/model"
	"github.com/alfredjeanlab/hallbook/internal/schedule"
	"github.com/alfredjeanlab/hallbook/internal/store"
)

// CreateRequest is the input to CreateReservation.
type CreateRequest struct {
	Hall           string
	Day            time.Time
	StartMinute    int
	EndMinute      int
	RequesterName  string
	RequesterEmail string
}

// Service wires the availability engine, the approval state machine, the
// authoritative store, and the best-effort side channels together.
type Service struct {
	store    store.Store
	mirror   mirror.Mirror
	gate     gate.Gate
	pub      events.Publisher
	index    *schedule.Index
	calendar *schedule.Aggregator
	hours    schedule.Hours
	buffer   time.Duration
	halls    []string
	logger   *slog.Logger
	now      func() time.Time
}

// Options configures optional service collaborators. Zero values fall
// back to safe defaults (no mirror, no events, static gate).
type Options struct {
	Mirror mirror.Mirror
	Gate   gate.Gate
	Events events.Publisher
	Hours  schedule.Hours
	Buffer time.Duration
	Halls  []string
	Logger *slog.Logger

	// Now overrides the clock, for tests.
	Now func() time.Time
}

// NewService creates a booking service over the authoritative store.
func NewService(s store.Store, opts Options) *Service {
	if opts.Mirror == nil {
		opts.Mirror = mirror.Noop{}
	}
	if opts.Gate == nil {
		opts.Gate = gate.NewStatic()
	}
	if opts.Events == nil {
		opts.Events = &events.NoopPublisher{}
	}
	if opts.Hours == (schedule.Hours{}) {
		opts.Hours = schedule.DefaultHours
	}
	if opts.Buffer == 0 {
		opts.Buffer = schedule.DefaultBuffer
	}
	if len(opts.Halls) == 0 {
		opts.Halls = schedule.DefaultHalls
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	index := schedule.NewIndex(s, opts.Logger)
	return &Service{
		store:    s,
		mirror:   opts.Mirror,
		gate:     opts.Gate,
		pub:      opts.Events,
		index:    index,
		calendar: schedule.NewAggregator(index, opts.Hours, opts.Buffer, opts.Halls),
		hours:    opts.Hours,
		buffer:   opts.Buffer,
		halls:    opts.Halls,
		logger:   opts.Logger,
		now:      opts.Now,
	}
}

// CreateReservation validates the request, consults the approval gate,
// and persists a new pending reservation. The conflict check runs inside
// the insert transaction under a hall/day lock, so two racing requests
// for overlapping buffered intervals cannot both commit.
func (s *Service) CreateReservation(ctx context.Context, req CreateRequest) (*model.Reservation, error) {
	r := &model.Reservation{
		Hall:        req.Hall,
		Day:         model.Day(req.Day),
		StartMinute: req.StartMinute,
		EndMinute:   req.EndMinute,
		Requester: model.Requester{
			Name:  req.RequesterName,
			Email: req.RequesterEmail,
		},
		Status:    model.StatusPending,
		CreatedAt: s.now().UTC(),
	}
	if err := model.ValidateReservation(r, s.hours.OpenMinute, s.hours.CloseMinute); err != nil {
		return nil, err
	}

	// The gate is consulted before anything is persisted: if the
	// classifier is down, no reservation is created.
	verdict, err := s.gate.Evaluate(ctx, gate.Request{
		Hall:           r.Hall,
		Day:            r.Day.Format("2006-01-02"),
		StartMinute:    r.StartMinute,
		EndMinute:      r.EndMinute,
		RequesterName:  r.Requester.Name,
		RequesterEmail: r.Requester.Email,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrClassifierUnavailable, err)
	}
	r.ApprovalRequired = verdict.RequiresApproval
	r.ClassifierReason = verdict.Reason

	if r.ID, err = idgen.Generate(); err != nil {
		return nil, err
	}
	if r.Token, err = idgen.NewToken(); err != nil {
		return nil, err
	}

	err = s.store.RunInTransaction(ctx, func(tx store.Store) error {
		if err := tx.LockHallDay(ctx, r.Hall, r.Day); err != nil {
			return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}
		// This read feeds a state mutation, so unlike the advisory index
		// it must fail loudly rather than degrade.
		active, err := tx.ListActiveByHallDay(ctx, r.Hall, r.Day)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}
		for _, existing := range active {
			if schedule.Conflicts(existing.Interval(), r.Interval(), s.buffer) {
				return fmt.Errorf("%w: %s on %s %s", ErrConflict,
					existing.Hall, existing.Day.Format("2006-01-02"), existing.Interval())
			}
		}
		return tx.CreateReservation(ctx, r)
	})
	if err != nil {
		return nil, err
	}

	s.propagate(ctx, r)
	if err := s.pub.Publish(ctx, events.TopicReservationRequested, events.ReservationRequested{
		Reservation:      r.Redacted(),
		ApprovalRequired: r.ApprovalRequired,
	}); err != nil {
		s.logger.Error("publish reservation.requested failed", "id", r.ID, "error", err)
	}

	return r, nil
}

// CheckAvailability reports whether the interval is free of buffered
// conflicts on the hall/day. It is advisory: a store outage degrades to
// available, and the truth is re-checked at create time. A degenerate
// interval (end <= start) is a ValidationError, never silently available.
func (s *Service) CheckAvailability(ctx context.Context, hall string, day time.Time, startMinute, endMinute int) (bool, error) {
	if endMinute <= startMinute {
		return false, &model.ValidationError{Errors: []model.FieldError{{
			Field:   "end",
			Message: fmt.Sprintf("must be after start (%s)", model.FormatMinute(startMinute)),
		}}}
	}
	candidate := model.Interval{Start: startMinute, End: endMinute}
	for _, r := range s.index.ListActive(ctx, hall, day) {
		if schedule.Conflicts(r.Interval(), candidate, s.buffer) {
			return false, nil
		}
	}
	return true, nil
}

// MonthlyCalendar maps every day of the month to its availability status
// across the given halls (or the default hall set when none are given).
func (s *Service) MonthlyCalendar(ctx context.Context, halls []string, year int, month time.Month) map[int]schedule.DayStatus {
	return s.calendar.MonthStatus(ctx, halls, year, month)
}

// Decide applies the single-use decision the token authorizes. The
// transition is a compare-and-swap on pending status: concurrent callers
// race on the database row and exactly one wins. Replaying the winning
// outcome is an idempotent no-op; a conflicting outcome returns
// AlreadyDecidedError carrying the stored record.
func (s *Service) Decide(ctx context.Context, token string, outcome model.Status, reason string) (*model.Reservation, error) {
	if !outcome.Terminal() {
		return nil, ErrInvalidOutcome
	}
	if outcome == model.StatusRejected && reason == "" {
		return nil, ErrMissingReason
	}
	// An approval never stores a reason.
	if outcome == model.StatusApproved {
		reason = ""
	}

	r, err := s.store.DecideReservation(ctx, token, outcome, reason, s.now().UTC())
	if errors.Is(err, sql.ErrNoRows) {
		return s.explainDecisionMiss(ctx, token, outcome, reason)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	s.propagate(ctx, r)
	if err := s.pub.Publish(ctx, events.TopicReservationDecided, events.ReservationDecided{
		Reservation: r.Redacted(),
		Outcome:     string(outcome),
	}); err != nil {
		s.logger.Error("publish reservation.decided failed", "id", r.ID, "error", err)
	}

	return r, nil
}

// explainDecisionMiss disambiguates a failed compare-and-swap: the token
// is either unknown, or the reservation was already decided. A replay of
// the stored outcome succeeds without touching the record.
func (s *Service) explainDecisionMiss(ctx context.Context, token string, outcome model.Status, reason string) (*model.Reservation, error) {
	r, err := s.store.GetReservationByToken(ctx, token)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if r.Status == outcome && r.DecisionReason == reason {
		return r, nil
	}
	return nil, &AlreadyDecidedError{Reservation: r}
}

// GetByToken returns the reservation the token addresses.
func (s *Service) GetByToken(ctx context.Context, token string) (*model.Reservation, error) {
	r, err := s.store.GetReservationByToken(ctx, token)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return r, nil
}

// ListForRequester returns the requester's reservations, newest first.
func (s *Service) ListForRequester(ctx context.Context, email string) ([]*model.Reservation, error) {
	list, err := s.store.ListByRequester(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return list, nil
}

// Halls returns the configured hall set. Callers get a copy; the
// configured set is immutable after construction.
func (s *Service) Halls() []string {
	return append([]string(nil), s.halls...)
}

// Hours returns the configured operational hours.
func (s *Service) Hours() schedule.Hours {
	return s.hours
}

// propagate mirrors the reservation's current state. Mirror writes are
// best-effort; the periodic snapshot reconciler bounds their staleness.
func (s *Service) propagate(ctx context.Context, r *model.Reservation) {
	if err := s.mirror.PutReservation(ctx, r); err != nil {
		s.logger.Error("mirror write failed", "id", r.ID, "error", err)
	}
}
