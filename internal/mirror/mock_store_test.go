package mirror

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"time"

	"github.com/alfredjeanlab/hallbook/internal/model"
	"github.com/alfredjeanlab/hallbook/internal/store"
)

// mockStore is an in-memory store.Store for exercising export and
// reconciliation without a database.
type mockStore struct {
	reservations map[string]*model.Reservation
	listErr      error
}

func newMockStore() *mockStore {
	return &mockStore{reservations: make(map[string]*model.Reservation)}
}

func (m *mockStore) CreateReservation(_ context.Context, r *model.Reservation) error {
	m.reservations[r.ID] = r
	return nil
}

func (m *mockStore) GetReservationByToken(_ context.Context, token string) (*model.Reservation, error) {
	for _, r := range m.reservations {
		if r.Token == token {
			return r, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockStore) GetReservationByID(_ context.Context, id string) (*model.Reservation, error) {
	r, ok := m.reservations[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return r, nil
}

func (m *mockStore) ListActiveByHallDay(_ context.Context, hall string, day time.Time) ([]*model.Reservation, error) {
	var out []*model.Reservation
	for _, r := range m.reservations {
		if r.Hall == hall && r.Day.Equal(model.Day(day)) && r.Status.Active() {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockStore) ListByRequester(_ context.Context, email string) ([]*model.Reservation, error) {
	var out []*model.Reservation
	for _, r := range m.reservations {
		if strings.EqualFold(r.Requester.Email, email) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockStore) ListByMonth(_ context.Context, year int, month time.Month) ([]*model.Reservation, error) {
	var out []*model.Reservation
	for _, r := range m.reservations {
		if r.Day.Year() == year && r.Day.Month() == month {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockStore) ListAll(_ context.Context) ([]*model.Reservation, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]*model.Reservation, 0, len(m.reservations))
	for _, r := range m.reservations {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockStore) DecideReservation(_ context.Context, token string, status model.Status, reason string, decidedAt time.Time) (*model.Reservation, error) {
	for _, r := range m.reservations {
		if r.Token == token && r.Status == model.StatusPending {
			r.Status = status
			r.DecisionReason = reason
			r.DecidedAt = &decidedAt
			return r, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockStore) LockHallDay(context.Context, string, time.Time) error { return nil }

func (m *mockStore) RunInTransaction(_ context.Context, fn func(tx store.Store) error) error {
	return fn(m)
}

func (m *mockStore) Close() error { return nil }
