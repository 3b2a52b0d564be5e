package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alfredjeanlab/hallbook/internal/booking"
	"github.com/alfredjeanlab/hallbook/internal/model"
	"github.com/alfredjeanlab/hallbook/internal/schedule"
)

// stubBooking is a canned Booking implementation for handler tests.
type stubBooking struct {
	createFn func(booking.CreateRequest) (*model.Reservation, error)
	decideFn func(token string, outcome model.Status, reason string) (*model.Reservation, error)
	getFn    func(token string) (*model.Reservation, error)
	listFn   func(email string) ([]*model.Reservation, error)
	avail    bool
	availErr error
	calendar map[int]schedule.DayStatus
}

func (s *stubBooking) CreateReservation(_ context.Context, req booking.CreateRequest) (*model.Reservation, error) {
	return s.createFn(req)
}

func (s *stubBooking) CheckAvailability(context.Context, string, time.Time, int, int) (bool, error) {
	return s.avail, s.availErr
}

func (s *stubBooking) MonthlyCalendar(context.Context, []string, int, time.Month) map[int]schedule.DayStatus {
	return s.calendar
}

func (s *stubBooking) Decide(_ context.Context, token string, outcome model.Status, reason string) (*model.Reservation, error) {
	return s.decideFn(token, outcome, reason)
}

func (s *stubBooking) GetByToken(_ context.Context, token string) (*model.Reservation, error) {
	return s.getFn(token)
}

func (s *stubBooking) ListForRequester(_ context.Context, email string) ([]*model.Reservation, error) {
	return s.listFn(email)
}

func (s *stubBooking) Halls() []string       { return schedule.DefaultHalls }
func (s *stubBooking) Hours() schedule.Hours { return schedule.DefaultHours }

func sampleReservation() *model.Reservation {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	return &model.Reservation{
		ID:          "rs-sample1",
		Hall:        "Main Hall",
		Day:         time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		StartMinute: 9 * 60,
		EndMinute:   10 * 60,
		Requester:   model.Requester{Name: "Dana Mills", Email: "dana@example.com"},
		Status:      model.StatusPending,
		Token:       "tokentokentokentokentokentokenab",
		CreatedAt:   now,
	}
}

func doRequest(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode response %q: %v", rr.Body.String(), err)
	}
	return m
}

func TestHandleCreateReservation(t *testing.T) {
	sb := &stubBooking{
		createFn: func(req booking.CreateRequest) (*model.Reservation, error) {
			if req.Hall != "Main Hall" || req.StartMinute != 540 || req.EndMinute != 600 {
				t.Errorf("unexpected request: %+v", req)
			}
			return sampleReservation(), nil
		},
	}
	h := NewReservationServer(sb).NewHTTPHandler("")

	rr := doRequest(t, h, http.MethodPost, "/v1/reservations",
		`{"hall":"Main Hall","day":"2024-06-10","start":"09:00","end":"10:00","requester":{"name":"Dana Mills","email":"dana@example.com"}}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}

	body := decodeBody(t, rr)
	if body["id"] != "rs-sample1" {
		t.Errorf("id = %v", body["id"])
	}
	// The token is issued on create.
	if body["token"] != "tokentokentokentokentokentokenab" {
		t.Errorf("token = %v", body["token"])
	}
	if body["display_state"] != "pending" {
		t.Errorf("display_state = %v", body["display_state"])
	}
}

func TestHandleCreateReservation_BadInput(t *testing.T) {
	sb := &stubBooking{
		createFn: func(booking.CreateRequest) (*model.Reservation, error) {
			t.Fatal("service must not be called on parse failure")
			return nil, nil
		},
	}
	h := NewReservationServer(sb).NewHTTPHandler("")

	tests := []struct {
		name string
		body string
	}{
		{"malformed JSON", `{`},
		{"bad day", `{"hall":"Main Hall","day":"June 10","start":"09:00","end":"10:00"}`},
		{"bad start", `{"hall":"Main Hall","day":"2024-06-10","start":"9am","end":"10:00"}`},
		{"bad end", `{"hall":"Main Hall","day":"2024-06-10","start":"09:00","end":"25:00"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doRequest(t, h, http.MethodPost, "/v1/reservations", tt.body)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status = %d", rr.Code)
			}
		})
	}
}

func TestHandleCreateReservation_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", &model.ValidationError{Errors: []model.FieldError{{Field: "hall", Message: "is required"}}}, http.StatusBadRequest},
		{"conflict", booking.ErrConflict, http.StatusConflict},
		{"classifier down", booking.ErrClassifierUnavailable, http.StatusBadGateway},
		{"storage down", booking.ErrStorageUnavailable, http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sb := &stubBooking{
				createFn: func(booking.CreateRequest) (*model.Reservation, error) { return nil, tt.err },
			}
			h := NewReservationServer(sb).NewHTTPHandler("")
			rr := doRequest(t, h, http.MethodPost, "/v1/reservations",
				`{"hall":"Main Hall","day":"2024-06-10","start":"09:00","end":"10:00","requester":{"name":"D","email":"d@e.com"}}`)
			if rr.Code != tt.want {
				t.Fatalf("status = %d, want %d", rr.Code, tt.want)
			}
		})
	}
}

func TestHandleGetByToken(t *testing.T) {
	sb := &stubBooking{
		getFn: func(token string) (*model.Reservation, error) {
			if token != "tok123" {
				return nil, booking.ErrNotFound
			}
			return sampleReservation(), nil
		},
	}
	h := NewReservationServer(sb).NewHTTPHandler("")

	rr := doRequest(t, h, http.MethodGet, "/v1/reservations/token/tok123", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	body := decodeBody(t, rr)
	if body["id"] != "rs-sample1" {
		t.Errorf("id = %v", body["id"])
	}

	rr = doRequest(t, h, http.MethodGet, "/v1/reservations/token/unknown", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d for unknown token", rr.Code)
	}
}

func TestHandleDecide(t *testing.T) {
	decided := sampleReservation()
	decided.Status = model.StatusApproved
	at := time.Date(2024, 6, 2, 9, 0, 0, 0, time.UTC)
	decided.DecidedAt = &at

	sb := &stubBooking{
		decideFn: func(token string, outcome model.Status, reason string) (*model.Reservation, error) {
			if token != "tok123" || outcome != model.StatusApproved {
				t.Errorf("got token=%q outcome=%q", token, outcome)
			}
			return decided, nil
		},
	}
	h := NewReservationServer(sb).NewHTTPHandler("")

	rr := doRequest(t, h, http.MethodPost, "/v1/reservations/token/tok123/decide",
		`{"outcome":"approved"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	body := decodeBody(t, rr)
	if body["status"] != "approved" || body["display_state"] != "confirmed" {
		t.Errorf("body = %v", body)
	}
	// Decision responses never re-issue the token.
	if _, ok := body["token"]; ok {
		t.Error("decide response must not include the token")
	}
}

func TestHandleDecide_AlreadyDecided(t *testing.T) {
	winner := sampleReservation()
	winner.Status = model.StatusRejected
	winner.DecisionReason = "hall closed"

	sb := &stubBooking{
		decideFn: func(string, model.Status, string) (*model.Reservation, error) {
			return nil, &booking.AlreadyDecidedError{Reservation: winner}
		},
	}
	h := NewReservationServer(sb).NewHTTPHandler("")

	rr := doRequest(t, h, http.MethodPost, "/v1/reservations/token/tok123/decide",
		`{"outcome":"approved"}`)
	if rr.Code != http.StatusConflict {
		t.Fatalf("status = %d", rr.Code)
	}
	body := decodeBody(t, rr)
	res, ok := body["reservation"].(map[string]any)
	if !ok {
		t.Fatalf("expected winning reservation in body, got %v", body)
	}
	if res["status"] != "rejected" {
		t.Errorf("winner status = %v", res["status"])
	}
}

func TestHandleDecide_BadOutcome(t *testing.T) {
	sb := &stubBooking{
		decideFn: func(_ string, outcome model.Status, _ string) (*model.Reservation, error) {
			if !outcome.Terminal() {
				return nil, booking.ErrInvalidOutcome
			}
			return nil, booking.ErrMissingReason
		},
	}
	h := NewReservationServer(sb).NewHTTPHandler("")

	rr := doRequest(t, h, http.MethodPost, "/v1/reservations/token/tok123/decide",
		`{"outcome":"cancelled"}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rr.Code)
	}

	rr = doRequest(t, h, http.MethodPost, "/v1/reservations/token/tok123/decide",
		`{"outcome":"rejected"}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d for missing reason", rr.Code)
	}
}

func TestHandleListReservations(t *testing.T) {
	sb := &stubBooking{
		listFn: func(email string) ([]*model.Reservation, error) {
			if email != "dana@example.com" {
				t.Errorf("email = %q", email)
			}
			return []*model.Reservation{sampleReservation()}, nil
		},
	}
	h := NewReservationServer(sb).NewHTTPHandler("")

	rr := doRequest(t, h, http.MethodGet, "/v1/reservations?requester=dana%40example.com", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	body := decodeBody(t, rr)
	list, ok := body["reservations"].([]any)
	if !ok || len(list) != 1 {
		t.Fatalf("reservations = %v", body["reservations"])
	}
	// Listings never expose decision tokens.
	if _, ok := list[0].(map[string]any)["token"]; ok {
		t.Error("list response must not include tokens")
	}

	rr = doRequest(t, h, http.MethodGet, "/v1/reservations", "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d without requester", rr.Code)
	}
}

func TestHandleCheckAvailability(t *testing.T) {
	sb := &stubBooking{avail: true}
	h := NewReservationServer(sb).NewHTTPHandler("")

	rr := doRequest(t, h, http.MethodGet,
		"/v1/availability?hall=Main+Hall&day=2024-06-10&start=09:00&end=10:00", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	body := decodeBody(t, rr)
	if body["available"] != true {
		t.Errorf("available = %v", body["available"])
	}

	rr = doRequest(t, h, http.MethodGet, "/v1/availability?day=2024-06-10&start=09:00&end=10:00", "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d without hall", rr.Code)
	}
}

func TestHandleCheckAvailability_DegenerateInterval(t *testing.T) {
	sb := &stubBooking{availErr: &model.ValidationError{Errors: []model.FieldError{
		{Field: "end", Message: "must be after start (12:00)"},
	}}}
	h := NewReservationServer(sb).NewHTTPHandler("")

	rr := doRequest(t, h, http.MethodGet,
		"/v1/availability?hall=Main+Hall&day=2024-06-10&start=12:00&end=10:00", "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for reversed interval", rr.Code)
	}
	body := decodeBody(t, rr)
	if _, ok := body["available"]; ok {
		t.Error("reversed interval must not report availability")
	}
}

func TestHandleCalendar(t *testing.T) {
	sb := &stubBooking{calendar: map[int]schedule.DayStatus{
		1: schedule.DayAvailable,
		2: schedule.DayFullyBooked,
	}}
	h := NewReservationServer(sb).NewHTTPHandler("")

	rr := doRequest(t, h, http.MethodGet, "/v1/calendar?year=2024&month=6&halls=Main+Hall,East+Wing", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	body := decodeBody(t, rr)
	days, ok := body["days"].(map[string]any)
	if !ok {
		t.Fatalf("days = %v", body["days"])
	}
	if days["1"] != "available" || days["2"] != "fully-booked" {
		t.Errorf("days = %v", days)
	}

	rr = doRequest(t, h, http.MethodGet, "/v1/calendar?year=2024&month=13", "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d for month 13", rr.Code)
	}
}

func TestAuthMiddleware(t *testing.T) {
	sb := &stubBooking{avail: true}
	h := NewReservationServer(sb).NewHTTPHandler("secret")

	// Health is always exempt.
	rr := doRequest(t, h, http.MethodGet, "/v1/health", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("health status = %d", rr.Code)
	}

	// Missing header.
	rr = doRequest(t, h, http.MethodGet, "/v1/availability?hall=x&day=2024-06-10&start=09:00&end=10:00", "")
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d without auth", rr.Code)
	}

	// Wrong token.
	req := httptest.NewRequest(http.MethodGet, "/v1/availability?hall=x&day=2024-06-10&start=09:00&end=10:00", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d with wrong token", rec.Code)
	}

	// Correct token.
	req = httptest.NewRequest(http.MethodGet, "/v1/availability?hall=x&day=2024-06-10&start=09:00&end=10:00", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d with correct token", rec.Code)
	}
}
