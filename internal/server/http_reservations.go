package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/alfredjeanlab/hallbook/internal/booking"
	"github.com/alfredjeanlab/hallbook/internal/model"
)

// createReservationRequest is the JSON body for POST /v1/reservations.
type createReservationRequest struct {
	Hall      string          `json:"hall"`
	Day       string          `json:"day"`   // YYYY-MM-DD
	Start     string          `json:"start"` // HH:MM
	End       string          `json:"end"`   // HH:MM
	Requester model.Requester `json:"requester"`
}

// handleCreateReservation handles POST /v1/reservations.
func (s *ReservationServer) handleCreateReservation(w http.ResponseWriter, r *http.Request) {
	var req createReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	day, err := time.Parse("2006-01-02", req.Day)
	if err != nil {
		writeError(w, http.StatusBadRequest, "day must be YYYY-MM-DD")
		return
	}
	start, err := model.ParseMinute(req.Start)
	if err != nil {
		writeError(w, http.StatusBadRequest, "start must be HH:MM")
		return
	}
	end, err := model.ParseMinute(req.End)
	if err != nil {
		writeError(w, http.StatusBadRequest, "end must be HH:MM")
		return
	}

	res, err := s.booking.CreateReservation(r.Context(), booking.CreateRequest{
		Hall:           req.Hall,
		Day:            day,
		StartMinute:    start,
		EndMinute:      end,
		RequesterName:  req.Requester.Name,
		RequesterEmail: req.Requester.Email,
	})
	if err != nil {
		writeBookingError(w, err)
		return
	}

	// The create response is the only place the decision token is issued.
	writeJSON(w, http.StatusCreated, reservationView(res, true))
}

// handleListReservations handles GET /v1/reservations?requester=<email>.
func (s *ReservationServer) handleListReservations(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("requester")
	if email == "" {
		writeError(w, http.StatusBadRequest, "requester is required")
		return
	}

	list, err := s.booking.ListForRequester(r.Context(), email)
	if err != nil {
		writeBookingError(w, err)
		return
	}

	views := make([]map[string]any, 0, len(list))
	for _, res := range list {
		views = append(views, reservationView(res, false))
	}
	writeJSON(w, http.StatusOK, map[string]any{"reservations": views})
}

// handleGetByToken handles GET /v1/reservations/token/{token}.
func (s *ReservationServer) handleGetByToken(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	if token == "" {
		writeError(w, http.StatusBadRequest, "token is required")
		return
	}

	res, err := s.booking.GetByToken(r.Context(), token)
	if err != nil {
		writeBookingError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reservationView(res, true))
}

// decideRequest is the JSON body for POST /v1/reservations/token/{token}/decide.
type decideRequest struct {
	Outcome string `json:"outcome"` // approved | rejected
	Reason  string `json:"reason,omitempty"`
}

// handleDecide handles POST /v1/reservations/token/{token}/decide.
func (s *ReservationServer) handleDecide(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	if token == "" {
		writeError(w, http.StatusBadRequest, "token is required")
		return
	}

	var req decideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	res, err := s.booking.Decide(r.Context(), token, model.Status(req.Outcome), req.Reason)
	if err != nil {
		writeBookingError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reservationView(res, false))
}

// handleCheckAvailability handles
// GET /v1/availability?hall=<hall>&day=<YYYY-MM-DD>&start=<HH:MM>&end=<HH:MM>.
func (s *ReservationServer) handleCheckAvailability(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	hall := q.Get("hall")
	if hall == "" {
		writeError(w, http.StatusBadRequest, "hall is required")
		return
	}
	day, err := time.Parse("2006-01-02", q.Get("day"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "day must be YYYY-MM-DD")
		return
	}
	start, err := model.ParseMinute(q.Get("start"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "start must be HH:MM")
		return
	}
	end, err := model.ParseMinute(q.Get("end"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "end must be HH:MM")
		return
	}

	available, err := s.booking.CheckAvailability(r.Context(), hall, day, start, end)
	if err != nil {
		writeBookingError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"hall":      hall,
		"day":       q.Get("day"),
		"start":     q.Get("start"),
		"end":       q.Get("end"),
		"available": available,
	})
}

// handleCalendar handles GET /v1/calendar?year=<year>&month=<1-12>&halls=<a,b>.
func (s *ReservationServer) handleCalendar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	year, err := strconv.Atoi(q.Get("year"))
	if err != nil || year < 1 {
		writeError(w, http.StatusBadRequest, "year is required")
		return
	}
	monthNum, err := strconv.Atoi(q.Get("month"))
	if err != nil || monthNum < 1 || monthNum > 12 {
		writeError(w, http.StatusBadRequest, "month must be 1-12")
		return
	}

	var halls []string
	if v := q.Get("halls"); v != "" {
		for _, h := range strings.Split(v, ",") {
			if h = strings.TrimSpace(h); h != "" {
				halls = append(halls, h)
			}
		}
	}

	days := s.booking.MonthlyCalendar(r.Context(), halls, year, time.Month(monthNum))
	writeJSON(w, http.StatusOK, map[string]any{
		"year":  year,
		"month": monthNum,
		"days":  days,
	})
}

// handleListHalls handles GET /v1/halls.
func (s *ReservationServer) handleListHalls(w http.ResponseWriter, r *http.Request) {
	hours := s.booking.Hours()
	writeJSON(w, http.StatusOK, map[string]any{
		"halls": s.booking.Halls(),
		"hours": map[string]string{
			"open":  model.FormatMinute(hours.OpenMinute),
			"close": model.FormatMinute(hours.CloseMinute),
		},
	})
}
