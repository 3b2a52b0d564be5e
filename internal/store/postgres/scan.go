package postgres

import (
	"database/sql"
	"time"

	"github.com/alfredjeanlab/hallbook/internal/model"
)

// scannable is the interface satisfied by both *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

// scanReservation scans a single row into a model.Reservation.
// The row must contain columns in the order defined by reservationColumns.
func scanReservation(row scannable) (*model.Reservation, error) {
	var r model.Reservation
	var (
		classifierReason sql.NullString
		decisionReason   sql.NullString
		decidedAt        sql.NullTime
	)

	err := row.Scan(
		&r.ID,
		&r.Hall,
		&r.Day,
		&r.StartMinute,
		&r.EndMinute,
		&r.Requester.Name,
		&r.Requester.Email,
		&r.Status,
		&r.Token,
		&r.ApprovalRequired,
		&classifierReason,
		&decisionReason,
		&r.CreatedAt,
		&decidedAt,
	)
	if err != nil {
		return nil, err
	}

	r.ClassifierReason = classifierReason.String
	r.DecisionReason = decisionReason.String
	if decidedAt.Valid {
		t := decidedAt.Time
		r.DecidedAt = &t
	}
	r.Day = model.Day(r.Day)

	return &r, nil
}

// scanReservations scans multiple rows into a slice of reservation pointers.
func scanReservations(rows *sql.Rows) ([]*model.Reservation, error) {
	var out []*model.Reservation
	for rows.Next() {
		r, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// nullTimePtr converts a *time.Time to a sql.NullTime.
func nullTimePtr(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// nullString converts a string to sql.NullString; empty string is null.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
