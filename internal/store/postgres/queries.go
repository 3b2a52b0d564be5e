package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/alfredjeanlab/hallbook/internal/model"
	"github.com/alfredjeanlab/hallbook/internal/store"
)

// reservationColumns is the column list used for SELECT statements on the
// reservations table.
const reservationColumns = `id, hall, day, start_minute, end_minute,
	requester_name, requester_email, status, token,
	approval_required, classifier_reason, decision_reason, created_at, decided_at`

// executor is the interface satisfied by both *sql.DB and *sql.Tx.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// uniqueViolation is the PostgreSQL error code for unique constraint violations.
const uniqueViolation = "23505"

func queryCreateReservation(ctx context.Context, db executor, r *model.Reservation) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO reservations (
			id, hall, day, start_minute, end_minute,
			requester_name, requester_email, status, token,
			approval_required, classifier_reason, decision_reason, created_at, decided_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9,
			$10, $11, $12, $13, $14
		)`,
		r.ID,
		r.Hall,
		r.Day,
		r.StartMinute,
		r.EndMinute,
		r.Requester.Name,
		r.Requester.Email,
		string(r.Status),
		r.Token,
		r.ApprovalRequired,
		r.ClassifierReason,
		nullString(r.DecisionReason),
		r.CreatedAt,
		nullTimePtr(r.DecidedAt),
	)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolation {
		if pqErr.Constraint == "reservations_token_key" {
			return fmt.Errorf("%w: %s", store.ErrTokenCollision, r.Token)
		}
	}
	return err
}

func queryGetByToken(ctx context.Context, db executor, token string) (*model.Reservation, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE token = $1`, token)
	return scanReservation(row)
}

func queryGetByID(ctx context.Context, db executor, id string) (*model.Reservation, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE id = $1`, id)
	return scanReservation(row)
}

func queryListActiveByHallDay(ctx context.Context, db executor, hall string, day time.Time) ([]*model.Reservation, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT `+reservationColumns+`
		FROM reservations
		WHERE hall = $1 AND day = $2 AND status IN ('pending', 'approved')
		ORDER BY start_minute ASC`,
		hall, model.Day(day),
	)
	if err != nil {
		return nil, fmt.Errorf("list active reservations: %w", err)
	}
	defer rows.Close()
	return scanReservations(rows)
}

func queryListByRequester(ctx context.Context, db executor, email string) ([]*model.Reservation, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT `+reservationColumns+`
		FROM reservations
		WHERE requester_email = $1
		ORDER BY created_at DESC`,
		email,
	)
	if err != nil {
		return nil, fmt.Errorf("list reservations by requester: %w", err)
	}
	defer rows.Close()
	return scanReservations(rows)
}

func queryListByMonth(ctx context.Context, db executor, year int, month time.Month) ([]*model.Reservation, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	rows, err := db.QueryContext(ctx, `
		SELECT `+reservationColumns+`
		FROM reservations
		WHERE day >= $1 AND day < $2
		ORDER BY day ASC, start_minute ASC`,
		from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("list reservations by month: %w", err)
	}
	defer rows.Close()
	return scanReservations(rows)
}

func queryListAll(ctx context.Context, db executor) ([]*model.Reservation, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT `+reservationColumns+`
		FROM reservations
		ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list all reservations: %w", err)
	}
	defer rows.Close()
	return scanReservations(rows)
}

// queryDecideReservation applies the conditional pending -> terminal
// transition. The WHERE clause on status = 'pending' is the compare-and-swap
// that guarantees exactly one effective decision per token; losers see
// sql.ErrNoRows.
func queryDecideReservation(ctx context.Context, db executor, token string, status model.Status, reason string, decidedAt time.Time) (*model.Reservation, error) {
	row := db.QueryRowContext(ctx, `
		UPDATE reservations
		SET status = $2, decision_reason = $3, decided_at = $4
		WHERE token = $1 AND status = 'pending'
		RETURNING `+reservationColumns,
		token, string(status), nullString(reason), decidedAt,
	)
	return scanReservation(row)
}

// queryLockHallDay serializes writers for one hall/day with a
// transaction-scoped advisory lock, released automatically at commit or
// rollback. SELECT FOR UPDATE cannot serialize inserts against an empty
// day, so the lock covers the phantom case.
func queryLockHallDay(ctx context.Context, db executor, hall string, day time.Time) error {
	_, err := db.ExecContext(ctx,
		`SELECT pg_advisory_xact_lock(hashtext($1))`,
		hall+":"+model.Day(day).Format("2006-01-02"),
	)
	if err != nil {
		return fmt.Errorf("lock hall/day: %w", err)
	}
	return nil
}
