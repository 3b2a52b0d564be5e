// Package postgres implements the store.Store interface backed by PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"

	"github.com/alfredjeanlab/hallbook/internal/model"
	"github.com/alfredjeanlab/hallbook/internal/store"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// PostgresStore implements store.Store backed by a PostgreSQL database.
type PostgresStore struct {
	db *sql.DB
}

// Compile-time check that PostgresStore implements store.Store.
var _ store.Store = (*PostgresStore)(nil)

// New opens a connection to the PostgreSQL database at the given URL,
// configures the connection pool, and runs any pending migrations.
func New(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	dbDriver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration db driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "postgres", dbDriver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}

// Close closes the underlying database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) CreateReservation(ctx context.Context, r *model.Reservation) error {
	return queryCreateReservation(ctx, s.db, r)
}

func (s *PostgresStore) GetReservationByToken(ctx context.Context, token string) (*model.Reservation, error) {
	return queryGetByToken(ctx, s.db, token)
}

func (s *PostgresStore) GetReservationByID(ctx context.Context, id string) (*model.Reservation, error) {
	return queryGetByID(ctx, s.db, id)
}

func (s *PostgresStore) ListActiveByHallDay(ctx context.Context, hall string, day time.Time) ([]*model.Reservation, error) {
	return queryListActiveByHallDay(ctx, s.db, hall, day)
}

func (s *PostgresStore) ListByRequester(ctx context.Context, email string) ([]*model.Reservation, error) {
	return queryListByRequester(ctx, s.db, email)
}

func (s *PostgresStore) ListByMonth(ctx context.Context, year int, month time.Month) ([]*model.Reservation, error) {
	return queryListByMonth(ctx, s.db, year, month)
}

func (s *PostgresStore) ListAll(ctx context.Context) ([]*model.Reservation, error) {
	return queryListAll(ctx, s.db)
}

func (s *PostgresStore) DecideReservation(ctx context.Context, token string, status model.Status, reason string, decidedAt time.Time) (*model.Reservation, error) {
	return queryDecideReservation(ctx, s.db, token, status, reason, decidedAt)
}

func (s *PostgresStore) LockHallDay(ctx context.Context, hall string, day time.Time) error {
	return queryLockHallDay(ctx, s.db, hall, day)
}

// RunInTransaction begins a database transaction, creates a txStore that
// delegates to it, calls fn, and commits on success or rolls back on error.
func (s *PostgresStore) RunInTransaction(ctx context.Context, fn func(tx store.Store) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	txS := &txStore{tx: tx}
	if err := fn(txS); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// txStore implements store.Store using a *sql.Tx.
type txStore struct {
	tx *sql.Tx
}

// Compile-time check that txStore implements store.Store.
var _ store.Store = (*txStore)(nil)

func (s *txStore) CreateReservation(ctx context.Context, r *model.Reservation) error {
	return queryCreateReservation(ctx, s.tx, r)
}

func (s *txStore) GetReservationByToken(ctx context.Context, token string) (*model.Reservation, error) {
	return queryGetByToken(ctx, s.tx, token)
}

func (s *txStore) GetReservationByID(ctx context.Context, id string) (*model.Reservation, error) {
	return queryGetByID(ctx, s.tx, id)
}

func (s *txStore) ListActiveByHallDay(ctx context.Context, hall string, day time.Time) ([]*model.Reservation, error) {
	return queryListActiveByHallDay(ctx, s.tx, hall, day)
}

func (s *txStore) ListByRequester(ctx context.Context, email string) ([]*model.Reservation, error) {
	return queryListByRequester(ctx, s.tx, email)
}

func (s *txStore) ListByMonth(ctx context.Context, year int, month time.Month) ([]*model.Reservation, error) {
	return queryListByMonth(ctx, s.tx, year, month)
}

func (s *txStore) ListAll(ctx context.Context) ([]*model.Reservation, error) {
	return queryListAll(ctx, s.tx)
}

func (s *txStore) DecideReservation(ctx context.Context, token string, status model.Status, reason string, decidedAt time.Time) (*model.Reservation, error) {
	return queryDecideReservation(ctx, s.tx, token, status, reason, decidedAt)
}

func (s *txStore) LockHallDay(ctx context.Context, hall string, day time.Time) error {
	return queryLockHallDay(ctx, s.tx, hall, day)
}

// RunInTransaction on a txStore reuses the existing transaction (no nesting).
func (s *txStore) RunInTransaction(ctx context.Context, fn func(tx store.Store) error) error {
	return fn(s)
}

// Close is a no-op for a transaction store; the parent store owns the connection.
func (s *txStore) Close() error {
	return nil
}
