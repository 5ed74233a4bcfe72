package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"toolrental-backend/internal/logger"
	"toolrental-backend/internal/repository"

	"github.com/lib/pq"
)

//go:embed schema.sql
var schema string

const (
	pqUniqueViolation    = "23505"
	pqExclusionViolation = "23P01"
)

type Store struct {
	db *sql.DB
	repository.ToolRepository
	repository.BookingRepository
	repository.CustomerRepository
	repository.StatsRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                 db,
		ToolRepository:     NewToolRepository(db),
		BookingRepository:  NewBookingRepository(db),
		CustomerRepository: NewCustomerRepository(db),
		StatsRepository:    NewStatsRepository(db),
	}
}

// DB exposes the pool for jobs that run set-based SQL.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Migrate creates the tables if they do not exist.
func (s *Store) Migrate(ctx context.Context) error {
	logger.DatabaseCall("migrate", "schema.sql")
	_, err := s.db.ExecContext(ctx, schema)
	logger.DatabaseResult("migrate", 0, err)
	if err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Open connects and pings the database.
func Open(ctx context.Context, dsn string, maxOpenConns int) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxOpenConns / 2)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// pqCode returns the SQLSTATE of a driver error, or "".
func pqCode(err error) pq.ErrorCode {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code
	}
	return ""
}

// notFound maps sql.ErrNoRows to the given sentinel.
func notFound(err, sentinel error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return sentinel
	}
	return err
}

// checkAffected returns sentinel when an UPDATE matched nothing.
func checkAffected(res sql.Result, sentinel error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sentinel
	}
	return nil
}
