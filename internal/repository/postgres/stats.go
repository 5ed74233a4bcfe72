package postgres

import (
	"context"
	"database/sql"

	"toolrental-backend/internal/domain"
	"toolrental-backend/internal/repository"
)

type statsRepository struct {
	db *sql.DB
}

func NewStatsRepository(db *sql.DB) repository.StatsRepository {
	return &statsRepository{db: db}
}

// DashboardStats counts revenue from paid, non-cancelled bookings only.
func (r *statsRepository) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	query := `SELECT
		(SELECT COALESCE(SUM(total_price_cents), 0) FROM bookings WHERE payment_status = 'paid' AND status <> 'cancelled'),
		(SELECT count(*) FROM bookings),
		(SELECT count(*) FROM bookings WHERE status = 'pending'),
		(SELECT count(*) FROM customers),
		(SELECT count(*) FROM tools WHERE deleted_on IS NULL)`

	s := &domain.DashboardStats{}
	err := r.db.QueryRowContext(ctx, query).Scan(&s.RevenueCents, &s.Bookings, &s.PendingBookings, &s.Customers, &s.Tools)
	if err != nil {
		return nil, err
	}
	return s, nil
}
