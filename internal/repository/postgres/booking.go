package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"toolrental-backend/internal/domain"
	"toolrental-backend/internal/logger"
	"toolrental-backend/internal/repository"
)

const bookingColumns = `b.id, b.tool_id, b.customer_id, b.start_date, b.end_date, b.status, b.payment_status, b.total_price_cents, b.created_on, b.updated_on`

const orderColumns = bookingColumns + `, c.id, c.name, c.email, COALESCE(c.phone, ''), c.created_on, t.name, t.price_per_day_cents`

const orderFrom = ` FROM bookings b JOIN customers c ON c.id = b.customer_id JOIN tools t ON t.id = b.tool_id`

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	b := &domain.Booking{}
	if err := row.Scan(&b.ID, &b.ToolID, &b.CustomerID, &b.StartDate, &b.EndDate, &b.Status, &b.PaymentStatus, &b.TotalPriceCents, &b.CreatedOn, &b.UpdatedOn); err != nil {
		return nil, err
	}
	return b, nil
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	o := &domain.Order{}
	b := &o.Booking
	c := &o.Customer
	if err := row.Scan(&b.ID, &b.ToolID, &b.CustomerID, &b.StartDate, &b.EndDate, &b.Status, &b.PaymentStatus, &b.TotalPriceCents, &b.CreatedOn, &b.UpdatedOn,
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedOn, &o.ToolName, &o.PricePerDayCents); err != nil {
		return nil, err
	}
	o.TotalDays = b.Range().Days()
	return o, nil
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	query := `INSERT INTO bookings (tool_id, customer_id, start_date, end_date, status, payment_status, total_price_cents, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	now := time.Now()
	logger.DatabaseCall("booking.create", "INSERT INTO bookings", "tool_id", b.ToolID, "range", b.Range().String())
	err := r.db.QueryRowContext(ctx, query, b.ToolID, b.CustomerID, b.StartDate, b.EndDate, b.Status, b.PaymentStatus, b.TotalPriceCents, now, now).Scan(&b.ID)
	if err != nil {
		if pqCode(err) == pqExclusionViolation {
			return fmt.Errorf("tool %d %s: %w", b.ToolID, b.Range(), domain.ErrBookingConflict)
		}
		logger.DatabaseResult("booking.create", 0, err)
		return err
	}
	b.CreatedOn, b.UpdatedOn = now, now
	logger.DatabaseResult("booking.create", 1, nil, "booking_id", b.ID)
	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings b WHERE b.id = $1`
	b, err := scanBooking(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err, domain.ErrBookingNotFound)
	}
	return b, nil
}

// Update persists status and payment status.
func (r *bookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	query := `UPDATE bookings SET status=$1, payment_status=$2, updated_on=$3 WHERE id=$4`
	now := time.Now()
	res, err := r.db.ExecContext(ctx, query, b.Status, b.PaymentStatus, now, b.ID)
	if err != nil {
		if pqCode(err) == pqExclusionViolation {
			return fmt.Errorf("booking %d: %w", b.ID, domain.ErrBookingConflict)
		}
		return err
	}
	if err := checkAffected(res, domain.ErrBookingNotFound); err != nil {
		return err
	}
	b.UpdatedOn = now
	return nil
}

func (r *bookingRepository) ListByTool(ctx context.Context, toolID int32) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings b WHERE b.tool_id = $1 ORDER BY b.start_date, b.id`
	return r.listBookings(ctx, query, toolID)
}

func (r *bookingRepository) ListByCustomer(ctx context.Context, customerID int32) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings b WHERE b.customer_id = $1 ORDER BY b.created_on DESC, b.id DESC`
	return r.listBookings(ctx, query, customerID)
}

func (r *bookingRepository) listBookings(ctx context.Context, query string, args ...any) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func (r *bookingRepository) ListOrders(ctx context.Context, f domain.OrderFilter) ([]domain.Order, int32, error) {
	sql := `SELECT ` + orderColumns + orderFrom + ` WHERE TRUE`

	var args []any
	argIdx := 1

	if f.Status != "" {
		sql += fmt.Sprintf(" AND b.status = $%d", argIdx)
		args = append(args, f.Status)
		argIdx++
	}
	if f.Search != "" {
		sql += fmt.Sprintf(" AND (c.name ILIKE $%d OR c.email ILIKE $%d OR b.id::text = $%d)", argIdx, argIdx, argIdx+1)
		args = append(args, "%"+f.Search+"%", f.Search)
		argIdx += 2
	}

	var count int32
	countSql := "SELECT count(*) FROM (" + sql + ") as sub"
	if err := r.db.QueryRowContext(ctx, countSql, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (f.Page - 1) * f.PageSize
	sql += fmt.Sprintf(" ORDER BY b.created_on DESC, b.id DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, f.PageSize, offset)

	orders, err := r.listOrders(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	return orders, count, nil
}

func (r *bookingRepository) GetOrder(ctx context.Context, id int32) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + orderFrom + ` WHERE b.id = $1`
	o, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err, domain.ErrBookingNotFound)
	}
	return o, nil
}

func (r *bookingRepository) ListOrdersStartingOn(ctx context.Context, day domain.Date, status domain.BookingStatus) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + orderFrom + ` WHERE b.start_date = $1 AND b.status = $2 ORDER BY b.id`
	return r.listOrders(ctx, query, day, status)
}

func (r *bookingRepository) listOrders(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}
