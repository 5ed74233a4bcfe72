package jobs

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"toolrental-backend/internal/clock"
	"toolrental-backend/internal/config"
	"toolrental-backend/internal/domain"
	"toolrental-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockEmailService struct{ mock.Mock }

func (m *MockEmailService) SendBookingCreated(ctx context.Context, order *domain.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *MockEmailService) SendBookingConfirmed(ctx context.Context, order *domain.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *MockEmailService) SendBookingCancelled(ctx context.Context, order *domain.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *MockEmailService) SendBookingReminder(ctx context.Context, order *domain.Order) error {
	return m.Called(ctx, order).Error(0)
}

type MockPushService struct{ mock.Mock }

func (m *MockPushService) NotifyAdmins(ctx context.Context, title, body string, data map[string]string) error {
	return m.Called(ctx, title, body, data).Error(0)
}

var orderCols = []string{
	"id", "tool_id", "customer_id", "start_date", "end_date", "status", "payment_status", "total_price_cents", "created_on", "updated_on",
	"c_id", "c_name", "c_email", "c_phone", "c_created_on", "tool_name", "price_per_day_cents",
}

type runnerFixture struct {
	runner *JobRunner
	sql    sqlmock.Sqlmock
	email  *MockEmailService
	push   *MockPushService
}

// newRunner pins "now" to 2025-06-10 23:30 UTC, which is already 2025-06-11 in Warsaw.
func newRunner(t *testing.T, timezone string) *runnerFixture {
	t.Helper()
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{}
	cfg.Booking.Timezone = timezone

	f := &runnerFixture{sql: sqlMock, email: new(MockEmailService), push: new(MockPushService)}
	f.runner = NewJobRunner(db, postgres.NewStore(db), &Services{Email: f.email, Push: f.push}, cfg,
		clock.NewFixed(time.Date(2025, time.June, 10, 23, 30, 0, 0, time.UTC)))
	return f
}

func orderRow(rows *sqlmock.Rows, id int, start, end, status string) *sqlmock.Rows {
	now := time.Now()
	return rows.AddRow(id, 2, 5, start, end, status, "unpaid", 3000, now, now,
		5, "Ivan", "ivan@example.com", "", now, "Drill", 1000)
}

func TestExpireStalePendingBookings(t *testing.T) {
	f := newRunner(t, "UTC")

	f.sql.ExpectQuery(`UPDATE bookings\s+SET status = 'cancelled'`).
		WithArgs("2025-06-10").
		WillReturnRows(sqlmock.NewRows([]string{"id", "tool_id", "customer_id", "start_date"}).
			AddRow(7, 2, 5, "2025-06-09"))
	f.sql.ExpectQuery(`WHERE b.id = \$1`).
		WithArgs(int32(7)).
		WillReturnRows(orderRow(sqlmock.NewRows(orderCols), 7, "2025-06-09", "2025-06-11", "cancelled"))

	f.email.On("SendBookingCancelled", mock.Anything, mock.MatchedBy(func(o *domain.Order) bool {
		return o.ID == 7 && o.Status == domain.BookingStatusCancelled
	})).Return(nil)
	f.push.On("NotifyAdmins", mock.Anything, "Bookings expired", mock.Anything, map[string]string{"count": "1"}).Return(nil)

	f.runner.ExpireStalePendingBookings()

	assert.NoError(t, f.sql.ExpectationsWereMet())
	f.email.AssertExpectations(t)
	f.push.AssertExpectations(t)
}

func TestExpireStalePendingBookings_UsesBusinessTimezone(t *testing.T) {
	f := newRunner(t, "Europe/Warsaw")

	f.sql.ExpectQuery(`UPDATE bookings`).
		WithArgs("2025-06-11").
		WillReturnRows(sqlmock.NewRows([]string{"id", "tool_id", "customer_id", "start_date"}))

	expired, err := f.runner.expireStalePendingBookings(context.Background())
	require.NoError(t, err)
	assert.Empty(t, expired)
	assert.NoError(t, f.sql.ExpectationsWereMet())
}

func TestExpireStalePendingBookings_QueryFails(t *testing.T) {
	f := newRunner(t, "UTC")
	f.sql.ExpectQuery(`UPDATE bookings`).WillReturnError(sql.ErrConnDone)

	f.runner.ExpireStalePendingBookings()

	f.email.AssertNotCalled(t, "SendBookingCancelled", mock.Anything, mock.Anything)
	f.push.AssertNotCalled(t, "NotifyAdmins", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSendBookingReminders(t *testing.T) {
	f := newRunner(t, "UTC")

	rows := sqlmock.NewRows(orderCols)
	orderRow(rows, 1, "2025-06-11", "2025-06-12", "confirmed")
	orderRow(rows, 2, "2025-06-11", "2025-06-11", "confirmed")
	f.sql.ExpectQuery(`WHERE b.start_date = \$1 AND b.status = \$2`).
		WithArgs("2025-06-11", "confirmed").
		WillReturnRows(rows)

	f.email.On("SendBookingReminder", mock.Anything, mock.MatchedBy(func(o *domain.Order) bool { return o.ID == 1 })).Return(nil)
	f.email.On("SendBookingReminder", mock.Anything, mock.MatchedBy(func(o *domain.Order) bool { return o.ID == 2 })).
		Return(errors.New("sendgrid: 500"))

	sent, failed, err := f.runner.sendBookingReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.Equal(t, 1, failed)
	assert.NoError(t, f.sql.ExpectationsWereMet())
}

func TestRunWithRecovery(t *testing.T) {
	f := newRunner(t, "UTC")
	ran := false
	assert.NotPanics(t, func() {
		f.runner.runWithRecovery("Exploding", func() {
			ran = true
			panic("boom")
		})
	})
	assert.True(t, ran)
}
