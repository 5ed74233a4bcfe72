package http

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"toolrental-backend/internal/domain"
	"toolrental-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBookingHandler_CreateBooking(t *testing.T) {
	dates := domain.DateRange{
		Start: domain.NewDate(2025, time.June, 1),
		End:   domain.NewDate(2025, time.June, 3),
	}

	t.Run("Created", func(t *testing.T) {
		s := newTestServer(t, nil)
		total := int64(4500)
		s.bookings.On("CreateBooking", mock.Anything, service.CreateBookingRequest{
			ToolID: 2, CustomerID: 5, Range: dates, ExpectedTotalCents: &total,
		}).Return(&domain.Booking{
			ID: 11, ToolID: 2, CustomerID: 5, StartDate: dates.Start, EndDate: dates.End,
			Status: domain.BookingStatusPending, PaymentStatus: domain.PaymentStatusUnpaid, TotalPriceCents: 4500,
		}, nil)

		rec := s.do(t, http.MethodPost, "/api/v1/bookings", map[string]any{
			"toolId": 2, "customerId": 5, "startDate": "2025-06-01", "endDate": "2025-06-03", "totalPrice": 4500,
		}, "")

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"pending"`)
		assert.Contains(t, rec.Body.String(), `"startDate":"2025-06-01"`)
	})

	t.Run("End before start", func(t *testing.T) {
		s := newTestServer(t, nil)
		rec := s.do(t, http.MethodPost, "/api/v1/bookings", map[string]any{
			"toolId": 2, "customerId": 5, "startDate": "2025-06-03", "endDate": "2025-06-01",
		}, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		s.bookings.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)
	})

	t.Run("Malformed date", func(t *testing.T) {
		s := newTestServer(t, nil)
		rec := s.do(t, http.MethodPost, "/api/v1/bookings", map[string]any{
			"toolId": 2, "customerId": 5, "startDate": "06/01/2025", "endDate": "2025-06-03",
		}, "")
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decodeError(t, rec).Fields, "startDate")
	})

	t.Run("Dates taken", func(t *testing.T) {
		s := newTestServer(t, nil)
		s.bookings.On("CreateBooking", mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("2025-06-02: %w", domain.ErrDatesUnavailable))

		rec := s.do(t, http.MethodPost, "/api/v1/bookings", map[string]any{
			"toolId": 2, "customerId": 5, "startDate": "2025-06-01", "endDate": "2025-06-03",
		}, "")
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "dates_unavailable", decodeError(t, rec).Code)
	})

	t.Run("Lost race at the store", func(t *testing.T) {
		s := newTestServer(t, nil)
		s.bookings.On("CreateBooking", mock.Anything, mock.Anything).Return(nil, domain.ErrBookingConflict)

		rec := s.do(t, http.MethodPost, "/api/v1/bookings", map[string]any{
			"toolId": 2, "customerId": 5, "startDate": "2025-06-01", "endDate": "2025-06-03",
		}, "")
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("Availability unknown", func(t *testing.T) {
		s := newTestServer(t, nil)
		s.bookings.On("CreateBooking", mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("%w: tool 2: connection reset", domain.ErrAvailabilityUnknown))

		rec := s.do(t, http.MethodPost, "/api/v1/bookings", map[string]any{
			"toolId": 2, "customerId": 5, "startDate": "2025-06-01", "endDate": "2025-06-03",
		}, "")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.NotContains(t, rec.Body.String(), "connection reset")
	})

	t.Run("Range too long", func(t *testing.T) {
		s := newTestServer(t, nil)
		long := domain.DateRange{Start: domain.NewDate(2025, time.January, 1), End: domain.NewDate(9999, time.December, 31)}
		s.bookings.On("CreateBooking", mock.Anything, service.CreateBookingRequest{ToolID: 2, CustomerID: 5, Range: long}).
			Return(nil, fmt.Errorf("range %s spans 2912808 days, at most 365 allowed: %w", long, domain.ErrInvalidDateRange))

		rec := s.do(t, http.MethodPost, "/api/v1/bookings", map[string]any{
			"toolId": 2, "customerId": 5, "startDate": "2025-01-01", "endDate": "9999-12-31",
		}, "")
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "invalid_date_range", decodeError(t, rec).Code)
	})
}

func TestBookingHandler_CheckAvailability(t *testing.T) {
	s := newTestServer(t, nil)
	dates := domain.DateRange{Start: domain.NewDate(2025, time.June, 1), End: domain.NewDate(2025, time.June, 1)}
	s.bookings.On("CheckAvailability", mock.Anything, int32(2), dates).Return(&service.AvailabilityResult{
		Available: false, Days: 1, TotalPriceCents: 1500, Reason: service.ReasonDatesUnavailable,
		ConflictingDates: []domain.Date{dates.Start},
	}, nil)

	rec := s.do(t, http.MethodPost, "/api/v1/bookings/check-availability", map[string]any{
		"toolId": 2, "startDate": "2025-06-01", "endDate": "2025-06-01",
	}, "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"available":false,"days":1,"totalPrice":1500,"reason":"dates_unavailable","conflictingDates":["2025-06-01"]}`,
		rec.Body.String())
}

func TestBookingHandler_CheckAvailability_RangeTooLong(t *testing.T) {
	s := newTestServer(t, nil)
	long := domain.DateRange{Start: domain.NewDate(2025, time.January, 1), End: domain.NewDate(9999, time.December, 31)}
	s.bookings.On("CheckAvailability", mock.Anything, int32(2), long).
		Return(nil, fmt.Errorf("at most 365 days: %w", domain.ErrInvalidDateRange))

	rec := s.do(t, http.MethodPost, "/api/v1/bookings/check-availability", map[string]any{
		"toolId": 2, "startDate": "2025-01-01", "endDate": "9999-12-31",
	}, "")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_date_range", decodeError(t, rec).Code)
}

func TestBookingHandler_Lists(t *testing.T) {
	s := newTestServer(t, nil)
	s.bookings.On("ListBookingsForTool", mock.Anything, int32(2)).Return([]domain.Booking{{ID: 1}, {ID: 2}}, nil)
	s.bookings.On("ListBookingsForCustomer", mock.Anything, int32(5)).Return([]domain.Booking(nil), nil)

	rec := s.do(t, http.MethodGet, "/api/v1/bookings/tool/2", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("X-Total-Count"))

	rec = s.do(t, http.MethodGet, "/api/v1/bookings/customer/5", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestBookingHandler_Transitions(t *testing.T) {
	t.Run("Confirm", func(t *testing.T) {
		s := newTestServer(t, nil)
		s.bookings.On("ConfirmBooking", mock.Anything, int32(11)).
			Return(&domain.Booking{ID: 11, Status: domain.BookingStatusConfirmed}, nil)

		rec := s.do(t, http.MethodPatch, "/api/v1/bookings/11/confirm", nil, s.adminToken(t))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"confirmed"`)
	})

	t.Run("Cancel a cancelled booking", func(t *testing.T) {
		s := newTestServer(t, nil)
		s.bookings.On("CancelBooking", mock.Anything, int32(11)).
			Return(nil, fmt.Errorf("cancelled -> cancelled: %w", domain.ErrInvalidTransition))

		rec := s.do(t, http.MethodPatch, "/api/v1/bookings/11/cancel", nil, s.adminToken(t))
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("Anonymous confirm", func(t *testing.T) {
		s := newTestServer(t, nil)
		rec := s.do(t, http.MethodPatch, "/api/v1/bookings/11/confirm", nil, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
