package jobs

import (
	"context"
	"fmt"
	"strconv"

	"toolrental-backend/internal/domain"
	"toolrental-backend/internal/logger"
)

// ExpireStalePendingBookings cancels pending bookings that were never confirmed before
// their start date, which frees their dates.
func (jr *JobRunner) ExpireStalePendingBookings() {
	jr.runWithRecovery("ExpireStalePendingBookings", func() {
		ctx := context.Background()
		expired, err := jr.expireStalePendingBookings(ctx)
		if err != nil {
			logger.Error("Failed to expire pending bookings", "error", err)
			return
		}
		logger.Info("Expired stale pending bookings", "count", len(expired))
		jr.notifyExpired(ctx, expired)
	})
}

type expiredBooking struct {
	ID         int32
	ToolID     int32
	CustomerID int32
	StartDate  domain.Date
}

func (jr *JobRunner) expireStalePendingBookings(ctx context.Context) ([]expiredBooking, error) {
	query := `
		UPDATE bookings
		SET status = 'cancelled',
		    updated_on = NOW()
		WHERE status = 'pending'
		  AND start_date < $1
		RETURNING id, tool_id, customer_id, start_date
	`

	rows, err := jr.db.QueryContext(ctx, query, jr.today())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expired []expiredBooking
	for rows.Next() {
		var b expiredBooking
		if err := rows.Scan(&b.ID, &b.ToolID, &b.CustomerID, &b.StartDate); err != nil {
			return expired, fmt.Errorf("scan expired booking: %w", err)
		}
		expired = append(expired, b)
	}
	return expired, rows.Err()
}

func (jr *JobRunner) notifyExpired(ctx context.Context, expired []expiredBooking) {
	for _, b := range expired {
		logger.Debug("Expired pending booking",
			"booking_id", b.ID,
			"tool_id", b.ToolID,
			"customer_id", b.CustomerID,
			"start_date", b.StartDate.String())

		order, err := jr.store.BookingRepository.GetOrder(ctx, b.ID)
		if err != nil {
			logger.Error("Failed to load expired booking", "booking_id", b.ID, "error", err)
			continue
		}
		if err := jr.services.Email.SendBookingCancelled(ctx, order); err != nil {
			logger.Error("Failed to send expiry email", "booking_id", b.ID, "error", err)
		}
	}

	if len(expired) == 0 {
		return
	}
	body := fmt.Sprintf("%d pending booking(s) expired without confirmation", len(expired))
	data := map[string]string{"count": strconv.Itoa(len(expired))}
	if err := jr.services.Push.NotifyAdmins(ctx, "Bookings expired", body, data); err != nil {
		logger.Warn("Failed to notify admins about expired bookings", "error", err)
	}
}

// SendBookingReminders emails customers whose confirmed booking starts tomorrow.
func (jr *JobRunner) SendBookingReminders() {
	jr.runWithRecovery("SendBookingReminders", func() {
		sent, failed, err := jr.sendBookingReminders(context.Background())
		if err != nil {
			logger.Error("Failed to query upcoming bookings", "error", err)
			return
		}
		logger.Info("Sent booking reminders", "sent", sent, "failed", failed)
	})
}

func (jr *JobRunner) sendBookingReminders(ctx context.Context) (sent, failed int, err error) {
	tomorrow := jr.today().AddDays(1)
	orders, err := jr.store.BookingRepository.ListOrdersStartingOn(ctx, tomorrow, domain.BookingStatusConfirmed)
	if err != nil {
		return 0, 0, err
	}

	for i := range orders {
		order := &orders[i]
		if err := jr.services.Email.SendBookingReminder(ctx, order); err != nil {
			logger.Error("Failed to send booking reminder",
				"booking_id", order.ID,
				"customer_id", order.CustomerID,
				"error", err)
			failed++
			continue
		}
		sent++
	}
	return sent, failed, nil
}
