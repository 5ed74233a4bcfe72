package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"toolrental-backend/internal/availability"
	"toolrental-backend/internal/clock"
	"toolrental-backend/internal/domain"
	"toolrental-backend/internal/logger"
	"toolrental-backend/internal/repository"
)

type bookingService struct {
	bookingRepo  repository.BookingRepository
	toolRepo     repository.ToolRepository
	customerRepo repository.CustomerRepository
	emailSvc     EmailService
	pushSvc      PushService
	clock        clock.Clock
	loc          *time.Location
	maxDays      int
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	toolRepo repository.ToolRepository,
	customerRepo repository.CustomerRepository,
	emailSvc EmailService,
	pushSvc PushService,
	clk clock.Clock,
	loc *time.Location,
	maxDays int,
) BookingService {
	return &bookingService{
		bookingRepo:  bookingRepo,
		toolRepo:     toolRepo,
		customerRepo: customerRepo,
		emailSvc:     emailSvc,
		pushSvc:      pushSvc,
		clock:        clk,
		loc:          loc,
		maxDays:      maxDays,
	}
}

func (s *bookingService) today() domain.Date {
	return clock.Today(s.clock, s.loc)
}

// toolBookings fetches the bookings of a tool. A failed fetch never reads as "free".
func (s *bookingService) toolBookings(ctx context.Context, toolID int32) ([]domain.Booking, error) {
	bookings, err := s.bookingRepo.ListByTool(ctx, toolID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load tool bookings", "tool_id", toolID, "error", err)
		return nil, fmt.Errorf("%w: tool %d: %v", domain.ErrAvailabilityUnknown, toolID, err)
	}
	return bookings, nil
}

func (s *bookingService) CheckAvailability(ctx context.Context, toolID int32, r domain.DateRange) (*AvailabilityResult, error) {
	if err := r.ValidateLength(s.maxDays); err != nil {
		return nil, err
	}
	tool, err := s.toolRepo.GetByID(ctx, toolID)
	if err != nil {
		return nil, err
	}
	rental, err := availability.ComputeRental(r, tool.PricePerDayCents)
	if err != nil {
		return nil, err
	}
	bookings, err := s.toolBookings(ctx, toolID)
	if err != nil {
		return nil, err
	}

	result := &AvailabilityResult{
		Days:            rental.Days,
		TotalPriceCents: rental.TotalPriceCents,
	}
	today := s.today()
	switch {
	case !tool.Available:
		result.Reason = ReasonToolUnavailable
	case r.Start.Before(today):
		result.Reason = ReasonStartsInPast
	case !availability.IsRangeAvailable(r, bookings, today):
		result.Reason = ReasonDatesUnavailable
		booked := availability.UnavailableDates(bookings)
		for _, d := range r.Dates() {
			if booked.Contains(d) {
				result.ConflictingDates = append(result.ConflictingDates, d)
			}
		}
	default:
		result.Available = true
	}
	return result, nil
}

func (s *bookingService) GetUnavailableDates(ctx context.Context, toolID int32) ([]domain.Date, error) {
	if _, err := s.toolRepo.GetByID(ctx, toolID); err != nil {
		return nil, err
	}
	bookings, err := s.toolBookings(ctx, toolID)
	if err != nil {
		return nil, err
	}
	return availability.UnavailableDates(bookings).Sorted(), nil
}

func (s *bookingService) GetCalendar(ctx context.Context, toolID int32, year int, month time.Month) ([]availability.CalendarDay, error) {
	if month < time.January || month > time.December || year < 1 {
		return nil, fmt.Errorf("invalid month %d-%d: %w", year, month, domain.ErrInvalidInput)
	}
	if _, err := s.toolRepo.GetByID(ctx, toolID); err != nil {
		return nil, err
	}
	bookings, err := s.toolBookings(ctx, toolID)
	if err != nil {
		return nil, err
	}
	return availability.MonthCalendar(year, month, bookings, s.today()), nil
}

func (s *bookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	logger.EnterMethod("bookingService.CreateBooking", "tool_id", req.ToolID, "customer_id", req.CustomerID, "range", req.Range.String())

	if err := req.Range.ValidateLength(s.maxDays); err != nil {
		return nil, err
	}
	tool, err := s.toolRepo.GetByID(ctx, req.ToolID)
	if err != nil {
		return nil, err
	}
	if !tool.Available {
		return nil, fmt.Errorf("tool %d: %w", tool.ID, domain.ErrToolUnavailable)
	}
	customer, err := s.customerRepo.GetByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}

	bookings, err := s.toolBookings(ctx, req.ToolID)
	if err != nil {
		return nil, err
	}
	today := s.today()
	if req.Range.Start.Before(today) {
		return nil, fmt.Errorf("start date %s is before today %s: %w", req.Range.Start, today, domain.ErrDatesUnavailable)
	}
	if conflicts := availability.Conflicts(req.Range, bookings); len(conflicts) > 0 {
		return nil, fmt.Errorf("tool %d %s overlaps booking %d: %w", tool.ID, req.Range, conflicts[0].ID, domain.ErrDatesUnavailable)
	}

	rental, err := availability.ComputeRental(req.Range, tool.PricePerDayCents)
	if err != nil {
		return nil, err
	}
	if req.ExpectedTotalCents != nil && *req.ExpectedTotalCents != rental.TotalPriceCents {
		return nil, fmt.Errorf("expected %d, actual %d: %w", *req.ExpectedTotalCents, rental.TotalPriceCents, domain.ErrPriceMismatch)
	}

	booking := &domain.Booking{
		ToolID:          tool.ID,
		CustomerID:      customer.ID,
		StartDate:       req.Range.Start,
		EndDate:         req.Range.End,
		Status:          domain.BookingStatusPending,
		PaymentStatus:   domain.PaymentStatusUnpaid,
		TotalPriceCents: rental.TotalPriceCents,
	}
	// The store rechecks overlap atomically; a booking made since our read fails here.
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		if !errors.Is(err, domain.ErrBookingConflict) {
			logger.ExitMethodWithError("bookingService.CreateBooking", err)
		}
		return nil, err
	}

	logger.InfoContext(ctx, "Booking created", "booking_id", booking.ID, "tool_id", tool.ID, "customer_id", customer.ID, "total_cents", booking.TotalPriceCents)

	order := &domain.Order{
		Booking:          *booking,
		Customer:         *customer,
		ToolName:         tool.Name,
		PricePerDayCents: tool.PricePerDayCents,
		TotalDays:        rental.Days,
	}
	s.notifyCustomer(ctx, "created", order, s.emailSvc.SendBookingCreated)
	s.notifyAdmins(ctx, order)

	logger.ExitMethod("bookingService.CreateBooking", "booking_id", booking.ID)
	return booking, nil
}

func (s *bookingService) ConfirmBooking(ctx context.Context, id int32) (*domain.Booking, error) {
	return s.transition(ctx, id, "confirmed", (*domain.Booking).Confirm, s.emailSvc.SendBookingConfirmed)
}

func (s *bookingService) CancelBooking(ctx context.Context, id int32) (*domain.Booking, error) {
	return s.transition(ctx, id, "cancelled", (*domain.Booking).Cancel, s.emailSvc.SendBookingCancelled)
}

func (s *bookingService) transition(
	ctx context.Context,
	id int32,
	event string,
	apply func(*domain.Booking) error,
	notify func(context.Context, *domain.Order) error,
) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := apply(booking); err != nil {
		return nil, err
	}
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "Booking "+event, "booking_id", booking.ID, "tool_id", booking.ToolID)

	order, err := s.bookingRepo.GetOrder(ctx, id)
	if err != nil {
		logger.WarnContext(ctx, "Booking updated but order lookup for notification failed", "booking_id", id, "error", err)
		return booking, nil
	}
	s.notifyCustomer(ctx, event, order, notify)
	return booking, nil
}

func (s *bookingService) GetBooking(ctx context.Context, id int32) (*domain.Booking, error) {
	return s.bookingRepo.GetByID(ctx, id)
}

func (s *bookingService) ListBookingsForTool(ctx context.Context, toolID int32) ([]domain.Booking, error) {
	if _, err := s.toolRepo.GetByID(ctx, toolID); err != nil {
		return nil, err
	}
	return s.bookingRepo.ListByTool(ctx, toolID)
}

func (s *bookingService) ListBookingsForCustomer(ctx context.Context, customerID int32) ([]domain.Booking, error) {
	if _, err := s.customerRepo.GetByID(ctx, customerID); err != nil {
		return nil, err
	}
	return s.bookingRepo.ListByCustomer(ctx, customerID)
}

// notifyCustomer is best effort: the booking is already stored.
func (s *bookingService) notifyCustomer(ctx context.Context, event string, order *domain.Order, send func(context.Context, *domain.Order) error) {
	if err := send(ctx, order); err != nil {
		logger.WarnContext(ctx, "Failed to email customer", "event", event, "booking_id", order.ID, "error", err)
	}
}

func (s *bookingService) notifyAdmins(ctx context.Context, order *domain.Order) {
	title := "New booking"
	body := fmt.Sprintf("%s booked %s for %s (%d days)", order.Customer.Name, order.ToolName, order.Range(), order.TotalDays)
	data := map[string]string{
		"bookingId": strconv.Itoa(int(order.ID)),
		"toolId":    strconv.Itoa(int(order.ToolID)),
	}
	if err := s.pushSvc.NotifyAdmins(ctx, title, body, data); err != nil {
		logger.WarnContext(ctx, "Failed to push admin notification", "booking_id", order.ID, "error", err)
	}
}
