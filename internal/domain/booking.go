package domain

import (
	"fmt"
	"time"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether next is reachable from s. Cancelled is terminal.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case BookingStatusPending:
		return next == BookingStatusConfirmed || next == BookingStatusCancelled
	case BookingStatusConfirmed:
		return next == BookingStatusCancelled
	default:
		return false
	}
}

type PaymentStatus string

const (
	PaymentStatusUnpaid   PaymentStatus = "unpaid"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusUnpaid, PaymentStatusPaid, PaymentStatusRefunded:
		return true
	default:
		return false
	}
}

type Booking struct {
	ID              int32         `json:"id"`
	ToolID          int32         `json:"toolId"`
	CustomerID      int32         `json:"customerId"`
	StartDate       Date          `json:"startDate"`
	EndDate         Date          `json:"endDate"`
	Status          BookingStatus `json:"status"`
	PaymentStatus   PaymentStatus `json:"paymentStatus"`
	TotalPriceCents int64         `json:"totalPrice"`
	CreatedOn       time.Time     `json:"createdOn"`
	UpdatedOn       time.Time     `json:"updatedOn"`
}

func (b *Booking) Range() DateRange {
	return DateRange{Start: b.StartDate, End: b.EndDate}
}

// BlocksDates is true for every booking that still holds its dates.
func (b *Booking) BlocksDates() bool {
	return b.Status != BookingStatusCancelled
}

func (b *Booking) Confirm() error {
	return b.transition(BookingStatusConfirmed)
}

func (b *Booking) Cancel() error {
	return b.transition(BookingStatusCancelled)
}

func (b *Booking) transition(next BookingStatus) error {
	if !b.Status.CanTransitionTo(next) {
		return fmt.Errorf("%s -> %s: %w", b.Status, next, ErrInvalidTransition)
	}
	b.Status = next
	return nil
}

// SetPaymentStatus allows any move between unpaid and paid; refunded requires a prior payment
// and is terminal.
func (b *Booking) SetPaymentStatus(next PaymentStatus) error {
	if !next.IsValid() {
		return fmt.Errorf("unknown payment status %q: %w", next, ErrInvalidInput)
	}
	if b.PaymentStatus == next {
		return nil
	}
	switch {
	case b.PaymentStatus == PaymentStatusRefunded:
		return fmt.Errorf("%s -> %s: %w", b.PaymentStatus, next, ErrInvalidPaymentTransition)
	case next == PaymentStatusRefunded && b.PaymentStatus != PaymentStatusPaid:
		return fmt.Errorf("%s -> %s: %w", b.PaymentStatus, next, ErrInvalidPaymentTransition)
	}
	b.PaymentStatus = next
	return nil
}
