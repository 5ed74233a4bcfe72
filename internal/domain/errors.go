package domain

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidDateRange = errors.New("invalid date range")
	ErrNegativePrice    = errors.New("price cannot be negative")

	ErrToolNotFound    = errors.New("tool not found")
	ErrToolUnavailable = errors.New("tool is not available for rent")

	ErrCustomerNotFound = errors.New("customer not found")
	ErrCustomerExists   = errors.New("customer with this email already exists")

	ErrBookingNotFound          = errors.New("booking not found")
	ErrBookingConflict          = errors.New("booking conflicts with an existing reservation")
	ErrDatesUnavailable         = errors.New("requested dates are not available")
	ErrAvailabilityUnknown      = errors.New("availability unknown")
	ErrInvalidTransition        = errors.New("invalid booking status transition")
	ErrInvalidPaymentTransition = errors.New("invalid payment status transition")
	ErrPriceMismatch            = errors.New("price has changed, please review the booking")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthorized       = errors.New("unauthorized")
)
