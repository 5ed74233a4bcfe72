package service

import (
	"context"
	"time"

	"toolrental-backend/internal/availability"
	"toolrental-backend/internal/domain"
)

type ToolService interface {
	ListTools(ctx context.Context, filter domain.ToolFilter) ([]domain.Tool, int32, error)
	GetTool(ctx context.Context, id int32) (*domain.Tool, error)
	ListCategories(ctx context.Context) ([]string, error)
	CreateTool(ctx context.Context, tool *domain.Tool) error
	UpdateTool(ctx context.Context, id int32, patch domain.ToolPatch) (*domain.Tool, error)
	DeleteTool(ctx context.Context, id int32) error
	SetToolAvailability(ctx context.Context, id int32, available bool) (*domain.Tool, error)
}

// AvailabilityResult answers "can this tool be booked for these days, and for how much".
type AvailabilityResult struct {
	Available        bool          `json:"available"`
	Days             int           `json:"days"`
	TotalPriceCents  int64         `json:"totalPrice"`
	Reason           string        `json:"reason,omitempty"`
	ConflictingDates []domain.Date `json:"conflictingDates,omitempty"`
}

// Reasons reported by CheckAvailability.
const (
	ReasonToolUnavailable  = "tool_unavailable"
	ReasonStartsInPast     = "starts_in_past"
	ReasonDatesUnavailable = "dates_unavailable"
)

type CreateBookingRequest struct {
	ToolID     int32
	CustomerID int32
	Range      domain.DateRange
	// ExpectedTotalCents is the price the client showed the customer. Nil skips the check.
	ExpectedTotalCents *int64
}

type BookingService interface {
	CheckAvailability(ctx context.Context, toolID int32, r domain.DateRange) (*AvailabilityResult, error)
	GetUnavailableDates(ctx context.Context, toolID int32) ([]domain.Date, error)
	GetCalendar(ctx context.Context, toolID int32, year int, month time.Month) ([]availability.CalendarDay, error)
	CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error)
	ConfirmBooking(ctx context.Context, id int32) (*domain.Booking, error)
	CancelBooking(ctx context.Context, id int32) (*domain.Booking, error)
	GetBooking(ctx context.Context, id int32) (*domain.Booking, error)
	ListBookingsForTool(ctx context.Context, toolID int32) ([]domain.Booking, error)
	ListBookingsForCustomer(ctx context.Context, customerID int32) ([]domain.Booking, error)
}

type CustomerService interface {
	RegisterCustomer(ctx context.Context, customer *domain.Customer) error
	GetCustomer(ctx context.Context, id int32) (*domain.Customer, error)
}

type AdminService interface {
	ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, int32, error)
	GetOrder(ctx context.Context, id int32) (*domain.Order, error)
	UpdatePaymentStatus(ctx context.Context, id int32, status domain.PaymentStatus) (*domain.Order, error)
	DashboardStats(ctx context.Context) (*domain.DashboardStats, error)
}

type AuthService interface {
	// Login returns a signed access token and its expiry.
	Login(ctx context.Context, email, password string) (string, time.Time, *domain.Admin, error)
	Me(ctx context.Context, email string) (*domain.Admin, error)
}

type EmailService interface {
	SendBookingCreated(ctx context.Context, order *domain.Order) error
	SendBookingConfirmed(ctx context.Context, order *domain.Order) error
	SendBookingCancelled(ctx context.Context, order *domain.Order) error
	SendBookingReminder(ctx context.Context, order *domain.Order) error
}

type PushService interface {
	NotifyAdmins(ctx context.Context, title, body string, data map[string]string) error
}
