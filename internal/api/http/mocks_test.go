package http

import (
	"context"
	"time"

	"toolrental-backend/internal/availability"
	"toolrental-backend/internal/domain"
	"toolrental-backend/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockToolService struct{ mock.Mock }

func (m *MockToolService) ListTools(ctx context.Context, filter domain.ToolFilter) ([]domain.Tool, int32, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Tool), args.Get(1).(int32), args.Error(2)
}

func (m *MockToolService) GetTool(ctx context.Context, id int32) (*domain.Tool, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tool), args.Error(1)
}

func (m *MockToolService) ListCategories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockToolService) CreateTool(ctx context.Context, tool *domain.Tool) error {
	args := m.Called(ctx, tool)
	return args.Error(0)
}

func (m *MockToolService) UpdateTool(ctx context.Context, id int32, patch domain.ToolPatch) (*domain.Tool, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tool), args.Error(1)
}

func (m *MockToolService) DeleteTool(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockToolService) SetToolAvailability(ctx context.Context, id int32, available bool) (*domain.Tool, error) {
	args := m.Called(ctx, id, available)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tool), args.Error(1)
}

type MockBookingService struct{ mock.Mock }

func (m *MockBookingService) CheckAvailability(ctx context.Context, toolID int32, r domain.DateRange) (*service.AvailabilityResult, error) {
	args := m.Called(ctx, toolID, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AvailabilityResult), args.Error(1)
}

func (m *MockBookingService) GetUnavailableDates(ctx context.Context, toolID int32) ([]domain.Date, error) {
	args := m.Called(ctx, toolID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Date), args.Error(1)
}

func (m *MockBookingService) GetCalendar(ctx context.Context, toolID int32, year int, month time.Month) ([]availability.CalendarDay, error) {
	args := m.Called(ctx, toolID, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]availability.CalendarDay), args.Error(1)
}

func (m *MockBookingService) CreateBooking(ctx context.Context, req service.CreateBookingRequest) (*domain.Booking, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingService) ConfirmBooking(ctx context.Context, id int32) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingService) CancelBooking(ctx context.Context, id int32) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingService) GetBooking(ctx context.Context, id int32) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingService) ListBookingsForTool(ctx context.Context, toolID int32) ([]domain.Booking, error) {
	args := m.Called(ctx, toolID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingService) ListBookingsForCustomer(ctx context.Context, customerID int32) ([]domain.Booking, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type MockCustomerService struct{ mock.Mock }

func (m *MockCustomerService) RegisterCustomer(ctx context.Context, customer *domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerService) GetCustomer(ctx context.Context, id int32) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

type MockAdminService struct{ mock.Mock }

func (m *MockAdminService) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, int32, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Order), args.Get(1).(int32), args.Error(2)
}

func (m *MockAdminService) GetOrder(ctx context.Context, id int32) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockAdminService) UpdatePaymentStatus(ctx context.Context, id int32, status domain.PaymentStatus) (*domain.Order, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockAdminService) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardStats), args.Error(1)
}

type MockAuthService struct{ mock.Mock }

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, time.Time, *domain.Admin, error) {
	args := m.Called(ctx, email, password)
	var admin *domain.Admin
	if args.Get(2) != nil {
		admin = args.Get(2).(*domain.Admin)
	}
	return args.String(0), args.Get(1).(time.Time), admin, args.Error(3)
}

func (m *MockAuthService) Me(ctx context.Context, email string) (*domain.Admin, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Admin), args.Error(1)
}

type fakePinger struct{ err error }

func (f fakePinger) PingContext(ctx context.Context) error { return f.err }
