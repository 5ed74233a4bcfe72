package repository

import (
	"context"

	"toolrental-backend/internal/domain"
)

type ToolRepository interface {
	Create(ctx context.Context, tool *domain.Tool) error
	GetByID(ctx context.Context, id int32) (*domain.Tool, error)
	Update(ctx context.Context, tool *domain.Tool) error
	Delete(ctx context.Context, id int32) error
	// Search returns one page of live tools and the total number of matches.
	Search(ctx context.Context, filter domain.ToolFilter) ([]domain.Tool, int32, error)
	ListCategories(ctx context.Context) ([]string, error)
}

type BookingRepository interface {
	// Create stores a pending booking. Overlap with a non-cancelled booking of the same tool
	// fails with domain.ErrBookingConflict.
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int32) (*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
	// ListByTool returns every booking of the tool, cancelled ones included.
	ListByTool(ctx context.Context, toolID int32) ([]domain.Booking, error)
	ListByCustomer(ctx context.Context, customerID int32) ([]domain.Booking, error)

	ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, int32, error)
	GetOrder(ctx context.Context, id int32) (*domain.Order, error)
	ListOrdersStartingOn(ctx context.Context, day domain.Date, status domain.BookingStatus) ([]domain.Order, error)
}

type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id int32) (*domain.Customer, error)
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
}

type StatsRepository interface {
	DashboardStats(ctx context.Context) (*domain.DashboardStats, error)
}
