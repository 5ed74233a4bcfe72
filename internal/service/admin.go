package service

import (
	"context"
	"fmt"

	"toolrental-backend/internal/domain"
	"toolrental-backend/internal/logger"
	"toolrental-backend/internal/repository"
)

type adminService struct {
	bookingRepo     repository.BookingRepository
	statsRepo       repository.StatsRepository
	defaultPageSize int32
}

func NewAdminService(
	bookingRepo repository.BookingRepository,
	statsRepo repository.StatsRepository,
	defaultPageSize int32,
) AdminService {
	return &adminService{
		bookingRepo:     bookingRepo,
		statsRepo:       statsRepo,
		defaultPageSize: defaultPageSize,
	}
}

func (s *adminService) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, int32, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, 0, fmt.Errorf("unknown booking status %q: %w", filter.Status, domain.ErrInvalidInput)
	}
	filter.Normalize(s.defaultPageSize)
	return s.bookingRepo.ListOrders(ctx, filter)
}

func (s *adminService) GetOrder(ctx context.Context, id int32) (*domain.Order, error) {
	return s.bookingRepo.GetOrder(ctx, id)
}

func (s *adminService) UpdatePaymentStatus(ctx context.Context, id int32, status domain.PaymentStatus) (*domain.Order, error) {
	order, err := s.bookingRepo.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := order.PaymentStatus
	if err := order.SetPaymentStatus(status); err != nil {
		return nil, err
	}
	if previous == order.PaymentStatus {
		return order, nil
	}
	if err := s.bookingRepo.Update(ctx, &order.Booking); err != nil {
		return nil, fmt.Errorf("failed to update payment status: %w", err)
	}
	logger.InfoContext(ctx, "Payment status updated", "booking_id", id, "from", previous, "to", status)
	return order, nil
}

func (s *adminService) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	return s.statsRepo.DashboardStats(ctx)
}
