package service

import (
	"context"
	"strings"

	"toolrental-backend/internal/domain"
	"toolrental-backend/internal/logger"
	"toolrental-backend/internal/repository"
)

type customerService struct {
	customerRepo repository.CustomerRepository
}

func NewCustomerService(customerRepo repository.CustomerRepository) CustomerService {
	return &customerService{customerRepo: customerRepo}
}

// RegisterCustomer stores a new customer. A second registration with the same email
// fails with domain.ErrCustomerExists.
func (s *customerService) RegisterCustomer(ctx context.Context, c *domain.Customer) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	c.Phone = strings.TrimSpace(c.Phone)
	if err := c.Validate(); err != nil {
		return err
	}
	if err := s.customerRepo.Create(ctx, c); err != nil {
		return err
	}
	logger.InfoContext(ctx, "Customer registered", "customer_id", c.ID)
	return nil
}

func (s *customerService) GetCustomer(ctx context.Context, id int32) (*domain.Customer, error) {
	return s.customerRepo.GetByID(ctx, id)
}
