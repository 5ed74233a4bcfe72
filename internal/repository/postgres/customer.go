package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"toolrental-backend/internal/domain"
	"toolrental-backend/internal/repository"
)

type customerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) repository.CustomerRepository {
	return &customerRepository{db: db}
}

// Create stores the customer with a lower-cased email. A taken email yields
// domain.ErrCustomerExists.
func (r *customerRepository) Create(ctx context.Context, c *domain.Customer) error {
	query := `INSERT INTO customers (name, email, phone, created_on) VALUES ($1, $2, $3, $4) RETURNING id`
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	c.CreatedOn = time.Now()
	err := r.db.QueryRowContext(ctx, query, c.Name, c.Email, c.Phone, c.CreatedOn).Scan(&c.ID)
	if err != nil {
		if pqCode(err) == pqUniqueViolation {
			return fmt.Errorf("%s: %w", c.Email, domain.ErrCustomerExists)
		}
		return err
	}
	return nil
}

func (r *customerRepository) GetByID(ctx context.Context, id int32) (*domain.Customer, error) {
	c := &domain.Customer{}
	query := `SELECT id, name, email, COALESCE(phone, ''), created_on FROM customers WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedOn)
	if err != nil {
		return nil, notFound(err, domain.ErrCustomerNotFound)
	}
	return c, nil
}

func (r *customerRepository) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	c := &domain.Customer{}
	query := `SELECT id, name, email, COALESCE(phone, ''), created_on FROM customers WHERE email = $1`
	err := r.db.QueryRowContext(ctx, query, strings.ToLower(strings.TrimSpace(email))).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedOn)
	if err != nil {
		return nil, notFound(err, domain.ErrCustomerNotFound)
	}
	return c, nil
}
