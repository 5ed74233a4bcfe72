package domain

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
)

type Customer struct {
	ID        int32     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedOn time.Time `json:"createdOn"`
}

func (c *Customer) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("customer name is required: %w", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(c.Email); err != nil {
		return fmt.Errorf("invalid customer email %q: %w", c.Email, ErrInvalidInput)
	}
	return nil
}

// Admin is a back-office operator. Admin accounts come from configuration.
type Admin struct {
	ID    int32  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}
