package http

import (
	"net/http"
	"strings"

	"toolrental-backend/internal/domain"
	"toolrental-backend/internal/service"
)

type CustomerHandler struct {
	customerSvc service.CustomerService
}

func NewCustomerHandler(customerSvc service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerSvc: customerSvc}
}

type createCustomerRequest struct {
	Name  string `json:"name" validate:"required,max=255"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"max=32"`
}

func (h *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req createCustomerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	customer := &domain.Customer{
		Name:  req.Name,
		Email: req.Email,
		Phone: strings.TrimSpace(req.Phone),
	}
	if err := h.customerSvc.RegisterCustomer(r.Context(), customer); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, customer)
}
