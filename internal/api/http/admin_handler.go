package http

import (
	"net/http"

	"toolrental-backend/internal/domain"
	"toolrental-backend/internal/service"
)

type AdminHandler struct {
	adminSvc service.AdminService
}

func NewAdminHandler(adminSvc service.AdminService) *AdminHandler {
	return &AdminHandler{adminSvc: adminSvc}
}

type paymentStatusRequest struct {
	PaymentStatus domain.PaymentStatus `json:"paymentStatus" validate:"required,oneof=unpaid paid refunded"`
}

func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.OrderFilter{
		Status: domain.BookingStatus(q.Get("status")),
		Search: q.Get("search"),
	}
	if filter.Status == "all" {
		filter.Status = ""
	}
	var err error
	if filter.Page, err = queryInt32(r, "page"); err != nil {
		respondError(w, r, err)
		return
	}
	if filter.PageSize, err = queryInt32(r, "pageSize"); err != nil {
		respondError(w, r, err)
		return
	}

	orders, total, err := h.adminSvc.ListOrders(r.Context(), filter)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondList(w, r, mapOrders(orders), total)
}

func (h *AdminHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	order, err := h.adminSvc.GetOrder(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, mapOrder(order))
}

func (h *AdminHandler) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req paymentStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	order, err := h.adminSvc.UpdatePaymentStatus(r.Context(), id, req.PaymentStatus)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, mapOrder(order))
}

func (h *AdminHandler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.adminSvc.DashboardStats(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, stats)
}
