package http

import (
	"context"
	"net/http"

	"toolrental-backend/internal/domain"
	"toolrental-backend/internal/service"
)

type BookingHandler struct {
	bookingSvc service.BookingService
}

func NewBookingHandler(bookingSvc service.BookingService) *BookingHandler {
	return &BookingHandler{bookingSvc: bookingSvc}
}

type dateRangeRequest struct {
	StartDate string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"endDate" validate:"required,datetime=2006-01-02"`
}

type checkAvailabilityRequest struct {
	ToolID int32 `json:"toolId" validate:"required,gt=0"`
	dateRangeRequest
}

type createBookingRequest struct {
	ToolID     int32 `json:"toolId" validate:"required,gt=0"`
	CustomerID int32 `json:"customerId" validate:"required,gt=0"`
	dateRangeRequest
	// TotalPriceCents is the total the client displayed; the server recomputes it.
	TotalPriceCents *int64 `json:"totalPrice" validate:"omitempty,gte=0"`
}

func (h *BookingHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	var req checkAvailabilityRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	dates, err := domain.ParseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		respondError(w, r, err)
		return
	}
	result, err := h.bookingSvc.CheckAvailability(r.Context(), req.ToolID, dates)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, result)
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	dates, err := domain.ParseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		respondError(w, r, err)
		return
	}
	booking, err := h.bookingSvc.CreateBooking(r.Context(), service.CreateBookingRequest{
		ToolID:             req.ToolID,
		CustomerID:         req.CustomerID,
		Range:              dates,
		ExpectedTotalCents: req.TotalPriceCents,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, booking)
}

func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	booking, err := h.bookingSvc.GetBooking(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, booking)
}

func (h *BookingHandler) ListForTool(w http.ResponseWriter, r *http.Request) {
	toolID, err := pathID(r, "toolId")
	if err != nil {
		respondError(w, r, err)
		return
	}
	bookings, err := h.bookingSvc.ListBookingsForTool(r.Context(), toolID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondList(w, r, bookings, int32(len(bookings)))
}

func (h *BookingHandler) ListForCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := pathID(r, "customerId")
	if err != nil {
		respondError(w, r, err)
		return
	}
	bookings, err := h.bookingSvc.ListBookingsForCustomer(r.Context(), customerID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondList(w, r, bookings, int32(len(bookings)))
}

func (h *BookingHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.bookingSvc.ConfirmBooking)
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.bookingSvc.CancelBooking)
}

func (h *BookingHandler) transition(w http.ResponseWriter, r *http.Request, apply func(ctx context.Context, id int32) (*domain.Booking, error)) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	booking, err := apply(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, booking)
}
