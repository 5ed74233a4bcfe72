package http

import (
	"time"

	"toolrental-backend/internal/domain"
)

type orderItem struct {
	ToolID           int32  `json:"toolId"`
	Name             string `json:"name"`
	Quantity         int    `json:"quantity"`
	PricePerDayCents int64  `json:"pricePerDay"`
}

// orderResponse is the back-office view of a booking. Items and amount mirror the
// booking so order tables can render without knowing about bookings.
type orderResponse struct {
	ID            int32                `json:"id"`
	Customer      domain.Customer      `json:"customer"`
	Date          domain.Date          `json:"date"`
	StartDate     domain.Date          `json:"startDate"`
	EndDate       domain.Date          `json:"endDate"`
	TotalDays     int                  `json:"totalDays"`
	Items         []orderItem          `json:"items"`
	AmountCents   int64                `json:"amount"`
	Status        domain.BookingStatus `json:"status"`
	PaymentStatus domain.PaymentStatus `json:"paymentStatus"`
	CreatedOn     time.Time            `json:"createdOn"`
	UpdatedOn     time.Time            `json:"updatedOn"`
}

func mapOrder(o *domain.Order) orderResponse {
	return orderResponse{
		ID:        o.ID,
		Customer:  o.Customer,
		Date:      domain.DateOf(o.CreatedOn),
		StartDate: o.StartDate,
		EndDate:   o.EndDate,
		TotalDays: o.TotalDays,
		Items: []orderItem{{
			ToolID:           o.ToolID,
			Name:             o.ToolName,
			Quantity:         1,
			PricePerDayCents: o.PricePerDayCents,
		}},
		AmountCents:   o.TotalPriceCents,
		Status:        o.Status,
		PaymentStatus: o.PaymentStatus,
		CreatedOn:     o.CreatedOn,
		UpdatedOn:     o.UpdatedOn,
	}
}

func mapOrders(orders []domain.Order) []orderResponse {
	out := make([]orderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, mapOrder(&orders[i]))
	}
	return out
}
