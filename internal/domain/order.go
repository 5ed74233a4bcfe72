package domain

import "strings"

// Order is the back-office view of a booking, joined with its customer and tool.
type Order struct {
	Booking
	Customer         Customer `json:"customer"`
	ToolName         string   `json:"toolName"`
	PricePerDayCents int64    `json:"pricePerDay"`
	TotalDays        int      `json:"totalDays"`
}

type OrderFilter struct {
	Status   BookingStatus
	Search   string
	Page     int32
	PageSize int32
}

func (f *OrderFilter) Normalize(defaultPageSize int32) {
	f.Search = strings.TrimSpace(f.Search)
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = defaultPageSize
	}
	if f.PageSize > 100 {
		f.PageSize = 100
	}
}

type DashboardStats struct {
	RevenueCents    int64 `json:"revenue"`
	Bookings        int64 `json:"bookings"`
	PendingBookings int64 `json:"pendingBookings"`
	Customers       int64 `json:"customers"`
	Tools           int64 `json:"tools"`
}
