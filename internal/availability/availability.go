// Package availability computes which days a tool is booked and what a rental costs.
// Every function is a pure function of its arguments; callers fetch bookings and pass
// "today" in from their clock.
package availability

import (
	"fmt"
	"math"
	"slices"
	"time"

	"toolrental-backend/internal/domain"
)

// DateSet is a set of calendar days.
type DateSet map[domain.Date]struct{}

func (s DateSet) Contains(d domain.Date) bool {
	_, ok := s[d]
	return ok
}

func (s DateSet) Len() int {
	return len(s)
}

// Sorted returns the days in ascending order.
func (s DateSet) Sorted() []domain.Date {
	dates := make([]domain.Date, 0, len(s))
	for d := range s {
		dates = append(dates, d)
	}
	slices.SortFunc(dates, domain.Date.Compare)
	return dates
}

// UnavailableDates is the union of the inclusive ranges of every booking that is not
// cancelled. Bookings with an invalid range contribute nothing.
func UnavailableDates(bookings []domain.Booking) DateSet {
	set := make(DateSet)
	for i := range bookings {
		b := &bookings[i]
		if !b.BlocksDates() {
			continue
		}
		for _, d := range b.Range().Dates() {
			set[d] = struct{}{}
		}
	}
	return set
}

// Conflicts returns the bookings that hold at least one day of r.
func Conflicts(r domain.DateRange, bookings []domain.Booking) []domain.Booking {
	var conflicts []domain.Booking
	for i := range bookings {
		b := bookings[i]
		if !b.BlocksDates() || b.Range().Validate() != nil {
			continue
		}
		if r.Overlaps(b.Range()) {
			conflicts = append(conflicts, b)
		}
	}
	return conflicts
}

// IsRangeAvailable reports whether r can be booked. Invalid ranges, ranges starting
// before today and ranges touching any non-cancelled booking are all unavailable.
func IsRangeAvailable(r domain.DateRange, bookings []domain.Booking, today domain.Date) bool {
	if r.Validate() != nil {
		return false
	}
	if r.Start.Before(today) {
		return false
	}
	return len(Conflicts(r, bookings)) == 0
}

// Rental is the price of a date range.
type Rental struct {
	Days            int   `json:"days"`
	TotalPriceCents int64 `json:"totalPrice"`
}

// ComputeRental prices r at a flat daily rate. Days are counted inclusively.
func ComputeRental(r domain.DateRange, pricePerDayCents int64) (Rental, error) {
	if err := r.Validate(); err != nil {
		return Rental{}, err
	}
	if pricePerDayCents < 0 {
		return Rental{}, domain.ErrNegativePrice
	}
	days := r.Days()
	if pricePerDayCents > 0 && int64(days) > math.MaxInt64/pricePerDayCents {
		return Rental{}, fmt.Errorf("rental of %d days at %d overflows: %w", days, pricePerDayCents, domain.ErrInvalidInput)
	}
	return Rental{
		Days:            days,
		TotalPriceCents: int64(days) * pricePerDayCents,
	}, nil
}

// CalendarDay is one cell of a month calendar.
type CalendarDay struct {
	Date      domain.Date `json:"date"`
	Available bool        `json:"available"`
	Past      bool        `json:"past"`
}

// MonthCalendar lays out every day of the given month, marking booked days and days
// before today as unavailable.
func MonthCalendar(year int, month time.Month, bookings []domain.Booking, today domain.Date) []CalendarDay {
	first := domain.NewDate(year, month, 1)
	booked := UnavailableDates(bookings)

	var days []CalendarDay
	for d := first; d.Month == first.Month; d = d.AddDays(1) {
		past := d.Before(today)
		days = append(days, CalendarDay{
			Date:      d,
			Available: !past && !booked.Contains(d),
			Past:      past,
		})
	}
	return days
}
