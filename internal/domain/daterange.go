package domain

import "fmt"

// DateRange is inclusive of both Start and End.
type DateRange struct {
	Start Date `json:"startDate"`
	End   Date `json:"endDate"`
}

func NewDateRange(start, end Date) (DateRange, error) {
	r := DateRange{Start: start, End: end}
	if err := r.Validate(); err != nil {
		return DateRange{}, err
	}
	return r, nil
}

// ParseDateRange parses two yyyy-mm-dd strings into a validated range.
func ParseDateRange(start, end string) (DateRange, error) {
	s, err := ParseDate(start)
	if err != nil {
		return DateRange{}, err
	}
	e, err := ParseDate(end)
	if err != nil {
		return DateRange{}, err
	}
	return NewDateRange(s, e)
}

func (r DateRange) Validate() error {
	if r.Start.IsZero() || r.End.IsZero() {
		return fmt.Errorf("start and end dates are required: %w", ErrInvalidDateRange)
	}
	if r.Start.After(r.End) {
		return fmt.Errorf("start date %s is after end date %s: %w", r.Start, r.End, ErrInvalidDateRange)
	}
	return nil
}

// ValidateLength is Validate plus a cap on the inclusive day count. maxDays <= 0 means no cap.
func (r DateRange) ValidateLength(maxDays int) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if maxDays > 0 && r.Days() > maxDays {
		return fmt.Errorf("range %s spans %d days, at most %d allowed: %w", r, r.Days(), maxDays, ErrInvalidDateRange)
	}
	return nil
}

// Days is the inclusive number of calendar days in the range.
func (r DateRange) Days() int {
	return r.End.DaysSince(r.Start) + 1
}

func (r DateRange) Contains(d Date) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

// Overlaps compares inclusively on both ends: ranges touching on a single day overlap.
func (r DateRange) Overlaps(other DateRange) bool {
	return !r.Start.After(other.End) && !other.Start.After(r.End)
}

// Dates expands the range into its individual days in ascending order.
func (r DateRange) Dates() []Date {
	if r.Validate() != nil {
		return nil
	}
	dates := make([]Date, 0, r.Days())
	for d := r.Start; !d.After(r.End); d = d.AddDays(1) {
		dates = append(dates, d)
	}
	return dates
}

func (r DateRange) String() string {
	return fmt.Sprintf("%s..%s", r.Start, r.End)
}
