// Package clock supplies the current time to code that needs "today".
package clock

import (
	"time"

	"toolrental-backend/internal/domain"
)

type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func NewSystem() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}

type fixedClock struct {
	t time.Time
}

// NewFixed returns a clock that is stopped at t. Used in tests and manual job runs.
func NewFixed(t time.Time) Clock {
	return fixedClock{t: t}
}

func (c fixedClock) Now() time.Time {
	return c.t
}

// Today is the calendar day of c.Now() in loc. A nil loc means UTC.
func Today(c Clock, loc *time.Location) domain.Date {
	if loc == nil {
		loc = time.UTC
	}
	return domain.DateOf(c.Now().In(loc))
}
