package services

import (
	"time"

	"garderie-api/internal/pkg/dates"
)

// Clock supplies the current time in the daycare's timezone
type Clock struct {
	Location *time.Location
	Now      func() time.Time
}

// NewClock returns a wall clock for loc
func NewClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return Clock{Location: loc, Now: time.Now}
}

// FixedClock always returns t. Used by tests and report previews.
func FixedClock(t time.Time) Clock {
	return Clock{Location: t.Location(), Now: func() time.Time { return t }}
}

func (c Clock) now() time.Time {
	return c.Now().In(c.Location)
}

func (c Clock) today() time.Time {
	return dates.StartOfDay(c.now())
}
