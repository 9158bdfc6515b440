// Package dates holds calendar-day helpers shared by services and handlers.
package dates

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// DayLayout is the wire format of calendar-day inputs
const DayLayout = "2006-01-02"

// ParseDay parses "YYYY-MM-DD" (or a full RFC 3339 instant) as a calendar day in loc
func ParseDay(value string, loc *time.Location) (time.Time, error) {
	if t, err := time.ParseInLocation(DayLayout, value, loc); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", value)
	}
	return StartOfDay(t.In(loc)), nil
}

// StartOfDay truncates t to midnight in its own location
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the exclusive upper bound of t's calendar day
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1)
}

// StartOfMonth returns the first instant of t's month
func StartOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// StartOfISOWeek returns the Monday that starts t's ISO week
func StartOfISOWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// ISOWeekLabel formats t's ISO week as "2024-W05"
func ISOWeekLabel(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// SameDay reports whether a and b fall on the same calendar day in loc
func SameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// Calendar returns t's calendar day as a DATE value at UTC midnight. The
// database sessions run in UTC, so the stored day matches the local one.
func Calendar(t time.Time) datatypes.Date {
	y, m, d := t.Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}
