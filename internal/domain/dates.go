package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDate is returned for dates that are neither YYYY-MM-DD nor RFC3339
var ErrInvalidDate = errors.New("domain: invalid date")

// ParseDate parses YYYY-MM-DD (or an RFC3339 timestamp) and returns midnight of that
// calendar date in loc
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}

	if t, err := time.ParseInLocation(DateFormat, value, loc); err == nil {
		return t, nil
	}

	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}

	return StartOfDay(t, loc), nil
}

// StartOfDay returns midnight of t's calendar date in loc
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// DayRange returns the half-open window [startDay 00:00, endDay+1 00:00) in loc
func DayRange(startDay, endDay time.Time, loc *time.Location) (time.Time, time.Time) {
	from := StartOfDay(startDay, loc)
	to := StartOfDay(endDay, loc).AddDate(0, 0, 1)
	return from, to
}
