package domain

import "time"

// EventType is a bookable meeting definition.
//
// BufferTimeBefore is stored and returned but slot generation does not consume it:
// only BufferTimeAfter spaces consecutive slots.
type EventType struct {
	ID                     string
	CalendarID             string
	Title                  string
	Slug                   string // unique within the calendar
	Description            *string
	Duration               int // minutes
	Color                  string
	AvailabilityScheduleID string
	BufferTimeBefore       int
	BufferTimeAfter        int
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// Step returns the distance in minutes between starts of consecutive generated slots
func (e *EventType) Step() int {
	return e.Duration + e.BufferTimeAfter
}
