package domain

import "time"

// SlotStatus represents the reservation state of a slot
type SlotStatus string

const (
	SlotStatusAvailable SlotStatus = "AVAILABLE"
	SlotStatusBooked    SlotStatus = "BOOKED"
)

// IsValid returns true for known slot statuses
func (s SlotStatus) IsValid() bool {
	return s == SlotStatusAvailable || s == SlotStatusBooked
}

// Slot is a concrete bookable interval [StartTime, EndTime)
type Slot struct {
	ID          string
	CalendarID  string
	EventTypeID string
	StartTime   time.Time
	EndTime     time.Time
	Status      SlotStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsAvailable returns true if the slot can be reserved
func (s *Slot) IsAvailable() bool {
	return s.Status == SlotStatusAvailable
}

// DurationMinutes returns the slot length in minutes
func (s *Slot) DurationMinutes() int {
	return int(s.EndTime.Sub(s.StartTime) / time.Minute)
}

// Overlaps returns true if two slots share any instant
func (s *Slot) Overlaps(other *Slot) bool {
	return s.StartTime.Before(other.EndTime) && other.StartTime.Before(s.EndTime)
}

// SlotFilter narrows slot range queries
type SlotFilter struct {
	CalendarID  string
	EventTypeID *string
	Status      *SlotStatus
	From        *time.Time // inclusive
	To          *time.Time // exclusive
}
