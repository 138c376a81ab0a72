package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingStatusConfirmed   BookingStatus = "CONFIRMED"
	BookingStatusCancelled   BookingStatus = "CANCELLED"
	BookingStatusRescheduled BookingStatus = "RESCHEDULED" // modeled, no transition produces it yet
)

// IsValid returns true for known booking statuses
func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusConfirmed, BookingStatusCancelled, BookingStatusRescheduled:
		return true
	}
	return false
}

// Booking is a reservation against one slot.
// StartTime/EndTime are copied from the slot at creation and never follow later slot edits.
type Booking struct {
	ID            string
	SlotID        string
	CalendarID    string
	EventTypeID   string
	AttendeeName  string
	AttendeeEmail string
	AttendeePhone *string
	Notes         *string
	Status        BookingStatus
	CancelReason  *string
	CancelledAt   *time.Time

	RescheduleInfo *RescheduleInfo

	StartTime time.Time
	EndTime   time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RescheduleInfo links a booking to the slot it replaced
type RescheduleInfo struct {
	PreviousSlotID string
	Reason         *string
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == BookingStatusConfirmed
}

// IsActive returns true if the booking still holds its slot
func (b *Booking) IsActive() bool {
	return b.Status == BookingStatusConfirmed
}
