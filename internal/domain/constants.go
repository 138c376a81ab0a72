package domain

// Event type validation constants
const (
	MinEventDuration     = 5
	MaxEventDuration     = 240
	MinBufferMinutes     = 0
	MaxBufferMinutes     = 60
	MinTitleLength       = 3
	MaxTitleLength       = 50
	MinSlugLength        = 3
	MaxSlugLength        = 50
	MaxDescriptionLength = 500
	DefaultEventColor    = "#3174F1"
)

// Schedule and calendar validation constants
const (
	MinNameLength         = 3
	MaxNameLength         = 50
	MaxCalendarNameLength = 100
	MinDaysOfWeek         = 1
	MaxDaysOfWeek         = 7
	DefaultTimezone       = "UTC"
)

// Booking validation constants
const (
	MaxAttendeeNameLength = 100
	MaxNotesLength        = 500
	MaxCancelReasonLength = 500
	MaxPhoneLength        = 32
)

// MaxGenerationDays caps the inclusive date range of a single slot regeneration
const MaxGenerationDays = 366

// DefaultAvailabilityDays is the calendar-day window used when a range query has no end date
const DefaultAvailabilityDays = 7

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// DefaultDaysOfWeek Monday to Friday
func DefaultDaysOfWeek() []int {
	return []int{1, 2, 3, 4, 5}
}
