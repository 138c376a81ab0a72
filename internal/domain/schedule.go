package domain

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// AvailabilitySchedule is a recurring weekly availability window.
// DaysOfWeek uses 1=Monday..7=Sunday; StartTime/EndTime apply to every listed day.
type AvailabilitySchedule struct {
	ID         string
	CalendarID string
	Name       string
	DaysOfWeek []int
	StartTime  types.TimeString
	EndTime    types.TimeString
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsoWeekday maps Go's Sunday=0 weekday to the 1=Monday..7=Sunday convention
func IsoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// IncludesWeekday returns true if the ISO weekday is listed in the schedule
func (s *AvailabilitySchedule) IncludesWeekday(isoWeekday int) bool {
	for _, d := range s.DaysOfWeek {
		if d == isoWeekday {
			return true
		}
	}
	return false
}

// HasValidWindow returns true if StartTime strictly precedes EndTime
func (s *AvailabilitySchedule) HasValidWindow() bool {
	return s.StartTime.IsBefore(s.EndTime)
}

// WindowMinutes returns the length of the daily window, or 0 if the window is invalid
func (s *AvailabilitySchedule) WindowMinutes() int {
	if !s.HasValidWindow() {
		return 0
	}
	return s.EndTime.Minutes() - s.StartTime.Minutes()
}
