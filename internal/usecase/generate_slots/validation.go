package generate_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/ids"
)

// parseRange разбирает границы диапазона в часовом поясе календаря.
// startDate должен быть строго раньше endDate.
func parseRange(startDate, endDate string, loc *time.Location) (time.Time, time.Time, error) {
	if startDate == "" || endDate == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: startDate and endDate are required", ErrInvalidInput)
	}

	startDay, err := domain.ParseDate(startDate, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: startDate: %v", ErrInvalidInput, err)
	}

	endDay, err := domain.ParseDate(endDate, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: endDate: %v", ErrInvalidInput, err)
	}

	if !startDay.Before(endDay) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: startDate must be before endDate", ErrInvalidRange)
	}

	if endDay.After(startDay.AddDate(0, 0, domain.MaxGenerationDays)) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: range must not exceed %d days", ErrInvalidRange, domain.MaxGenerationDays)
	}

	return startDay, endDay, nil
}

// validateRequest проверяет формат идентификаторов до обращения к хранилищу
func validateRequest(req *Request) error {
	if err := ids.Validate(req.CalendarID); err != nil {
		return fmt.Errorf("%w: calendarId: %v", ErrInvalidInput, err)
	}
	if req.EventTypeID != nil {
		if err := ids.Validate(*req.EventTypeID); err != nil {
			return fmt.Errorf("%w: eventTypeId: %v", ErrInvalidInput, err)
		}
	}
	return nil
}
