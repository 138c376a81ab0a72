package schedules

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if n := utf8.RuneCountInString(name); n < domain.MinNameLength || n > domain.MaxNameLength {
		return "", fmt.Errorf("%w: name must be %d-%d characters", ErrInvalidInput, domain.MinNameLength, domain.MaxNameLength)
	}
	return name, nil
}

// normalizeDays проверяет дни недели и возвращает их отсортированными без повторов
func normalizeDays(days []int) ([]int, error) {
	if len(days) < domain.MinDaysOfWeek || len(days) > domain.MaxDaysOfWeek {
		return nil, fmt.Errorf("%w: daysOfWeek must contain %d-%d entries", ErrInvalidInput, domain.MinDaysOfWeek, domain.MaxDaysOfWeek)
	}

	seen := make(map[int]bool, len(days))
	result := make([]int, 0, len(days))
	for _, d := range days {
		if d < 1 || d > 7 {
			return nil, fmt.Errorf("%w: day of week %d is out of range 1-7", ErrInvalidInput, d)
		}
		if !seen[d] {
			seen[d] = true
			result = append(result, d)
		}
	}
	sort.Ints(result)

	return result, nil
}

func parseWindow(start, end string) (types.TimeString, types.TimeString, error) {
	startTime, err := types.NewTimeStringFromString(start)
	if err != nil {
		return "", "", fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}
	endTime, err := types.NewTimeStringFromString(end)
	if err != nil {
		return "", "", fmt.Errorf("%w: endTime: %v", ErrInvalidInput, err)
	}
	if !startTime.IsBefore(endTime) {
		return "", "", fmt.Errorf("%w: startTime %s must be before endTime %s", ErrInvalidInput, startTime, endTime)
	}
	return startTime, endTime, nil
}
