package generate_slots

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// generateSlots разворачивает недельное расписание в конкретные слоты на дни [startDay, endDay].
//
// Для каждого дня, входящего в schedule.DaysOfWeek, слоты идут от startTime с шагом
// duration + bufferTimeAfter. Слот, который заканчивается позже endTime, отбрасывается
// (не обрезается). bufferTimeBefore не учитывается.
//
// Примеры (duration=30, buffer=0):
// - окно 09:00-09:50 → один слот 09:00-09:30
// - окно 09:00-10:00 → 09:00-09:30, 09:30-10:00
func generateSlots(
	startDay, endDay time.Time,
	schedule *domain.AvailabilitySchedule,
	eventType *domain.EventType,
	loc *time.Location,
) []*domain.Slot {
	result := make([]*domain.Slot, 0)
	if eventType.Duration <= 0 || !schedule.HasValidWindow() {
		return result
	}

	duration := time.Duration(eventType.Duration) * time.Minute
	step := time.Duration(eventType.Step()) * time.Minute

	first := domain.StartOfDay(startDay, loc)
	last := domain.StartOfDay(endDay, loc)

	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		if !schedule.IncludesWeekday(domain.IsoWeekday(day)) {
			continue
		}

		cursor := schedule.StartTime.On(day, loc)
		dayEnd := schedule.EndTime.On(day, loc)

		for {
			slotEnd := cursor.Add(duration)
			if slotEnd.After(dayEnd) {
				break
			}

			result = append(result, &domain.Slot{
				CalendarID:  eventType.CalendarID,
				EventTypeID: eventType.ID,
				StartTime:   cursor,
				EndTime:     slotEnd,
				Status:      domain.SlotStatusAvailable,
			})

			cursor = cursor.Add(step)
		}
	}

	return result
}
