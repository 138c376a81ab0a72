package generate_slots

import "errors"

var (
	// ErrCalendarNotFound возвращается, когда календарь не найден
	ErrCalendarNotFound = errors.New("generate_slots: calendar not found")

	// ErrAccessDenied возвращается, когда пользователь не владеет календарем
	ErrAccessDenied = errors.New("generate_slots: access denied")

	// ErrEventTypeNotFound возвращается, когда тип события не найден в календаре
	ErrEventTypeNotFound = errors.New("generate_slots: event type not found")

	// ErrNoEventTypes возвращается, когда в календаре нет типов событий
	ErrNoEventTypes = errors.New("generate_slots: calendar has no event types")

	// ErrInvalidRange возвращается, когда startDate не раньше endDate или диапазон слишком большой
	ErrInvalidRange = errors.New("generate_slots: invalid date range")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("generate_slots: invalid input data")

	// ErrScheduleNotFound расписание типа события не найдено (ошибка одного типа события)
	ErrScheduleNotFound = errors.New("generate_slots: availability schedule not found")

	// ErrInvalidSchedule у расписания пустое или перевернутое окно времени
	ErrInvalidSchedule = errors.New("generate_slots: availability schedule has an empty time window")

	// ErrBookedSlotsInRange в диапазоне есть забронированные слоты, перегенерация типа события отклонена
	ErrBookedSlotsInRange = errors.New("generate_slots: booked slots exist in range")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("generate_slots: internal error")
)
