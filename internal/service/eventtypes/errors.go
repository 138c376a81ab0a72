package eventtypes

import "errors"

var (
	// ErrEventTypeNotFound возвращается, когда тип события не найден
	ErrEventTypeNotFound = errors.New("event type not found")

	// ErrScheduleNotFound возвращается, когда расписание не найдено в календаре
	ErrScheduleNotFound = errors.New("availability schedule not found")

	// ErrCalendarNotFound возвращается, когда календарь не найден
	ErrCalendarNotFound = errors.New("calendar not found")

	// ErrAccessDenied возвращается, когда пользователь не владеет календарем
	ErrAccessDenied = errors.New("access denied")

	// ErrDuplicateSlug возвращается, когда slug уже занят в календаре
	ErrDuplicateSlug = errors.New("event type slug already exists in calendar")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
