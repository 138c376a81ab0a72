package calendars

import "errors"

var (
	// ErrCalendarNotFound возвращается, когда календарь не найден
	ErrCalendarNotFound = errors.New("calendar not found")

	// ErrAccessDenied возвращается, когда пользователь не владеет календарем
	ErrAccessDenied = errors.New("access denied")

	// ErrSlugTaken возвращается, когда slug календаря уже занят
	ErrSlugTaken = errors.New("calendar slug already taken")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
