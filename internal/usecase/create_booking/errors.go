package create_booking

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("create_booking: slot not found")

	// ErrSlotNotAvailable возвращается, когда слот уже забронирован (в том числе при гонке)
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrEventTypeNotFound возвращается, когда тип события слота больше не существует
	ErrEventTypeNotFound = errors.New("create_booking: event type not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
