package slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slot.repository: slot not found")

	// ErrSlotNotAvailable возвращается, когда слот нельзя зарезервировать (уже BOOKED или удален)
	ErrSlotNotAvailable = errors.New("slot.repository: slot not available")

	// ErrSlotNotBooked возвращается, когда освобождаемый слот не в статусе BOOKED
	ErrSlotNotBooked = errors.New("slot.repository: slot is not booked")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("slot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("slot.repository: failed to scan row")
)
