package bookings

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	List(ctx context.Context, calendarIDs []string) ([]*domain.Booking, error)
	Update(ctx context.Context, id string, status *domain.BookingStatus, notes *string) (*domain.Booking, error)
	Cancel(ctx context.Context, id string, reason *string) (*domain.Booking, error)
	Delete(ctx context.Context, id string) error
}

// SlotRepository интерфейс репозитория слотов (освобождение при отмене)
type SlotRepository interface {
	Release(ctx context.Context, id string) error
}

// CalendarRepository интерфейс для получения календарей владельца
type CalendarRepository interface {
	ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Calendar, error)
}

// CalendarAccessChecker проверяет, что пользователь владеет календарем
type CalendarAccessChecker interface {
	CheckOwner(ctx context.Context, calendarID string, userID int64) (*domain.Calendar, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics доменные метрики бронирований
type Metrics interface {
	ObserveBookingCancelled()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
