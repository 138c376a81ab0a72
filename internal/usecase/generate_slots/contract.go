package generate_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// CalendarAccessChecker проверяет, что пользователь владеет календарем
type CalendarAccessChecker interface {
	CheckOwner(ctx context.Context, calendarID string, userID int64) (*domain.Calendar, error)
}

// EventTypeRepository интерфейс репозитория типов событий
type EventTypeRepository interface {
	GetByID(ctx context.Context, id string) (*domain.EventType, error)
	ListByCalendar(ctx context.Context, calendarID string) ([]*domain.EventType, error)
}

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetByID(ctx context.Context, id string) (*domain.AvailabilitySchedule, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	CountBooked(ctx context.Context, eventTypeID string, from, to time.Time) (int, error)
	DeleteAvailableInRange(ctx context.Context, eventTypeID string, from, to time.Time) (int64, error)
	CreateMany(ctx context.Context, slots []*domain.Slot) (int, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics доменные метрики генерации слотов
type Metrics interface {
	ObserveSlotsGenerated(created int, failed bool)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
