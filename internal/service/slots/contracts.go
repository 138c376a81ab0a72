package slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Slot, error)
	List(ctx context.Context, filter domain.SlotFilter) ([]*domain.Slot, error)
	ListAvailable(ctx context.Context, calendarID, eventTypeID string, from, to time.Time) ([]*domain.Slot, error)
	UpdateStatus(ctx context.Context, id string, status domain.SlotStatus) (*domain.Slot, error)
	Delete(ctx context.Context, id string) error
}

// CalendarRepository интерфейс репозитория календарей (публичный поиск без проверки владельца)
type CalendarRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Calendar, error)
}

// EventTypeRepository интерфейс репозитория типов событий
type EventTypeRepository interface {
	GetByID(ctx context.Context, id string) (*domain.EventType, error)
}

// CalendarAccessChecker проверяет, что пользователь владеет календарем
type CalendarAccessChecker interface {
	CheckOwner(ctx context.Context, calendarID string, userID int64) (*domain.Calendar, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
