package eventtypes

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// EventTypeRepository интерфейс репозитория типов событий
type EventTypeRepository interface {
	Create(ctx context.Context, eventType *domain.EventType) (*domain.EventType, error)
	GetByID(ctx context.Context, id string) (*domain.EventType, error)
	GetBySlug(ctx context.Context, calendarID, slug string) (*domain.EventType, error)
	ListByCalendar(ctx context.Context, calendarID string) ([]*domain.EventType, error)
	ExistsSlug(ctx context.Context, calendarID, slug string, excludeID *string) (bool, error)
	Update(ctx context.Context, eventType *domain.EventType) (*domain.EventType, error)
	Delete(ctx context.Context, id string) error
}

// ScheduleRepository интерфейс для проверки расписания, на которое ссылается тип события
type ScheduleRepository interface {
	GetByID(ctx context.Context, id string) (*domain.AvailabilitySchedule, error)
}

// CalendarRepository интерфейс для поиска календаря по slug
type CalendarRepository interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Calendar, error)
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
