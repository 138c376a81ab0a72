package calendars

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// CalendarRepository интерфейс репозитория календарей
type CalendarRepository interface {
	Create(ctx context.Context, calendar *domain.Calendar) (*domain.Calendar, error)
	GetByID(ctx context.Context, id string) (*domain.Calendar, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Calendar, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Calendar, error)
}

// EventTypeRepository интерфейс репозитория типов событий
type EventTypeRepository interface {
	ListByCalendar(ctx context.Context, calendarID string) ([]*domain.EventType, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
