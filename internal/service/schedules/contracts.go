package schedules

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *domain.AvailabilitySchedule) (*domain.AvailabilitySchedule, error)
	GetByID(ctx context.Context, id string) (*domain.AvailabilitySchedule, error)
	ListByCalendar(ctx context.Context, calendarID string) ([]*domain.AvailabilitySchedule, error)
	Update(ctx context.Context, schedule *domain.AvailabilitySchedule) (*domain.AvailabilitySchedule, error)
	Delete(ctx context.Context, id string) error
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
