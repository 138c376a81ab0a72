package calendars

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/service/calendars/models"
)

type CalendarService interface {
	Create(ctx context.Context, req *models.CreateCalendarRequest) (*models.CalendarResponse, error)
	GetByID(ctx context.Context, id string, userID int64) (*models.CalendarResponse, error)
	ListByOwner(ctx context.Context, userID int64) (*models.CalendarListResponse, error)
	GetPublicBySlug(ctx context.Context, calendarSlug string) (*models.PublicCalendarResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
