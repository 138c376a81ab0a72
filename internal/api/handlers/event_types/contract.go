package event_types

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/service/eventtypes/models"
)

type EventTypeService interface {
	Create(ctx context.Context, req *models.CreateEventTypeRequest) (*models.EventTypeResponse, error)
	GetByID(ctx context.Context, id string, userID int64) (*models.EventTypeResponse, error)
	GetBySlug(ctx context.Context, calendarSlug, eventTypeSlug string) (*models.EventTypeResponse, error)
	ListByCalendar(ctx context.Context, calendarID string, userID int64) (*models.EventTypeListResponse, error)
	Update(ctx context.Context, id string, req *models.UpdateEventTypeRequest) (*models.EventTypeResponse, error)
	Delete(ctx context.Context, id string, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
