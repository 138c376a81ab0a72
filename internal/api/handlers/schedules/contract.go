package schedules

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/service/schedules/models"
)

type ScheduleService interface {
	Create(ctx context.Context, req *models.CreateScheduleRequest) (*models.ScheduleResponse, error)
	GetByID(ctx context.Context, id string, userID int64) (*models.ScheduleResponse, error)
	ListByCalendar(ctx context.Context, calendarID string, userID int64) (*models.ScheduleListResponse, error)
	Update(ctx context.Context, id string, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error)
	Delete(ctx context.Context, id string, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
