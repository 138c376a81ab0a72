package slots

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/service/slots/models"
)

type SlotService interface {
	ListByCalendar(ctx context.Context, req *models.ListSlotsRequest) (*models.SlotListResponse, error)
	GetByID(ctx context.Context, id string, userID int64) (*models.SlotResponse, error)
	Update(ctx context.Context, id string, req *models.UpdateSlotRequest) (*models.SlotResponse, error)
	Delete(ctx context.Context, id string, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
