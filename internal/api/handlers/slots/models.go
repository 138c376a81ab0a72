package slots

import (
	"net/url"
	"strings"

	"github.com/m04kA/SMC-SchedulingService/internal/service/slots/models"
)

// ToListRequest формирует запрос списка слотов из query параметров eventTypeId и status
func ToListRequest(userID int64, calendarID string, query url.Values) *models.ListSlotsRequest {
	req := &models.ListSlotsRequest{
		UserID:     userID,
		CalendarID: calendarID,
	}

	if eventTypeID := strings.TrimSpace(query.Get("eventTypeId")); eventTypeID != "" {
		req.EventTypeID = &eventTypeID
	}
	if status := strings.TrimSpace(query.Get("status")); status != "" {
		status = strings.ToUpper(status)
		req.Status = &status
	}

	return req
}
