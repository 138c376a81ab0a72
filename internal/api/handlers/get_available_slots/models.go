package get_available_slots

import (
	"net/url"
	"strings"

	"github.com/m04kA/SMC-SchedulingService/internal/service/slots/models"
)

// ToServiceRequest формирует запрос к сервису из path и query параметров
func ToServiceRequest(calendarID, eventTypeID string, query url.Values) *models.FindAvailableRequest {
	req := &models.FindAvailableRequest{
		CalendarID:  calendarID,
		EventTypeID: eventTypeID,
		StartDate:   strings.TrimSpace(query.Get("startDate")),
	}

	if endDate := strings.TrimSpace(query.Get("endDate")); endDate != "" {
		req.EndDate = &endDate
	}

	return req
}
