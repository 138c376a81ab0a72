package list_bookings

import (
	"net/url"
	"strings"

	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров.
// calendarId необязателен: без него возвращаются бронирования всех календарей владельца.
func ToServiceRequest(userID int64, query url.Values) *models.ListBookingsRequest {
	req := &models.ListBookingsRequest{UserID: userID}

	if calendarID := strings.TrimSpace(query.Get("calendarId")); calendarID != "" {
		req.CalendarID = &calendarID
	}

	return req
}
