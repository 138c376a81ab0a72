package cancel_booking

import (
	"net/url"
	"strings"

	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметра reason
func ToServiceRequest(query url.Values) *models.CancelBookingRequest {
	req := &models.CancelBookingRequest{}

	if reason := strings.TrimSpace(query.Get("reason")); reason != "" {
		req.Reason = &reason
	}

	return req
}
