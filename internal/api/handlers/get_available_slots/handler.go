package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/service/slots"
)

const (
	msgMissingStartDate  = "startDate обязателен"
	msgInvalidParams     = "некорректные параметры запроса, даты ожидаются в формате YYYY-MM-DD"
	msgCalendarNotFound  = "календарь не найден"
	msgEventTypeNotFound = "тип события не найден"
)

type Handler struct {
	service SlotService
	logger  Logger
}

func NewHandler(service SlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/calendars/{calendarId}/event-types/{eventTypeId}/availability
// Query params: startDate (обязательно), endDate (по умолчанию startDate + 7 дней)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	calendarID := vars["calendarId"]
	eventTypeID := vars["eventTypeId"]

	req := ToServiceRequest(calendarID, eventTypeID, r.URL.Query())
	if req.StartDate == "" {
		h.logger.Warn("GET /calendars/{id}/event-types/{id}/availability - Missing start date")
		handlers.RespondBadRequest(w, msgMissingStartDate)
		return
	}

	result, err := h.service.FindAvailable(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrInvalidInput):
			h.logger.Warn("GET /calendars/{id}/event-types/{id}/availability - Invalid params: calendar_id=%s, error=%v",
				calendarID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, slots.ErrCalendarNotFound):
			h.logger.Warn("GET /calendars/{id}/event-types/{id}/availability - Calendar not found: calendar_id=%s", calendarID)
			handlers.RespondNotFound(w, msgCalendarNotFound)

		case errors.Is(err, slots.ErrEventTypeNotFound):
			h.logger.Warn("GET /calendars/{id}/event-types/{id}/availability - Event type not found: calendar_id=%s, event_type_id=%s",
				calendarID, eventTypeID)
			handlers.RespondNotFound(w, msgEventTypeNotFound)

		default:
			h.logger.Error("GET /calendars/{id}/event-types/{id}/availability - Failed to get slots: calendar_id=%s, event_type_id=%s, error=%v",
				calendarID, eventTypeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /calendars/{id}/event-types/{id}/availability - Slots retrieved successfully: calendar_id=%s, event_type_id=%s, slots_count=%d",
		calendarID, eventTypeID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, result)
}
