package generate_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	generateSlots "github.com/m04kA/SMC-SchedulingService/internal/usecase/generate_slots"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidInput       = "некорректные параметры генерации"
	msgInvalidRange       = "некорректный диапазон дат"
	msgCalendarNotFound   = "календарь не найден"
	msgEventTypeNotFound  = "тип события не найден"
	msgNoEventTypes       = "в календаре нет типов событий"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	useCase GenerateSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GenerateSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/calendars/{calendarId}/slots/generate
// Заменяет свободные слоты в диапазоне [startDate, endDate] новыми по расписаниям типов событий
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	calendarID := mux.Vars(r)["calendarId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /calendars/{id}/slots/generate - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req GenerateSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /calendars/{id}/slots/generate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID, calendarID))
	if err != nil {
		switch {
		case errors.Is(err, generateSlots.ErrInvalidRange):
			h.logger.Warn("POST /calendars/{id}/slots/generate - Invalid range: calendar_id=%s, error=%v", calendarID, err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, generateSlots.ErrInvalidInput):
			h.logger.Warn("POST /calendars/{id}/slots/generate - Invalid input: calendar_id=%s, error=%v", calendarID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, generateSlots.ErrCalendarNotFound):
			h.logger.Warn("POST /calendars/{id}/slots/generate - Calendar not found: calendar_id=%s", calendarID)
			handlers.RespondNotFound(w, msgCalendarNotFound)

		case errors.Is(err, generateSlots.ErrEventTypeNotFound):
			h.logger.Warn("POST /calendars/{id}/slots/generate - Event type not found: calendar_id=%s", calendarID)
			handlers.RespondNotFound(w, msgEventTypeNotFound)

		case errors.Is(err, generateSlots.ErrNoEventTypes):
			h.logger.Warn("POST /calendars/{id}/slots/generate - No event types: calendar_id=%s", calendarID)
			handlers.RespondBadRequest(w, msgNoEventTypes)

		case errors.Is(err, generateSlots.ErrAccessDenied):
			h.logger.Warn("POST /calendars/{id}/slots/generate - Access denied: calendar_id=%s, user_id=%d", calendarID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("POST /calendars/{id}/slots/generate - Failed to generate slots: calendar_id=%s, error=%v",
				calendarID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /calendars/{id}/slots/generate - %s: calendar_id=%s, user_id=%d",
		result.Message, calendarID, userID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
