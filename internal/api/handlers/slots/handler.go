package slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/service/slots"
	"github.com/m04kA/SMC-SchedulingService/internal/service/slots/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные параметры слота"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "слот не найден"
	msgCalendarNotFound   = "календарь не найден"
	msgEventTypeNotFound  = "тип события не найден"
	msgForbidden          = "доступ запрещен"
)

// Handler управление слотами владельцем календаря
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

// List GET /api/v1/calendars/{calendarId}/slots
// Query params: eventTypeId, status (опционально)
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	calendarID := mux.Vars(r)["calendarId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /calendars/{id}/slots - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.ListByCalendar(r.Context(), ToListRequest(userID, calendarID, r.URL.Query()))
	if err != nil {
		h.respondError(w, "GET /calendars/{id}/slots", err)
		return
	}

	h.logger.Info("GET /calendars/{id}/slots - Slots retrieved: calendar_id=%s, count=%d", calendarID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Get GET /api/v1/slots/{slotId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	slotID := mux.Vars(r)["slotId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /slots/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	slot, err := h.service.GetByID(r.Context(), slotID, userID)
	if err != nil {
		h.respondError(w, "GET /slots/{id}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, slot)
}

// Update PATCH /api/v1/slots/{slotId}
// Ручная смена статуса, бронирования не сверяются
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	slotID := mux.Vars(r)["slotId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /slots/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.UpdateSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /slots/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	slot, err := h.service.Update(r.Context(), slotID, &req)
	if err != nil {
		h.respondError(w, "PATCH /slots/{id}", err)
		return
	}

	h.logger.Info("PATCH /slots/{id} - Slot updated: slot_id=%s, status=%s", slotID, slot.Status)
	handlers.RespondJSON(w, http.StatusOK, slot)
}

// Delete DELETE /api/v1/slots/{slotId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	slotID := mux.Vars(r)["slotId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /slots/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.Delete(r.Context(), slotID, userID); err != nil {
		h.respondError(w, "DELETE /slots/{id}", err)
		return
	}

	h.logger.Info("DELETE /slots/{id} - Slot deleted: slot_id=%s", slotID)
	handlers.RespondNoContent(w)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, slots.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	case errors.Is(err, slots.ErrSlotNotFound):
		h.logger.Warn("%s - Slot not found", route)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, slots.ErrCalendarNotFound):
		h.logger.Warn("%s - Calendar not found", route)
		handlers.RespondNotFound(w, msgCalendarNotFound)

	case errors.Is(err, slots.ErrEventTypeNotFound):
		h.logger.Warn("%s - Event type not found", route)
		handlers.RespondNotFound(w, msgEventTypeNotFound)

	case errors.Is(err, slots.ErrAccessDenied):
		h.logger.Warn("%s - Access denied", route)
		handlers.RespondForbidden(w, msgForbidden)

	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
