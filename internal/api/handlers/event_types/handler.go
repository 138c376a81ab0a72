package event_types

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/service/eventtypes"
	"github.com/m04kA/SMC-SchedulingService/internal/service/eventtypes/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные типа события"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "тип события не найден"
	msgScheduleNotFound   = "расписание не найдено в календаре"
	msgCalendarNotFound   = "календарь не найден"
	msgForbidden          = "доступ запрещен"
	msgDuplicateSlug      = "тип события с таким slug уже есть в календаре"
)

// Handler CRUD типов событий и публичный поиск по slug
type Handler struct {
	service EventTypeService
	logger  Logger
}

func NewHandler(service EventTypeService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Create POST /api/v1/calendars/{calendarId}/event-types
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	calendarID := mux.Vars(r)["calendarId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /calendars/{id}/event-types - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.CreateEventTypeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /calendars/{id}/event-types - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID
	req.CalendarID = calendarID

	eventType, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /calendars/{id}/event-types", err)
		return
	}

	h.logger.Info("POST /calendars/{id}/event-types - Event type created: event_type_id=%s, slug=%s, calendar_id=%s",
		eventType.ID, eventType.Slug, calendarID)
	handlers.RespondJSON(w, http.StatusCreated, eventType)
}

// List GET /api/v1/calendars/{calendarId}/event-types
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	calendarID := mux.Vars(r)["calendarId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /calendars/{id}/event-types - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.ListByCalendar(r.Context(), calendarID, userID)
	if err != nil {
		h.respondError(w, "GET /calendars/{id}/event-types", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Get GET /api/v1/event-types/{eventTypeId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	eventTypeID := mux.Vars(r)["eventTypeId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /event-types/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	eventType, err := h.service.GetByID(r.Context(), eventTypeID, userID)
	if err != nil {
		h.respondError(w, "GET /event-types/{id}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, eventType)
}

// GetPublic GET /api/v1/public/calendars/{slug}/event-types/{eventTypeSlug}
func (h *Handler) GetPublic(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	calendarSlug := vars["slug"]
	eventTypeSlug := vars["eventTypeSlug"]

	eventType, err := h.service.GetBySlug(r.Context(), calendarSlug, eventTypeSlug)
	if err != nil {
		h.respondError(w, "GET /public/calendars/{slug}/event-types/{slug}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, eventType)
}

// Update PUT /api/v1/event-types/{eventTypeId}
// Уже созданные слоты не меняются, новые параметры действуют со следующей генерации
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	eventTypeID := mux.Vars(r)["eventTypeId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /event-types/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.UpdateEventTypeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /event-types/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	eventType, err := h.service.Update(r.Context(), eventTypeID, &req)
	if err != nil {
		h.respondError(w, "PUT /event-types/{id}", err)
		return
	}

	h.logger.Info("PUT /event-types/{id} - Event type updated: event_type_id=%s", eventTypeID)
	handlers.RespondJSON(w, http.StatusOK, eventType)
}

// Delete DELETE /api/v1/event-types/{eventTypeId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	eventTypeID := mux.Vars(r)["eventTypeId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /event-types/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.Delete(r.Context(), eventTypeID, userID); err != nil {
		h.respondError(w, "DELETE /event-types/{id}", err)
		return
	}

	h.logger.Info("DELETE /event-types/{id} - Event type deleted: event_type_id=%s", eventTypeID)
	handlers.RespondNoContent(w)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, eventtypes.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput+": "+err.Error())

	case errors.Is(err, eventtypes.ErrEventTypeNotFound):
		h.logger.Warn("%s - Event type not found", route)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, eventtypes.ErrScheduleNotFound):
		h.logger.Warn("%s - Schedule not found: %v", route, err)
		handlers.RespondNotFound(w, msgScheduleNotFound)

	case errors.Is(err, eventtypes.ErrCalendarNotFound):
		h.logger.Warn("%s - Calendar not found", route)
		handlers.RespondNotFound(w, msgCalendarNotFound)

	case errors.Is(err, eventtypes.ErrAccessDenied):
		h.logger.Warn("%s - Access denied", route)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, eventtypes.ErrDuplicateSlug):
		h.logger.Warn("%s - Duplicate slug: %v", route, err)
		handlers.RespondConflict(w, msgDuplicateSlug)

	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
