package calendars

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/service/calendars"
	"github.com/m04kA/SMC-SchedulingService/internal/service/calendars/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные календаря"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "календарь не найден"
	msgForbidden          = "доступ запрещен"
	msgSlugTaken          = "slug календаря уже занят"
)

// Handler обработчики календарей владельца и публичной страницы календаря
type Handler struct {
	service CalendarService
	logger  Logger
}

func NewHandler(service CalendarService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Create POST /api/v1/calendars
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /calendars - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.CreateCalendarRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /calendars - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	calendar, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /calendars", err)
		return
	}

	h.logger.Info("POST /calendars - Calendar created: calendar_id=%s, slug=%s, user_id=%d",
		calendar.ID, calendar.Slug, userID)
	handlers.RespondJSON(w, http.StatusCreated, calendar)
}

// List GET /api/v1/calendars
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /calendars - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.ListByOwner(r.Context(), userID)
	if err != nil {
		h.respondError(w, "GET /calendars", err)
		return
	}

	h.logger.Info("GET /calendars - Calendars retrieved: user_id=%d, count=%d", userID, len(result.Calendars))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Get GET /api/v1/calendars/{calendarId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	calendarID := mux.Vars(r)["calendarId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /calendars/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	calendar, err := h.service.GetByID(r.Context(), calendarID, userID)
	if err != nil {
		h.respondError(w, "GET /calendars/{id}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, calendar)
}

// GetPublic GET /api/v1/public/calendars/{slug}
// Публичная страница календаря со списком типов событий
func (h *Handler) GetPublic(w http.ResponseWriter, r *http.Request) {
	calendarSlug := mux.Vars(r)["slug"]

	calendar, err := h.service.GetPublicBySlug(r.Context(), calendarSlug)
	if err != nil {
		h.respondError(w, "GET /public/calendars/{slug}", err)
		return
	}

	h.logger.Info("GET /public/calendars/{slug} - Calendar retrieved: slug=%s, event_types=%d",
		calendarSlug, len(calendar.EventTypes))
	handlers.RespondJSON(w, http.StatusOK, calendar)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, calendars.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	case errors.Is(err, calendars.ErrCalendarNotFound):
		h.logger.Warn("%s - Calendar not found", route)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, calendars.ErrAccessDenied):
		h.logger.Warn("%s - Access denied", route)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, calendars.ErrSlugTaken):
		h.logger.Warn("%s - Slug taken: %v", route, err)
		handlers.RespondConflict(w, msgSlugTaken)

	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
