package schedules

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/service/schedules"
	"github.com/m04kA/SMC-SchedulingService/internal/service/schedules/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные расписания"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "расписание не найдено"
	msgCalendarNotFound   = "календарь не найден"
	msgForbidden          = "доступ запрещен"
)

// Handler CRUD расписаний доступности
type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Create POST /api/v1/calendars/{calendarId}/schedules
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	calendarID := mux.Vars(r)["calendarId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /calendars/{id}/schedules - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.CreateScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /calendars/{id}/schedules - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID
	req.CalendarID = calendarID

	schedule, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /calendars/{id}/schedules", err)
		return
	}

	h.logger.Info("POST /calendars/{id}/schedules - Schedule created: schedule_id=%s, calendar_id=%s",
		schedule.ID, calendarID)
	handlers.RespondJSON(w, http.StatusCreated, schedule)
}

// List GET /api/v1/calendars/{calendarId}/schedules
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	calendarID := mux.Vars(r)["calendarId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /calendars/{id}/schedules - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.ListByCalendar(r.Context(), calendarID, userID)
	if err != nil {
		h.respondError(w, "GET /calendars/{id}/schedules", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Get GET /api/v1/schedules/{scheduleId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	scheduleID := mux.Vars(r)["scheduleId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /schedules/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	schedule, err := h.service.GetByID(r.Context(), scheduleID, userID)
	if err != nil {
		h.respondError(w, "GET /schedules/{id}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, schedule)
}

// Update PUT /api/v1/schedules/{scheduleId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	scheduleID := mux.Vars(r)["scheduleId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /schedules/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.UpdateScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /schedules/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	schedule, err := h.service.Update(r.Context(), scheduleID, &req)
	if err != nil {
		h.respondError(w, "PUT /schedules/{id}", err)
		return
	}

	h.logger.Info("PUT /schedules/{id} - Schedule updated: schedule_id=%s", scheduleID)
	handlers.RespondJSON(w, http.StatusOK, schedule)
}

// Delete DELETE /api/v1/schedules/{scheduleId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	scheduleID := mux.Vars(r)["scheduleId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /schedules/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.Delete(r.Context(), scheduleID, userID); err != nil {
		h.respondError(w, "DELETE /schedules/{id}", err)
		return
	}

	h.logger.Info("DELETE /schedules/{id} - Schedule deleted: schedule_id=%s", scheduleID)
	handlers.RespondNoContent(w)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, schedules.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput+": "+err.Error())

	case errors.Is(err, schedules.ErrScheduleNotFound):
		h.logger.Warn("%s - Schedule not found", route)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, schedules.ErrCalendarNotFound):
		h.logger.Warn("%s - Calendar not found", route)
		handlers.RespondNotFound(w, msgCalendarNotFound)

	case errors.Is(err, schedules.ErrAccessDenied):
		h.logger.Warn("%s - Access denied", route)
		handlers.RespondForbidden(w, msgForbidden)

	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
