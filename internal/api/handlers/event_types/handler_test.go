package event_types

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/service/eventtypes"
	"github.com/m04kA/SMC-SchedulingService/internal/service/eventtypes/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type stubService struct {
	created *models.CreateEventTypeRequest
	updated *models.UpdateEventTypeRequest
	err     error
}

func (s *stubService) Create(_ context.Context, req *models.CreateEventTypeRequest) (*models.EventTypeResponse, error) {
	s.created = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.EventTypeResponse{ID: "et-1", CalendarID: req.CalendarID, Title: req.Title, Slug: "intro-call", Duration: req.Duration}, nil
}

func (s *stubService) GetByID(_ context.Context, id string, _ int64) (*models.EventTypeResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.EventTypeResponse{ID: id}, nil
}

func (s *stubService) GetBySlug(_ context.Context, _, eventTypeSlug string) (*models.EventTypeResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.EventTypeResponse{ID: "et-1", Slug: eventTypeSlug}, nil
}

func (s *stubService) ListByCalendar(_ context.Context, calendarID string, _ int64) (*models.EventTypeListResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.EventTypeListResponse{EventTypes: []models.EventTypeResponse{{ID: "et-1", CalendarID: calendarID}}}, nil
}

func (s *stubService) Update(_ context.Context, id string, req *models.UpdateEventTypeRequest) (*models.EventTypeResponse, error) {
	s.updated = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.EventTypeResponse{ID: id}, nil
}

func (s *stubService) Delete(_ context.Context, _ string, _ int64) error {
	return s.err
}

func newRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/public/calendars/{slug}/event-types/{eventTypeSlug}", h.GetPublic).Methods(http.MethodGet)

	protected := r.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)
	protected.HandleFunc("/calendars/{calendarId}/event-types", h.Create).Methods(http.MethodPost)
	protected.HandleFunc("/calendars/{calendarId}/event-types", h.List).Methods(http.MethodGet)
	protected.HandleFunc("/event-types/{eventTypeId}", h.Get).Methods(http.MethodGet)
	protected.HandleFunc("/event-types/{eventTypeId}", h.Update).Methods(http.MethodPut)
	protected.HandleFunc("/event-types/{eventTypeId}", h.Delete).Methods(http.MethodDelete)
	return r
}

func do(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(middleware.HeaderUserID, "8")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCreate(t *testing.T) {
	svc := &stubService{}
	rec := do(newRouter(NewHandler(svc, logger.NewNop())), http.MethodPost, "/calendars/cal-1/event-types",
		`{"title":"Intro Call","duration":30,"availabilityScheduleId":"sc-1","bufferTimeAfter":10}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, svc.created)
	assert.Equal(t, "cal-1", svc.created.CalendarID)
	assert.Equal(t, int64(8), svc.created.UserID)
	assert.Equal(t, 10, *svc.created.BufferTimeAfter)

	var resp models.EventTypeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "intro-call", resp.Slug)
}

func TestGetPublic(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/public/calendars/coaching/event-types/intro-call", nil)
	rec := httptest.NewRecorder()
	newRouter(NewHandler(&stubService{}, logger.NewNop())).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"intro-call"`)
}

func TestUpdateAndDelete(t *testing.T) {
	svc := &stubService{}
	r := newRouter(NewHandler(svc, logger.NewNop()))

	rec := do(r, http.MethodPut, "/event-types/et-1", `{"duration":45}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.updated)
	assert.Equal(t, 45, *svc.updated.Duration)

	rec = do(r, http.MethodDelete, "/event-types/et-1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name   string
		method string
		target string
		body   string
		err    error
		status int
	}{
		{"create unknown field", http.MethodPost, "/calendars/c/event-types", `{"price":10}`, nil, http.StatusBadRequest},
		{"create invalid", http.MethodPost, "/calendars/c/event-types", `{}`, eventtypes.ErrInvalidInput, http.StatusBadRequest},
		{"create duplicate slug", http.MethodPost, "/calendars/c/event-types", `{}`, eventtypes.ErrDuplicateSlug, http.StatusConflict},
		{"create foreign schedule", http.MethodPost, "/calendars/c/event-types", `{}`, eventtypes.ErrScheduleNotFound, http.StatusNotFound},
		{"list foreign", http.MethodGet, "/calendars/c/event-types", "", eventtypes.ErrAccessDenied, http.StatusForbidden},
		{"list calendar missing", http.MethodGet, "/calendars/c/event-types", "", eventtypes.ErrCalendarNotFound, http.StatusNotFound},
		{"get missing", http.MethodGet, "/event-types/e", "", eventtypes.ErrEventTypeNotFound, http.StatusNotFound},
		{"delete internal", http.MethodDelete, "/event-types/e", "", eventtypes.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(newRouter(NewHandler(&stubService{err: tt.err}, logger.NewNop())), tt.method, tt.target, tt.body)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
