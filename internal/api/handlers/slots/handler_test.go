package slots

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/service/slots"
	"github.com/m04kA/SMC-SchedulingService/internal/service/slots/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type stubService struct {
	listed  *models.ListSlotsRequest
	updated *models.UpdateSlotRequest
	err     error
}

func (s *stubService) ListByCalendar(_ context.Context, req *models.ListSlotsRequest) (*models.SlotListResponse, error) {
	s.listed = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.SlotListResponse{Slots: []models.SlotResponse{{ID: "s-1", CalendarID: req.CalendarID}}}, nil
}

func (s *stubService) GetByID(_ context.Context, id string, _ int64) (*models.SlotResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.SlotResponse{ID: id, Status: "AVAILABLE"}, nil
}

func (s *stubService) Update(_ context.Context, id string, req *models.UpdateSlotRequest) (*models.SlotResponse, error) {
	s.updated = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.SlotResponse{ID: id, Status: req.Status}, nil
}

func (s *stubService) Delete(_ context.Context, _ string, _ int64) error {
	return s.err
}

func newRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/calendars/{calendarId}/slots", h.List).Methods(http.MethodGet)
	r.HandleFunc("/slots/{slotId}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/slots/{slotId}", h.Update).Methods(http.MethodPatch)
	r.HandleFunc("/slots/{slotId}", h.Delete).Methods(http.MethodDelete)
	return r
}

func do(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(middleware.HeaderUserID, "6")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestList_Filters(t *testing.T) {
	svc := &stubService{}
	rec := do(newRouter(NewHandler(svc, logger.NewNop())), http.MethodGet, "/calendars/cal-1/slots?eventTypeId=et-1&status=booked", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.listed)
	assert.Equal(t, "cal-1", svc.listed.CalendarID)
	assert.Equal(t, int64(6), svc.listed.UserID)
	require.NotNil(t, svc.listed.EventTypeID)
	assert.Equal(t, "et-1", *svc.listed.EventTypeID)
	require.NotNil(t, svc.listed.Status)
	assert.Equal(t, "BOOKED", *svc.listed.Status)
}

func TestList_NoFilters(t *testing.T) {
	svc := &stubService{}
	rec := do(newRouter(NewHandler(svc, logger.NewNop())), http.MethodGet, "/calendars/cal-1/slots", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, svc.listed.EventTypeID)
	assert.Nil(t, svc.listed.Status)
}

func TestUpdate(t *testing.T) {
	svc := &stubService{}
	rec := do(newRouter(NewHandler(svc, logger.NewNop())), http.MethodPatch, "/slots/s-1", `{"status":"BOOKED"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.updated)
	assert.Equal(t, int64(6), svc.updated.UserID)
	assert.Contains(t, rec.Body.String(), `"BOOKED"`)
}

func TestGetAndDelete(t *testing.T) {
	r := newRouter(NewHandler(&stubService{}, logger.NewNop()))

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/slots/s-1", "").Code)
	assert.Equal(t, http.StatusNoContent, do(r, http.MethodDelete, "/slots/s-1", "").Code)
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
		{"update bad body", http.MethodPatch, "/slots/s", `{"status":true}`, nil, http.StatusBadRequest},
		{"update unknown status", http.MethodPatch, "/slots/s", `{"status":"X"}`, slots.ErrInvalidInput, http.StatusBadRequest},
		{"get missing", http.MethodGet, "/slots/s", "", slots.ErrSlotNotFound, http.StatusNotFound},
		{"get foreign", http.MethodGet, "/slots/s", "", slots.ErrAccessDenied, http.StatusForbidden},
		{"list calendar missing", http.MethodGet, "/calendars/c/slots", "", slots.ErrCalendarNotFound, http.StatusNotFound},
		{"delete internal", http.MethodDelete, "/slots/s", "", slots.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(newRouter(NewHandler(&stubService{err: tt.err}, logger.NewNop())), tt.method, tt.target, tt.body)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
