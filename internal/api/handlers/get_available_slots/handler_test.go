package get_available_slots

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/service/slots"
	"github.com/m04kA/SMC-SchedulingService/internal/service/slots/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type stubService struct {
	got *models.FindAvailableRequest
	err error
}

func (s *stubService) FindAvailable(_ context.Context, req *models.FindAvailableRequest) (*models.AvailableSlotsResponse, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.AvailableSlotsResponse{
		CalendarID:  req.CalendarID,
		EventTypeID: req.EventTypeID,
		Timezone:    "Europe/Berlin",
		Slots:       []models.SlotResponse{{ID: "s-1", Status: "AVAILABLE"}},
	}, nil
}

func serve(h *Handler, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/calendars/{calendarId}/event-types/{eventTypeId}/availability", h.Handle).Methods(http.MethodGet)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_OK(t *testing.T) {
	svc := &stubService{}
	rec := serve(NewHandler(svc, logger.NewNop()),
		"/calendars/cal-1/event-types/et-1/availability?startDate=2024-06-03&endDate=2024-06-05")

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.got)
	assert.Equal(t, "cal-1", svc.got.CalendarID)
	assert.Equal(t, "et-1", svc.got.EventTypeID)
	assert.Equal(t, "2024-06-03", svc.got.StartDate)
	require.NotNil(t, svc.got.EndDate)
	assert.Equal(t, "2024-06-05", *svc.got.EndDate)
	assert.Contains(t, rec.Body.String(), `"s-1"`)
}

func TestHandle_DefaultEndDate(t *testing.T) {
	svc := &stubService{}
	rec := serve(NewHandler(svc, logger.NewNop()), "/calendars/cal-1/event-types/et-1/availability?startDate=2024-06-03")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, svc.got.EndDate)
}

func TestHandle_MissingStartDate(t *testing.T) {
	svc := &stubService{}
	rec := serve(NewHandler(svc, logger.NewNop()), "/calendars/cal-1/event-types/et-1/availability")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, svc.got)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"bad date", slots.ErrInvalidInput, http.StatusBadRequest},
		{"calendar missing", slots.ErrCalendarNotFound, http.StatusNotFound},
		{"event type missing", slots.ErrEventTypeNotFound, http.StatusNotFound},
		{"internal", slots.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(NewHandler(&stubService{err: tt.err}, logger.NewNop()),
				"/calendars/cal-1/event-types/et-1/availability?startDate=2024-06-03")
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
