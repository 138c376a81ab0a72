package list_bookings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type stubService struct {
	got *models.ListBookingsRequest
	err error
}

func (s *stubService) List(_ context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.BookingListResponse{Bookings: []models.BookingResponse{{ID: "b-1"}, {ID: "b-2"}}}, nil
}

func request(target string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	return req.WithContext(middleware.WithUserID(req.Context(), 3))
}

func TestHandle_AllCalendars(t *testing.T) {
	svc := &stubService{}
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, request("/api/v1/bookings"))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.got)
	assert.Equal(t, int64(3), svc.got.UserID)
	assert.Nil(t, svc.got.CalendarID)
	assert.Contains(t, rec.Body.String(), `"b-2"`)
}

func TestHandle_CalendarFilter(t *testing.T) {
	svc := &stubService{}
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, request("/api/v1/bookings?calendarId=cal-1"))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.got.CalendarID)
	assert.Equal(t, "cal-1", *svc.got.CalendarID)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid calendar id", bookings.ErrInvalidInput, http.StatusBadRequest},
		{"calendar not found", bookings.ErrCalendarNotFound, http.StatusNotFound},
		{"foreign calendar", bookings.ErrAccessDenied, http.StatusForbidden},
		{"internal", bookings.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewHandler(&stubService{err: tt.err}, logger.NewNop()).Handle(rec, request("/api/v1/bookings?calendarId=x"))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestHandle_MissingUser(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(&stubService{}, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
