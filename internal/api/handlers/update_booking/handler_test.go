package update_booking

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
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type stubService struct {
	got *models.UpdateBookingRequest
	err error
}

func (s *stubService) Update(_ context.Context, id string, req *models.UpdateBookingRequest) (*models.BookingResponse, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.BookingResponse{ID: id, Status: *req.Status}, nil
}

func serve(h *Handler, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/bookings/{bookingId}", h.Handle).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, "/bookings/b-1", strings.NewReader(body))
	req = req.WithContext(middleware.WithUserID(req.Context(), 5))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_OK(t *testing.T) {
	svc := &stubService{}
	rec := serve(NewHandler(svc, logger.NewNop()), `{"status":"COMPLETED","notes":"done"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.got)
	assert.Equal(t, int64(5), svc.got.UserID)
	assert.Equal(t, "done", *svc.got.Notes)
	assert.Contains(t, rec.Body.String(), `"COMPLETED"`)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{"bad body", `{"status":`, nil, http.StatusBadRequest},
		{"unknown status", `{"status":"X"}`, bookings.ErrInvalidInput, http.StatusBadRequest},
		{"not found", `{"status":"CONFIRMED"}`, bookings.ErrBookingNotFound, http.StatusNotFound},
		{"foreign", `{"status":"CONFIRMED"}`, bookings.ErrAccessDenied, http.StatusForbidden},
		{"second confirmed", `{"status":"CONFIRMED"}`, bookings.ErrSlotAlreadyBooked, http.StatusConflict},
		{"internal", `{"status":"CONFIRMED"}`, bookings.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(NewHandler(&stubService{err: tt.err}, logger.NewNop()), tt.body)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
