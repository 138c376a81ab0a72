package delete_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type stubService struct {
	deleted string
	err     error
}

func (s *stubService) Delete(_ context.Context, id string, _ int64) error {
	if s.err != nil {
		return s.err
	}
	s.deleted = id
	return nil
}

func serve(h *Handler) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/bookings/{bookingId}", h.Handle).Methods(http.MethodDelete)

	req := httptest.NewRequest(http.MethodDelete, "/bookings/b-1", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), 1))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Deleted(t *testing.T) {
	svc := &stubService{}
	rec := serve(NewHandler(svc, logger.NewNop()))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "b-1", svc.deleted)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid id", bookings.ErrInvalidInput, http.StatusBadRequest},
		{"not found", bookings.ErrBookingNotFound, http.StatusNotFound},
		{"foreign", bookings.ErrAccessDenied, http.StatusForbidden},
		{"internal", bookings.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(NewHandler(&stubService{err: tt.err}, logger.NewNop()))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
