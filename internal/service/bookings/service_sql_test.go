package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookingStorage "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/booking"
	calendarStorage "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/calendar"
	eventTypeStorage "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/eventtype"
	slotStorage "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SchedulingService/internal/service/calendars"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/ids"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/metrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/txmanager"
)

func TestService_Cancel_ConcurrentUpdateInDatabase(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	wrapped := dbmetrics.Wrap(db, nil)
	log := logger.NewNop()
	m := metrics.NewWithRegisterer("test", prometheus.NewRegistry())
	calendarRepo := calendarStorage.NewRepository(wrapped)
	svc := NewService(
		bookingStorage.NewRepository(wrapped),
		slotStorage.NewRepository(wrapped),
		calendarRepo,
		calendars.NewService(calendarRepo, eventTypeStorage.NewRepository(wrapped), log),
		txmanager.NewTransactionManager(wrapped),
		m,
		log,
	)

	bookingID := ids.New()
	start := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM bookings").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "slot_id", "calendar_id", "event_type_id", "attendee_name", "attendee_email",
			"attendee_phone", "notes", "status", "cancel_reason", "cancelled_at",
			"reschedule_previous_slot_id", "reschedule_reason", "start_time", "end_time", "created_at", "updated_at",
		}).AddRow(
			bookingID, ids.New(), ids.New(), ids.New(), "Ann", "ann@example.com",
			nil, nil, "CONFIRMED", nil, nil,
			nil, nil, start, start.Add(time.Hour), start, start,
		))
	mock.ExpectQuery("UPDATE bookings").
		WillReturnError(&pq.Error{Code: "40001", Message: "could not serialize access due to concurrent update"})
	mock.ExpectRollback()

	_, err = svc.Cancel(context.Background(), bookingID, &models.CancelBookingRequest{})

	require.ErrorIs(t, err, ErrConcurrentUpdate)
	assert.NotErrorIs(t, err, ErrInternal)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.BookingsCancelledTotal))
	assert.NoError(t, mock.ExpectationsWereMet())
}
