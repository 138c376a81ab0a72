package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SchedulingService/internal/service/calendars"
	"github.com/m04kA/SMC-SchedulingService/internal/testfixtures"
	"github.com/m04kA/SMC-SchedulingService/pkg/ids"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/metrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

const ownerID int64 = 21

type fixture struct {
	svc      *Service
	store    *testfixtures.Store
	metrics  *metrics.Metrics
	calendar *domain.Calendar
	slot     *domain.Slot
	booking  *domain.Booking
}

func setup(t *testing.T) fixture {
	t.Helper()
	store := testfixtures.NewStore()
	log := logger.NewNop()
	m := metrics.NewWithRegisterer("test", prometheus.NewRegistry())
	access := calendars.NewService(store.Calendars(), store.EventTypes(), log)

	cal := store.AddCalendar(domain.Calendar{OwnerID: ownerID, Name: "Studio", Slug: "studio"})
	et := store.AddEventType(domain.EventType{CalendarID: cal.ID, Title: "Session", Slug: "session", Duration: 60})
	start := time.Date(2024, 5, 6, 10, 0, 0, 0, time.UTC)
	slot := store.AddSlot(domain.Slot{
		CalendarID: cal.ID, EventTypeID: et.ID, StartTime: start, EndTime: start.Add(time.Hour), Status: domain.SlotStatusBooked,
	})
	booking, err := store.Bookings().Create(context.Background(), &domain.Booking{
		SlotID: slot.ID, CalendarID: cal.ID, EventTypeID: et.ID,
		AttendeeName: "Ann", AttendeeEmail: "ann@example.com",
		Status: domain.BookingStatusConfirmed, StartTime: slot.StartTime, EndTime: slot.EndTime,
	})
	require.NoError(t, err)

	svc := NewService(store.Bookings(), store.Slots(), store.Calendars(), access, store.TxManager(), m, log)
	return fixture{svc: svc, store: store, metrics: m, calendar: cal, slot: slot, booking: booking}
}

func TestService_Cancel_ReleasesSlot(t *testing.T) {
	f := setup(t)

	resp, err := f.svc.Cancel(context.Background(), f.booking.ID, &models.CancelBookingRequest{Reason: ptr.Ptr("sick")})

	require.NoError(t, err)
	assert.Equal(t, string(domain.BookingStatusCancelled), resp.Status)
	assert.Equal(t, "sick", *resp.CancelReason)
	assert.NotNil(t, resp.CancelledAt)
	assert.Equal(t, domain.SlotStatusAvailable, f.store.SlotStatus(f.slot.ID))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.BookingsCancelledTotal))
}

func TestService_Cancel_Twice(t *testing.T) {
	f := setup(t)

	_, err := f.svc.Cancel(context.Background(), f.booking.ID, &models.CancelBookingRequest{})
	require.NoError(t, err)

	_, err = f.svc.Cancel(context.Background(), f.booking.ID, &models.CancelBookingRequest{})
	assert.ErrorIs(t, err, ErrCannotCancel)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.BookingsCancelledTotal))
}

func TestService_Cancel_SlotAlreadyFree(t *testing.T) {
	f := setup(t)
	_, err := f.store.Slots().UpdateStatus(context.Background(), f.slot.ID, domain.SlotStatusAvailable)
	require.NoError(t, err)

	resp, err := f.svc.Cancel(context.Background(), f.booking.ID, &models.CancelBookingRequest{})

	require.NoError(t, err)
	assert.Equal(t, string(domain.BookingStatusCancelled), resp.Status)
}

func TestService_Cancel_RollsBackOnFailure(t *testing.T) {
	f := setup(t)
	f.store.Fail("bookings.Cancel", errors.New("connection reset"))

	_, err := f.svc.Cancel(context.Background(), f.booking.ID, &models.CancelBookingRequest{})

	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, domain.SlotStatusBooked, f.store.SlotStatus(f.slot.ID))
	got, err := f.store.Bookings().GetByID(context.Background(), f.booking.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusConfirmed, got.Status)
}

func TestService_Cancel_Validation(t *testing.T) {
	f := setup(t)

	_, err := f.svc.Cancel(context.Background(), "nope", &models.CancelBookingRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.Cancel(context.Background(), ids.New(), &models.CancelBookingRequest{})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_Delete_KeepsSlotBooked(t *testing.T) {
	f := setup(t)

	require.NoError(t, f.svc.Delete(context.Background(), f.booking.ID, ownerID))

	assert.Equal(t, domain.SlotStatusBooked, f.store.SlotStatus(f.slot.ID))
	_, err := f.svc.GetByID(context.Background(), f.booking.ID, ownerID)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_Update_NoSlotReconciliation(t *testing.T) {
	f := setup(t)

	resp, err := f.svc.Update(context.Background(), f.booking.ID, &models.UpdateBookingRequest{
		UserID: ownerID,
		Status: ptr.Ptr(string(domain.BookingStatusCancelled)),
		Notes:  ptr.Ptr("moved by phone"),
	})

	require.NoError(t, err)
	assert.Equal(t, string(domain.BookingStatusCancelled), resp.Status)
	assert.Equal(t, "moved by phone", *resp.Notes)
	assert.Equal(t, domain.SlotStatusBooked, f.store.SlotStatus(f.slot.ID))

	_, err = f.svc.Update(context.Background(), f.booking.ID, &models.UpdateBookingRequest{UserID: ownerID, Status: ptr.Ptr("DONE")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_AccessChecks(t *testing.T) {
	f := setup(t)

	_, err := f.svc.GetByID(context.Background(), f.booking.ID, ownerID+1)
	assert.ErrorIs(t, err, ErrAccessDenied)

	err = f.svc.Delete(context.Background(), f.booking.ID, ownerID+1)
	assert.ErrorIs(t, err, ErrAccessDenied)

	got, err := f.svc.GetByID(context.Background(), f.booking.ID, ownerID)
	require.NoError(t, err)
	assert.Equal(t, f.slot.ID, got.SlotID)
	assert.Equal(t, f.slot.StartTime, got.StartTime)
}

func TestService_List(t *testing.T) {
	f := setup(t)
	other := f.store.AddCalendar(domain.Calendar{OwnerID: ownerID + 1, Name: "Elsewhere", Slug: "elsewhere"})
	_, err := f.store.Bookings().Create(context.Background(), &domain.Booking{
		SlotID: ids.New(), CalendarID: other.ID, AttendeeName: "Bob", AttendeeEmail: "bob@example.com",
		Status: domain.BookingStatusConfirmed,
	})
	require.NoError(t, err)

	all, err := f.svc.List(context.Background(), &models.ListBookingsRequest{UserID: ownerID})
	require.NoError(t, err)
	require.Len(t, all.Bookings, 1)
	assert.Equal(t, f.booking.ID, all.Bookings[0].ID)

	byCalendar, err := f.svc.List(context.Background(), &models.ListBookingsRequest{UserID: ownerID, CalendarID: &f.calendar.ID})
	require.NoError(t, err)
	assert.Len(t, byCalendar.Bookings, 1)

	none, err := f.svc.List(context.Background(), &models.ListBookingsRequest{UserID: 999})
	require.NoError(t, err)
	assert.Empty(t, none.Bookings)

	_, err = f.svc.List(context.Background(), &models.ListBookingsRequest{UserID: ownerID, CalendarID: &other.ID})
	assert.ErrorIs(t, err, ErrAccessDenied)
}
