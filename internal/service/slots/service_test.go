package slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/calendars"
	"github.com/m04kA/SMC-SchedulingService/internal/service/slots/models"
	"github.com/m04kA/SMC-SchedulingService/internal/testfixtures"
	"github.com/m04kA/SMC-SchedulingService/pkg/ids"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

const ownerID int64 = 3

type fixture struct {
	svc       *Service
	store     *testfixtures.Store
	calendar  *domain.Calendar
	eventType *domain.EventType
	loc       *time.Location
}

func setup(t *testing.T) fixture {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	store := testfixtures.NewStore()
	log := logger.NewNop()
	access := calendars.NewService(store.Calendars(), store.EventTypes(), log)
	cal := store.AddCalendar(domain.Calendar{OwnerID: ownerID, Name: "Berlin office", Slug: "berlin", Timezone: "Europe/Berlin"})
	et := store.AddEventType(domain.EventType{CalendarID: cal.ID, Title: "Demo", Slug: "demo", Duration: 30})

	svc := NewService(store.Slots(), store.Calendars(), store.EventTypes(), access, log)
	return fixture{svc: svc, store: store, calendar: cal, eventType: et, loc: loc}
}

func (f fixture) addSlot(start time.Time, status domain.SlotStatus) *domain.Slot {
	return f.store.AddSlot(domain.Slot{
		CalendarID:  f.calendar.ID,
		EventTypeID: f.eventType.ID,
		StartTime:   start,
		EndTime:     start.Add(30 * time.Minute),
		Status:      status,
	})
}

func TestService_FindAvailable_IncludesWholeLastDay(t *testing.T) {
	f := setup(t)
	f.addSlot(time.Date(2024, 3, 4, 9, 0, 0, 0, f.loc), domain.SlotStatusAvailable)
	f.addSlot(time.Date(2024, 3, 5, 16, 30, 0, 0, f.loc), domain.SlotStatusAvailable)
	f.addSlot(time.Date(2024, 3, 5, 10, 0, 0, 0, f.loc), domain.SlotStatusBooked)
	f.addSlot(time.Date(2024, 3, 6, 9, 0, 0, 0, f.loc), domain.SlotStatusAvailable)

	resp, err := f.svc.FindAvailable(context.Background(), &models.FindAvailableRequest{
		CalendarID:  f.calendar.ID,
		EventTypeID: f.eventType.ID,
		StartDate:   "2024-03-04",
		EndDate:     ptr.Ptr("2024-03-05"),
	})

	require.NoError(t, err)
	require.Len(t, resp.Slots, 2)
	assert.True(t, resp.Slots[0].StartTime.Before(resp.Slots[1].StartTime))
	assert.Equal(t, time.Date(2024, 3, 6, 0, 0, 0, 0, f.loc), resp.To)
	assert.Equal(t, "Europe/Berlin", resp.Timezone)
}

func TestService_FindAvailable_DefaultWindow(t *testing.T) {
	f := setup(t)
	f.addSlot(time.Date(2024, 3, 11, 12, 0, 0, 0, f.loc), domain.SlotStatusAvailable)
	f.addSlot(time.Date(2024, 3, 12, 12, 0, 0, 0, f.loc), domain.SlotStatusAvailable)

	resp, err := f.svc.FindAvailable(context.Background(), &models.FindAvailableRequest{
		CalendarID:  f.calendar.ID,
		EventTypeID: f.eventType.ID,
		StartDate:   "2024-03-04",
	})

	require.NoError(t, err)
	assert.Len(t, resp.Slots, 1)
	assert.Equal(t, time.Date(2024, 3, 12, 0, 0, 0, 0, f.loc), resp.To)
}

func TestService_FindAvailable_Errors(t *testing.T) {
	f := setup(t)
	foreignCal := f.store.AddCalendar(domain.Calendar{OwnerID: ownerID, Name: "Other", Slug: "other"})
	foreignET := f.store.AddEventType(domain.EventType{CalendarID: foreignCal.ID, Title: "Other", Slug: "other", Duration: 15})

	tests := []struct {
		name    string
		req     models.FindAvailableRequest
		wantErr error
	}{
		{name: "malformed calendar id", req: models.FindAvailableRequest{CalendarID: "bad", EventTypeID: f.eventType.ID, StartDate: "2024-03-04"}, wantErr: ErrInvalidInput},
		{name: "unknown calendar", req: models.FindAvailableRequest{CalendarID: ids.New(), EventTypeID: f.eventType.ID, StartDate: "2024-03-04"}, wantErr: ErrCalendarNotFound},
		{name: "bad start date", req: models.FindAvailableRequest{CalendarID: f.calendar.ID, EventTypeID: f.eventType.ID, StartDate: "04.03.2024"}, wantErr: ErrInvalidInput},
		{name: "end before start", req: models.FindAvailableRequest{CalendarID: f.calendar.ID, EventTypeID: f.eventType.ID, StartDate: "2024-03-04", EndDate: ptr.Ptr("2024-03-01")}, wantErr: ErrInvalidInput},
		{name: "event type of another calendar", req: models.FindAvailableRequest{CalendarID: f.calendar.ID, EventTypeID: foreignET.ID, StartDate: "2024-03-04"}, wantErr: ErrEventTypeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := f.svc.FindAvailable(context.Background(), &req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestService_ListByCalendar_Filters(t *testing.T) {
	f := setup(t)
	f.addSlot(time.Date(2024, 3, 4, 9, 0, 0, 0, f.loc), domain.SlotStatusAvailable)
	f.addSlot(time.Date(2024, 3, 4, 10, 0, 0, 0, f.loc), domain.SlotStatusBooked)

	all, err := f.svc.ListByCalendar(context.Background(), &models.ListSlotsRequest{UserID: ownerID, CalendarID: f.calendar.ID})
	require.NoError(t, err)
	assert.Len(t, all.Slots, 2)

	booked, err := f.svc.ListByCalendar(context.Background(), &models.ListSlotsRequest{
		UserID: ownerID, CalendarID: f.calendar.ID, Status: ptr.Ptr("BOOKED"),
	})
	require.NoError(t, err)
	require.Len(t, booked.Slots, 1)
	assert.Equal(t, "BOOKED", booked.Slots[0].Status)

	_, err = f.svc.ListByCalendar(context.Background(), &models.ListSlotsRequest{
		UserID: ownerID, CalendarID: f.calendar.ID, Status: ptr.Ptr("HELD"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.ListByCalendar(context.Background(), &models.ListSlotsRequest{UserID: ownerID + 1, CalendarID: f.calendar.ID})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestService_UpdateAndDelete(t *testing.T) {
	f := setup(t)
	slot := f.addSlot(time.Date(2024, 3, 4, 9, 0, 0, 0, f.loc), domain.SlotStatusAvailable)

	_, err := f.svc.Update(context.Background(), slot.ID, &models.UpdateSlotRequest{UserID: ownerID, Status: "GONE"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	resp, err := f.svc.Update(context.Background(), slot.ID, &models.UpdateSlotRequest{UserID: ownerID, Status: "BOOKED"})
	require.NoError(t, err)
	assert.Equal(t, "BOOKED", resp.Status)
	assert.Equal(t, domain.SlotStatusBooked, f.store.SlotStatus(slot.ID))

	_, err = f.svc.GetByID(context.Background(), slot.ID, ownerID+1)
	assert.ErrorIs(t, err, ErrAccessDenied)

	require.NoError(t, f.svc.Delete(context.Background(), slot.ID, ownerID))
	_, err = f.svc.GetByID(context.Background(), slot.ID, ownerID)
	assert.ErrorIs(t, err, ErrSlotNotFound)
}
