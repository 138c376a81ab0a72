package eventtypes

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/calendars"
	"github.com/m04kA/SMC-SchedulingService/internal/service/eventtypes/models"
	"github.com/m04kA/SMC-SchedulingService/internal/testfixtures"
	"github.com/m04kA/SMC-SchedulingService/pkg/ids"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

const ownerID int64 = 11

type fixture struct {
	svc      *Service
	store    *testfixtures.Store
	calendar *domain.Calendar
	schedule *domain.AvailabilitySchedule
}

func setup(t *testing.T) fixture {
	t.Helper()
	store := testfixtures.NewStore()
	log := logger.NewNop()
	access := calendars.NewService(store.Calendars(), store.EventTypes(), log)
	cal := store.AddCalendar(domain.Calendar{OwnerID: ownerID, Name: "Clinic", Slug: "clinic"})
	sched := store.AddSchedule(domain.AvailabilitySchedule{
		CalendarID: cal.ID, Name: "Weekdays", DaysOfWeek: []int{1, 2, 3, 4, 5}, StartTime: "09:00", EndTime: "17:00",
	})
	svc := NewService(store.EventTypes(), store.Schedules(), store.Calendars(), access, log)
	return fixture{svc: svc, store: store, calendar: cal, schedule: sched}
}

func (f fixture) createRequest() *models.CreateEventTypeRequest {
	return &models.CreateEventTypeRequest{
		UserID:                 ownerID,
		CalendarID:             f.calendar.ID,
		Title:                  "Initial Consultation",
		Duration:               30,
		AvailabilityScheduleID: f.schedule.ID,
	}
}

func TestService_Create_Defaults(t *testing.T) {
	f := setup(t)

	resp, err := f.svc.Create(context.Background(), f.createRequest())

	require.NoError(t, err)
	assert.Equal(t, "initial-consultation", resp.Slug)
	assert.Equal(t, domain.DefaultEventColor, resp.Color)
	assert.Zero(t, resp.BufferTimeBefore)
	assert.Zero(t, resp.BufferTimeAfter)
}

func TestService_Create_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *models.CreateEventTypeRequest)
	}{
		{name: "short title", mutate: func(r *models.CreateEventTypeRequest) { r.Title = "ab" }},
		{name: "duration too short", mutate: func(r *models.CreateEventTypeRequest) { r.Duration = 4 }},
		{name: "duration too long", mutate: func(r *models.CreateEventTypeRequest) { r.Duration = 241 }},
		{name: "bad color", mutate: func(r *models.CreateEventTypeRequest) { r.Color = ptr.Ptr("blue") }},
		{name: "negative buffer", mutate: func(r *models.CreateEventTypeRequest) { r.BufferTimeBefore = ptr.Ptr(-1) }},
		{name: "buffer too long", mutate: func(r *models.CreateEventTypeRequest) { r.BufferTimeAfter = ptr.Ptr(61) }},
		{name: "unsafe slug", mutate: func(r *models.CreateEventTypeRequest) { r.Slug = ptr.Ptr("Has Spaces") }},
		{name: "malformed schedule id", mutate: func(r *models.CreateEventTypeRequest) { r.AvailabilityScheduleID = "x" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)
			req := f.createRequest()
			tt.mutate(req)

			_, err := f.svc.Create(context.Background(), req)

			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestService_Create_ScheduleFromOtherCalendar(t *testing.T) {
	f := setup(t)
	other := f.store.AddCalendar(domain.Calendar{OwnerID: ownerID, Name: "Other", Slug: "other"})
	foreign := f.store.AddSchedule(domain.AvailabilitySchedule{
		CalendarID: other.ID, Name: "Foreign", DaysOfWeek: []int{1}, StartTime: "09:00", EndTime: "10:00",
	})
	req := f.createRequest()
	req.AvailabilityScheduleID = foreign.ID

	_, err := f.svc.Create(context.Background(), req)

	assert.ErrorIs(t, err, ErrScheduleNotFound)
}

func TestService_Create_MissingSchedule(t *testing.T) {
	f := setup(t)
	req := f.createRequest()
	req.AvailabilityScheduleID = ids.New()

	_, err := f.svc.Create(context.Background(), req)

	assert.ErrorIs(t, err, ErrScheduleNotFound)
}

func TestService_Create_DuplicateSlug(t *testing.T) {
	f := setup(t)

	_, err := f.svc.Create(context.Background(), f.createRequest())
	require.NoError(t, err)

	_, err = f.svc.Create(context.Background(), f.createRequest())
	assert.ErrorIs(t, err, ErrDuplicateSlug)
}

func TestService_Update(t *testing.T) {
	f := setup(t)
	created, err := f.svc.Create(context.Background(), f.createRequest())
	require.NoError(t, err)

	resp, err := f.svc.Update(context.Background(), created.ID, &models.UpdateEventTypeRequest{
		UserID:          ownerID,
		Duration:        ptr.Ptr(45),
		BufferTimeAfter: ptr.Ptr(15),
		Slug:            ptr.Ptr("consult"),
	})

	require.NoError(t, err)
	assert.Equal(t, 45, resp.Duration)
	assert.Equal(t, 15, resp.BufferTimeAfter)
	assert.Equal(t, "consult", resp.Slug)
	assert.Equal(t, "Initial Consultation", resp.Title)
}

func TestService_Update_SlugConflict(t *testing.T) {
	f := setup(t)
	_, err := f.svc.Create(context.Background(), f.createRequest())
	require.NoError(t, err)

	req := f.createRequest()
	req.Title = "Follow Up"
	second, err := f.svc.Create(context.Background(), req)
	require.NoError(t, err)

	_, err = f.svc.Update(context.Background(), second.ID, &models.UpdateEventTypeRequest{
		UserID: ownerID,
		Slug:   ptr.Ptr("initial-consultation"),
	})

	assert.ErrorIs(t, err, ErrDuplicateSlug)
}

func TestService_GetBySlug(t *testing.T) {
	f := setup(t)
	created, err := f.svc.Create(context.Background(), f.createRequest())
	require.NoError(t, err)

	got, err := f.svc.GetBySlug(context.Background(), "clinic", "initial-consultation")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = f.svc.GetBySlug(context.Background(), "clinic", "missing")
	assert.ErrorIs(t, err, ErrEventTypeNotFound)

	_, err = f.svc.GetBySlug(context.Background(), "nowhere", "initial-consultation")
	assert.ErrorIs(t, err, ErrCalendarNotFound)
}

func TestService_AccessAndDelete(t *testing.T) {
	f := setup(t)
	created, err := f.svc.Create(context.Background(), f.createRequest())
	require.NoError(t, err)

	_, err = f.svc.GetByID(context.Background(), created.ID, ownerID+1)
	assert.ErrorIs(t, err, ErrAccessDenied)

	list, err := f.svc.ListByCalendar(context.Background(), f.calendar.ID, ownerID)
	require.NoError(t, err)
	assert.Len(t, list.EventTypes, 1)

	require.NoError(t, f.svc.Delete(context.Background(), created.ID, ownerID))

	_, err = f.svc.GetByID(context.Background(), created.ID, ownerID)
	assert.ErrorIs(t, err, ErrEventTypeNotFound)
}
