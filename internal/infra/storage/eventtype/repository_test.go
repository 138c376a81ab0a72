package eventtype

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

const (
	testEventTypeID = "7c9e6679-7425-40de-944b-e07fc1f90ae7"
	testCalendarID  = "3f1c5d9e-2b7a-4c1e-9f0a-6d8e2b4a1c37"
	testScheduleID  = "5a0f2c7e-8d41-4b6a-9e3c-1f2d3e4a5b6c"
)

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(db), mock
}

func eventTypeRow(now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows(eventTypeColumns).
		AddRow(testEventTypeID, testCalendarID, "Консультация", "consultation", nil, 30, "#3174F1", testScheduleID, 0, 10, now, now)
}

func TestRepository_Create_DuplicateSlug(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO event_types")).
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := repo.Create(context.Background(), &domain.EventType{
		CalendarID: testCalendarID,
		Title:      "Консультация",
		Slug:       "consultation",
		Duration:   30,
	})

	assert.ErrorIs(t, err, ErrDuplicateSlug)
}

func TestRepository_GetBySlug(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("FROM event_types WHERE calendar_id = $1 AND slug = $2")).
		WithArgs(testCalendarID, "consultation").
		WillReturnRows(eventTypeRow(now))

	eventType, err := repo.GetBySlug(context.Background(), testCalendarID, "consultation")

	require.NoError(t, err)
	assert.Equal(t, testEventTypeID, eventType.ID)
	assert.Equal(t, 30, eventType.Duration)
	assert.Equal(t, 10, eventType.BufferTimeAfter)
	assert.Equal(t, testScheduleID, eventType.AvailabilityScheduleID)
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("FROM event_types").
		WithArgs(testEventTypeID).
		WillReturnRows(sqlmock.NewRows(eventTypeColumns))

	_, err := repo.GetByID(context.Background(), testEventTypeID)

	assert.ErrorIs(t, err, ErrEventTypeNotFound)
}

func TestRepository_ExistsSlug(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM event_types WHERE (calendar_id = $1 AND slug = $2 AND id <> $3)")).
		WithArgs(testCalendarID, "consultation", testEventTypeID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	exists, err := repo.ExistsSlug(context.Background(), testCalendarID, "consultation", ptr.Ptr(testEventTypeID))

	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListByCalendar(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM event_types WHERE calendar_id = $1 ORDER BY created_at ASC")).
		WithArgs(testCalendarID).
		WillReturnRows(eventTypeRow(time.Now().UTC()))

	eventTypes, err := repo.ListByCalendar(context.Background(), testCalendarID)

	require.NoError(t, err)
	assert.Len(t, eventTypes, 1)
}

func TestRepository_Delete_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec("DELETE FROM event_types").
		WithArgs(testEventTypeID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), testEventTypeID), ErrEventTypeNotFound)
}
