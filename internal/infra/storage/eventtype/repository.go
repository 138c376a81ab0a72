package eventtype

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/ids"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

var eventTypeColumns = []string{
	"id",
	"calendar_id",
	"title",
	"slug",
	"description",
	"duration",
	"color",
	"availability_schedule_id",
	"buffer_time_before",
	"buffer_time_after",
	"created_at",
	"updated_at",
}

// Repository репозиторий типов событий
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория типов событий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает тип события
func (r *Repository) Create(ctx context.Context, eventType *domain.EventType) (*domain.EventType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if eventType.ID == "" {
		eventType.ID = ids.New()
	}

	query, args, err := psqlbuilder.Insert("event_types").
		Columns(
			"id",
			"calendar_id",
			"title",
			"slug",
			"description",
			"duration",
			"color",
			"availability_schedule_id",
			"buffer_time_before",
			"buffer_time_after",
		).
		Values(
			eventType.ID,
			eventType.CalendarID,
			eventType.Title,
			eventType.Slug,
			eventType.Description,
			eventType.Duration,
			eventType.Color,
			eventType.AvailabilityScheduleID,
			eventType.BufferTimeBefore,
			eventType.BufferTimeAfter,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&eventType.CreatedAt, &eventType.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateSlug
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return eventType, nil
}

// GetByID получает тип события по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.EventType, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetBySlug получает тип события по slug внутри календаря
func (r *Repository) GetBySlug(ctx context.Context, calendarID, slug string) (*domain.EventType, error) {
	return r.getOne(ctx, "GetBySlug", squirrel.Eq{"calendar_id": calendarID, "slug": slug})
}

// ListByCalendar возвращает все типы событий календаря
func (r *Repository) ListByCalendar(ctx context.Context, calendarID string) ([]*domain.EventType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(eventTypeColumns...).
		From("event_types").
		Where(squirrel.Eq{"calendar_id": calendarID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByCalendar - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByCalendar - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	eventTypes := make([]*domain.EventType, 0)
	for rows.Next() {
		eventType, err := scanEventType(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByCalendar - scan event type: %w", ErrScanRow, err)
		}
		eventTypes = append(eventTypes, eventType)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByCalendar - rows iteration: %w", ErrScanRow, err)
	}

	return eventTypes, nil
}

// ExistsSlug проверяет, занят ли slug в календаре.
// excludeID позволяет не учитывать сам обновляемый тип события.
func (r *Repository) ExistsSlug(ctx context.Context, calendarID, slug string, excludeID *string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	where := squirrel.And{squirrel.Eq{"calendar_id": calendarID, "slug": slug}}
	if excludeID != nil {
		where = append(where, squirrel.NotEq{"id": *excludeID})
	}

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("event_types").
		Where(where).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ExistsSlug - build select query: %w", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: ExistsSlug - scan count: %w", ErrScanRow, err)
	}

	return count > 0, nil
}

// Update перезаписывает изменяемые поля типа события
func (r *Repository) Update(ctx context.Context, eventType *domain.EventType) (*domain.EventType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("event_types").
		Set("title", eventType.Title).
		Set("slug", eventType.Slug).
		Set("description", eventType.Description).
		Set("duration", eventType.Duration).
		Set("color", eventType.Color).
		Set("availability_schedule_id", eventType.AvailabilityScheduleID).
		Set("buffer_time_before", eventType.BufferTimeBefore).
		Set("buffer_time_after", eventType.BufferTimeAfter).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": eventType.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&eventType.CreatedAt, &eventType.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEventTypeNotFound
	}
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateSlug
		}
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	return eventType, nil
}

// Delete удаляет тип события без каскада на слоты
func (r *Repository) Delete(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("event_types").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrEventTypeNotFound
	}

	return nil
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Eq) (*domain.EventType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(eventTypeColumns...).
		From("event_types").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, op, err)
	}

	eventType, err := scanEventType(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEventTypeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan event type: %w", ErrScanRow, op, err)
	}

	return eventType, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEventType(row rowScanner) (*domain.EventType, error) {
	var eventType domain.EventType
	err := row.Scan(
		&eventType.ID,
		&eventType.CalendarID,
		&eventType.Title,
		&eventType.Slug,
		&eventType.Description,
		&eventType.Duration,
		&eventType.Color,
		&eventType.AvailabilityScheduleID,
		&eventType.BufferTimeBefore,
		&eventType.BufferTimeAfter,
		&eventType.CreatedAt,
		&eventType.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &eventType, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
