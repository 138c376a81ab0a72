package calendar

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

var calendarColumns = []string{
	"id",
	"owner_id",
	"name",
	"description",
	"slug",
	"timezone",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с календарями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория календарей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает календарь. Если ID не задан, генерируется новый UUID.
func (r *Repository) Create(ctx context.Context, calendar *domain.Calendar) (*domain.Calendar, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if calendar.ID == "" {
		calendar.ID = ids.New()
	}

	query, args, err := psqlbuilder.Insert("calendars").
		Columns("id", "owner_id", "name", "description", "slug", "timezone").
		Values(calendar.ID, calendar.OwnerID, calendar.Name, calendar.Description, calendar.Slug, calendar.Timezone).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&calendar.CreatedAt, &calendar.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return calendar, nil
}

// GetByID получает календарь по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Calendar, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetBySlug получает календарь по публичному slug
func (r *Repository) GetBySlug(ctx context.Context, slug string) (*domain.Calendar, error) {
	return r.getOne(ctx, "GetBySlug", squirrel.Eq{"slug": slug})
}

// ListByOwner возвращает календари пользователя
func (r *Repository) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Calendar, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(calendarColumns...).
		From("calendars").
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByOwner - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByOwner - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	calendars := make([]*domain.Calendar, 0)
	for rows.Next() {
		calendar, err := scanCalendar(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByOwner - scan calendar: %w", ErrScanRow, err)
		}
		calendars = append(calendars, calendar)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByOwner - rows iteration: %w", ErrScanRow, err)
	}

	return calendars, nil
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Eq) (*domain.Calendar, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(calendarColumns...).
		From("calendars").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, op, err)
	}

	calendar, err := scanCalendar(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCalendarNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan calendar: %w", ErrScanRow, op, err)
	}

	return calendar, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCalendar(row rowScanner) (*domain.Calendar, error) {
	var calendar domain.Calendar
	err := row.Scan(
		&calendar.ID,
		&calendar.OwnerID,
		&calendar.Name,
		&calendar.Description,
		&calendar.Slug,
		&calendar.Timezone,
		&calendar.CreatedAt,
		&calendar.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &calendar, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
