package schedule

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

var scheduleColumns = []string{
	"id",
	"calendar_id",
	"name",
	"days_of_week",
	"start_time",
	"end_time",
	"created_at",
	"updated_at",
}

// Repository репозиторий расписаний доступности
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает расписание
func (r *Repository) Create(ctx context.Context, schedule *domain.AvailabilitySchedule) (*domain.AvailabilitySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if schedule.ID == "" {
		schedule.ID = ids.New()
	}

	query, args, err := psqlbuilder.Insert("availability_schedules").
		Columns("id", "calendar_id", "name", "days_of_week", "start_time", "end_time").
		Values(
			schedule.ID,
			schedule.CalendarID,
			schedule.Name,
			toInt64Array(schedule.DaysOfWeek),
			schedule.StartTime,
			schedule.EndTime,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&schedule.CreatedAt, &schedule.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return schedule, nil
}

// GetByID получает расписание по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.AvailabilitySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(scheduleColumns...).
		From("availability_schedules").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	schedule, err := scanSchedule(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan schedule: %w", ErrScanRow, err)
	}

	return schedule, nil
}

// ListByCalendar возвращает расписания календаря
func (r *Repository) ListByCalendar(ctx context.Context, calendarID string) ([]*domain.AvailabilitySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(scheduleColumns...).
		From("availability_schedules").
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

	schedules := make([]*domain.AvailabilitySchedule, 0)
	for rows.Next() {
		schedule, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByCalendar - scan schedule: %w", ErrScanRow, err)
		}
		schedules = append(schedules, schedule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByCalendar - rows iteration: %w", ErrScanRow, err)
	}

	return schedules, nil
}

// Update перезаписывает изменяемые поля расписания
func (r *Repository) Update(ctx context.Context, schedule *domain.AvailabilitySchedule) (*domain.AvailabilitySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("availability_schedules").
		Set("name", schedule.Name).
		Set("days_of_week", toInt64Array(schedule.DaysOfWeek)).
		Set("start_time", schedule.StartTime).
		Set("end_time", schedule.EndTime).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": schedule.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&schedule.CreatedAt, &schedule.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	return schedule, nil
}

// Delete удаляет расписание. Сгенерированные по нему слоты не затрагиваются.
func (r *Repository) Delete(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("availability_schedules").
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
		return ErrScheduleNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSchedule(row rowScanner) (*domain.AvailabilitySchedule, error) {
	var schedule domain.AvailabilitySchedule
	var days pq.Int64Array

	err := row.Scan(
		&schedule.ID,
		&schedule.CalendarID,
		&schedule.Name,
		&days,
		&schedule.StartTime,
		&schedule.EndTime,
		&schedule.CreatedAt,
		&schedule.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	schedule.DaysOfWeek = make([]int, 0, len(days))
	for _, d := range days {
		schedule.DaysOfWeek = append(schedule.DaysOfWeek, int(d))
	}

	return &schedule, nil
}

func toInt64Array(days []int) pq.Int64Array {
	arr := make(pq.Int64Array, 0, len(days))
	for _, d := range days {
		arr = append(arr, int64(d))
	}
	return arr
}
