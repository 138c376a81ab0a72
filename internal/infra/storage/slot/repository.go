package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/ids"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

var slotColumns = []string{
	"id",
	"calendar_id",
	"event_type_id",
	"start_time",
	"end_time",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий слотов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateMany вставляет слоты одним запросом и возвращает количество созданных.
// Слотам без ID присваивается новый UUID.
func (r *Repository) CreateMany(ctx context.Context, slots []*domain.Slot) (int, error) {
	if len(slots) == 0 {
		return 0, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Insert("slots").
		Columns("id", "calendar_id", "event_type_id", "start_time", "end_time", "status")

	for _, s := range slots {
		if s.ID == "" {
			s.ID = ids.New()
		}
		if s.Status == "" {
			s.Status = domain.SlotStatusAvailable
		}
		builder = builder.Values(s.ID, s.CalendarID, s.EventTypeID, s.StartTime, s.EndTime, s.Status)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CreateMany - build insert query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CreateMany - execute insert: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: CreateMany - get rows affected: %w", ErrExecQuery, err)
	}

	return int(rowsAffected), nil
}

// GetByID получает слот по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %w", ErrScanRow, err)
	}

	return slot, nil
}

// ListAvailable возвращает свободные слоты типа события в окне [from, to) по возрастанию начала
func (r *Repository) ListAvailable(ctx context.Context, calendarID, eventTypeID string, from, to time.Time) ([]*domain.Slot, error) {
	status := domain.SlotStatusAvailable
	return r.List(ctx, domain.SlotFilter{
		CalendarID:  calendarID,
		EventTypeID: &eventTypeID,
		Status:      &status,
		From:        &from,
		To:          &to,
	})
}

// List возвращает слоты по фильтру, отсортированные по start_time
func (r *Repository) List(ctx context.Context, filter domain.SlotFilter) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(filterConditions(filter)).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.Slot, 0)
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan slot: %w", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows iteration: %w", ErrScanRow, err)
	}

	return slots, nil
}

// CountBooked считает BOOKED слоты типа события, начинающиеся в [from, to)
func (r *Repository) CountBooked(ctx context.Context, eventTypeID string, from, to time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("slots").
		Where(squirrel.Eq{"event_type_id": eventTypeID, "status": domain.SlotStatusBooked}).
		Where(squirrel.GtOrEq{"start_time": from}).
		Where(squirrel.Lt{"start_time": to}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountBooked - build select query: %w", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountBooked - scan count: %w", ErrScanRow, err)
	}

	return count, nil
}

// DeleteAvailableInRange удаляет AVAILABLE слоты типа события, начинающиеся в [from, to).
// BOOKED слоты не затрагиваются.
func (r *Repository) DeleteAvailableInRange(ctx context.Context, eventTypeID string, from, to time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slots").
		Where(squirrel.Eq{"event_type_id": eventTypeID, "status": domain.SlotStatusAvailable}).
		Where(squirrel.GtOrEq{"start_time": from}).
		Where(squirrel.Lt{"start_time": to}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteAvailableInRange - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteAvailableInRange - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteAvailableInRange - get rows affected: %w", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// Reserve атомарно переводит слот AVAILABLE -> BOOKED.
// Если ни одна строка не изменилась, слот уже занят или отсутствует.
func (r *Repository) Reserve(ctx context.Context, id string) error {
	return r.transition(ctx, "Reserve", id, domain.SlotStatusAvailable, domain.SlotStatusBooked, ErrSlotNotAvailable)
}

// Release атомарно переводит слот BOOKED -> AVAILABLE
func (r *Repository) Release(ctx context.Context, id string) error {
	return r.transition(ctx, "Release", id, domain.SlotStatusBooked, domain.SlotStatusAvailable, ErrSlotNotBooked)
}

func (r *Repository) transition(ctx context.Context, op, id string, from, to domain.SlotStatus, errNoRows error) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %w", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return errNoRows
	}

	return nil
}

// UpdateStatus безусловно устанавливает статус слота (ручное администрирование)
func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.SlotStatus) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING id, calendar_id, event_type_id, start_time, end_time, status, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - build update query: %w", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	return slot, nil
}

// Delete удаляет слот
func (r *Repository) Delete(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slots").
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
		return ErrSlotNotFound
	}

	return nil
}

func filterConditions(filter domain.SlotFilter) squirrel.And {
	conditions := squirrel.And{squirrel.Eq{"calendar_id": filter.CalendarID}}
	if filter.EventTypeID != nil {
		conditions = append(conditions, squirrel.Eq{"event_type_id": *filter.EventTypeID})
	}
	if filter.Status != nil {
		conditions = append(conditions, squirrel.Eq{"status": *filter.Status})
	}
	if filter.From != nil {
		conditions = append(conditions, squirrel.GtOrEq{"start_time": *filter.From})
	}
	if filter.To != nil {
		conditions = append(conditions, squirrel.Lt{"start_time": *filter.To})
	}
	return conditions
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSlot(row rowScanner) (*domain.Slot, error) {
	var slot domain.Slot
	err := row.Scan(
		&slot.ID,
		&slot.CalendarID,
		&slot.EventTypeID,
		&slot.StartTime,
		&slot.EndTime,
		&slot.Status,
		&slot.CreatedAt,
		&slot.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &slot, nil
}
