package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/ids"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"id",
	"slot_id",
	"calendar_id",
	"event_type_id",
	"attendee_name",
	"attendee_email",
	"attendee_phone",
	"notes",
	"status",
	"cancel_reason",
	"cancelled_at",
	"reschedule_previous_slot_id",
	"reschedule_reason",
	"start_time",
	"end_time",
	"created_at",
	"updated_at",
}

var returningBooking = "RETURNING " + strings.Join(bookingColumns, ", ")

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция, использует её: создание бронирования
// и резервирование слота должны выполняться в одной транзакции.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if booking.ID == "" {
		booking.ID = ids.New()
	}

	var previousSlotID, rescheduleReason interface{}
	if booking.RescheduleInfo != nil {
		previousSlotID = booking.RescheduleInfo.PreviousSlotID
		rescheduleReason = booking.RescheduleInfo.Reason
	}

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"id",
			"slot_id",
			"calendar_id",
			"event_type_id",
			"attendee_name",
			"attendee_email",
			"attendee_phone",
			"notes",
			"status",
			"reschedule_previous_slot_id",
			"reschedule_reason",
			"start_time",
			"end_time",
		).
		Values(
			booking.ID,
			booking.SlotID,
			booking.CalendarID,
			booking.EventTypeID,
			booking.AttendeeName,
			booking.AttendeeEmail,
			booking.AttendeePhone,
			booking.Notes,
			booking.Status,
			previousSlotID,
			rescheduleReason,
			booking.StartTime,
			booking.EndTime,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlotAlreadyBooked
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// List возвращает бронирования по возрастанию начала.
// calendarIDs ограничивает выборку календарями; пустой список означает отсутствие фильтра.
func (r *Repository) List(ctx context.Context, calendarIDs []string) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		OrderBy("start_time ASC")

	if len(calendarIDs) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"calendar_id": calendarIDs})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan booking: %w", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows iteration: %w", ErrScanRow, err)
	}

	return bookings, nil
}

// Update обновляет статус и заметки бронирования. Состояние слота не меняется.
func (r *Repository) Update(ctx context.Context, id string, status *domain.BookingStatus, notes *string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("bookings").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix(returningBooking)

	if status != nil {
		updateBuilder = updateBuilder.Set("status", *status)
	}
	if notes != nil {
		updateBuilder = updateBuilder.Set("notes", *notes)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %w", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlotAlreadyBooked
		}
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	return booking, nil
}

// Cancel переводит бронирование CONFIRMED -> CANCELLED одним условным UPDATE.
// Ноль измененных строк означает, что бронирование не в статусе CONFIRMED.
func (r *Repository) Cancel(ctx context.Context, id string, reason *string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.BookingStatusCancelled).
		Set("cancel_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.BookingStatusConfirmed}).
		Suffix(returningBooking).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Cancel - build update query: %w", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCannotCancel
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Cancel - execute update: %w", ErrExecQuery, err)
	}

	return booking, nil
}

// Delete удаляет бронирование. Слот при этом не освобождается.
func (r *Repository) Delete(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
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
		return ErrBookingNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var previousSlotID, rescheduleReason sql.NullString

	err := row.Scan(
		&booking.ID,
		&booking.SlotID,
		&booking.CalendarID,
		&booking.EventTypeID,
		&booking.AttendeeName,
		&booking.AttendeeEmail,
		&booking.AttendeePhone,
		&booking.Notes,
		&booking.Status,
		&booking.CancelReason,
		&booking.CancelledAt,
		&previousSlotID,
		&rescheduleReason,
		&booking.StartTime,
		&booking.EndTime,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if previousSlotID.Valid {
		booking.RescheduleInfo = &domain.RescheduleInfo{PreviousSlotID: previousSlotID.String}
		if rescheduleReason.Valid {
			reason := rescheduleReason.String
			booking.RescheduleInfo.Reason = &reason
		}
	}

	return &booking, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
