package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/booking"
	eventTypeRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/eventtype"
	slotRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-SchedulingService/pkg/txmanager"
)

// UseCase use case для создания бронирования
type UseCase struct {
	slotRepo      SlotRepository
	eventTypeRepo EventTypeRepository
	bookingRepo   BookingRepository
	txManager     TransactionManager
	metrics       Metrics
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	eventTypeRepo EventTypeRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:      slotRepo,
		eventTypeRepo: eventTypeRepo,
		bookingRepo:   bookingRepo,
		txManager:     txManager,
		metrics:       metrics,
		logger:        logger,
	}
}

// Execute выполняет use case создания бронирования.
// Резервирование слота и запись бронирования выполняются в одной сериализуемой транзакции,
// резервирование - условным UPDATE (AVAILABLE -> BOOKED).
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: slot=%s, email=%s", req.SlotID, req.Email)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Booking

	// 2. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем слот
		slot, err := uc.slotRepo.GetByID(txCtx, req.SlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				uc.logger.Warn("CreateBooking: slot id=%s not found", req.SlotID)
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: failed to get slot: %w", ErrInternal, err)
		}

		// 2.2. Быстрый отказ, если слот уже занят
		if !slot.IsAvailable() {
			uc.logger.Warn("CreateBooking: slot id=%s is %s", slot.ID, slot.Status)
			return ErrSlotNotAvailable
		}

		// 2.3. Тип события должен существовать
		if _, err := uc.eventTypeRepo.GetByID(txCtx, slot.EventTypeID); err != nil {
			if errors.Is(err, eventTypeRepo.ErrEventTypeNotFound) {
				uc.logger.Warn("CreateBooking: event type id=%s of slot id=%s not found", slot.EventTypeID, slot.ID)
				return ErrEventTypeNotFound
			}
			return fmt.Errorf("%w: failed to get event type: %w", ErrInternal, err)
		}

		// 2.4. Атомарно резервируем слот
		if err := uc.slotRepo.Reserve(txCtx, slot.ID); err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotAvailable) {
				uc.logger.Warn("CreateBooking: slot id=%s was reserved concurrently", slot.ID)
				return ErrSlotNotAvailable
			}
			return fmt.Errorf("%w: failed to reserve slot: %w", ErrInternal, err)
		}

		// 2.5. Создаем бронирование, копируя время и принадлежность слота
		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			SlotID:        slot.ID,
			CalendarID:    slot.CalendarID,
			EventTypeID:   slot.EventTypeID,
			AttendeeName:  req.Name,
			AttendeeEmail: req.Email,
			AttendeePhone: req.Phone,
			Notes:         req.Notes,
			Status:        domain.BookingStatusConfirmed,
			StartTime:     slot.StartTime,
			EndTime:       slot.EndTime,
		})
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotAlreadyBooked) {
				return ErrSlotNotAvailable
			}
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrSlotNotAvailable), errors.Is(err, txmanager.ErrSerializationFailure):
			uc.metrics.ObserveBookingConflict()
			return nil, ErrSlotNotAvailable
		case errors.Is(err, ErrInternal):
			uc.logger.Error("CreateBooking: %v", err)
		}
		return nil, err
	}

	uc.metrics.ObserveBookingCreated()
	uc.logger.Info("CreateBooking: successfully created booking id=%s for slot id=%s", result.ID, result.SlotID)

	return &Response{
		ID:            result.ID,
		SlotID:        result.SlotID,
		CalendarID:    result.CalendarID,
		EventTypeID:   result.EventTypeID,
		AttendeeName:  result.AttendeeName,
		AttendeeEmail: result.AttendeeEmail,
		AttendeePhone: result.AttendeePhone,
		Notes:         result.Notes,
		Status:        string(result.Status),
		StartTime:     result.StartTime,
		EndTime:       result.EndTime,
		CreatedAt:     result.CreatedAt,
		UpdatedAt:     result.UpdatedAt,
	}, nil
}
