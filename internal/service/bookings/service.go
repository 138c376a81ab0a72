package bookings

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/booking"
	slotRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SchedulingService/internal/service/calendars"
	"github.com/m04kA/SMC-SchedulingService/pkg/ids"
	"github.com/m04kA/SMC-SchedulingService/pkg/txmanager"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	slotRepo     SlotRepository
	calendarRepo CalendarRepository
	calendars    CalendarAccessChecker
	txManager    TransactionManager
	metrics      Metrics
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	calendarRepo CalendarRepository,
	calendars CalendarAccessChecker,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
		calendarRepo: calendarRepo,
		calendars:    calendars,
		txManager:    txManager,
		metrics:      metrics,
		logger:       logger,
	}
}

// GetByID получает бронирование по ID.
// Доступно только владельцу календаря, в котором сделано бронирование.
func (s *Service) GetByID(ctx context.Context, id string, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for user=%d", id, userID)

	booking, err := s.getOwned(ctx, "GetByID", id, userID)
	if err != nil {
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// List возвращает бронирования владельца.
// Без calendarID возвращаются бронирования по всем календарям пользователя.
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	var calendarIDs []string

	if req.CalendarID != nil {
		if err := s.checkCalendarAccess(ctx, *req.CalendarID, req.UserID); err != nil {
			return nil, err
		}
		calendarIDs = []string{*req.CalendarID}
	} else {
		owned, err := s.calendarRepo.ListByOwner(ctx, req.UserID)
		if err != nil {
			s.logger.Error("ListBookings: failed to list calendars for user=%d: %v", req.UserID, err)
			return nil, fmt.Errorf("%w: List - calendars: %w", ErrInternal, err)
		}
		// пустой список в репозитории означает "без фильтра", поэтому выходим раньше
		if len(owned) == 0 {
			return models.FromDomainBookingList(nil), nil
		}
		for _, c := range owned {
			calendarIDs = append(calendarIDs, c.ID)
		}
	}

	bookings, err := s.bookingRepo.List(ctx, calendarIDs)
	if err != nil {
		s.logger.Error("ListBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: List - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("ListBookings: fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// Update обновляет статус и/или заметки бронирования без сверки со слотом
func (s *Service) Update(ctx context.Context, id string, req *models.UpdateBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateBooking: id=%s by user=%d", id, req.UserID)

	var status *domain.BookingStatus
	if req.Status != nil {
		st := domain.BookingStatus(*req.Status)
		if !st.IsValid() {
			s.logger.Warn("UpdateBooking: invalid status=%s for booking id=%s", *req.Status, id)
			return nil, fmt.Errorf("%w: unknown booking status %q", ErrInvalidInput, *req.Status)
		}
		status = &st
	}
	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return nil, fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	if _, err := s.getOwned(ctx, "UpdateBooking", id, req.UserID); err != nil {
		return nil, err
	}

	updated, err := s.bookingRepo.Update(ctx, id, status, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			return nil, ErrBookingNotFound
		case errors.Is(err, bookingRepo.ErrSlotAlreadyBooked):
			s.logger.Warn("UpdateBooking: slot of booking id=%s already has a confirmed booking", id)
			return nil, ErrSlotAlreadyBooked
		}
		s.logger.Error("UpdateBooking: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("UpdateBooking: updated booking id=%s, status=%s", id, updated.Status)
	return models.FromDomainBooking(updated), nil
}

// Cancel отменяет бронирование и освобождает слот в одной транзакции.
// Отменить можно только бронирование в статусе CONFIRMED.
func (s *Service) Cancel(ctx context.Context, id string, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%s", id)

	if err := ids.Validate(id); err != nil {
		return nil, fmt.Errorf("%w: bookingId: %w", ErrInvalidInput, err)
	}
	if req.Reason != nil && utf8.RuneCountInString(*req.Reason) > domain.MaxCancelReasonLength {
		return nil, fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxCancelReasonLength)
	}

	var cancelled *domain.Booking
	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		booking, err := s.bookingRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				s.logger.Warn("Cancel: booking id=%s not found", id)
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: Cancel - repository error: %w", ErrInternal, err)
		}

		if !booking.CanBeCancelled() {
			s.logger.Warn("Cancel: booking id=%s cannot be cancelled, status=%s", id, booking.Status)
			return ErrCannotCancel
		}

		cancelled, err = s.bookingRepo.Cancel(ctx, id, req.Reason)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrCannotCancel) {
				return ErrCannotCancel
			}
			return fmt.Errorf("%w: Cancel - repository error: %w", ErrInternal, err)
		}

		if err := s.slotRepo.Release(ctx, booking.SlotID); err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotBooked) || errors.Is(err, slotRepo.ErrSlotNotFound) {
				s.logger.Warn("Cancel: slot id=%s of booking id=%s was not booked, nothing to release", booking.SlotID, id)
				return nil
			}
			return fmt.Errorf("%w: Cancel - release slot: %w", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, txmanager.ErrSerializationFailure):
			s.logger.Warn("Cancel: booking id=%s was modified concurrently: %v", id, err)
			return nil, ErrConcurrentUpdate
		case errors.Is(err, ErrInternal):
			s.logger.Error("Cancel: failed to cancel booking id=%s: %v", id, err)
		}
		return nil, err
	}

	s.metrics.ObserveBookingCancelled()
	s.logger.Info("Cancel: cancelled booking id=%s, released slot id=%s", id, cancelled.SlotID)
	return models.FromDomainBooking(cancelled), nil
}

// Delete удаляет бронирование. Слот не освобождается.
func (s *Service) Delete(ctx context.Context, id string, userID int64) error {
	if _, err := s.getOwned(ctx, "DeleteBooking", id, userID); err != nil {
		return err
	}

	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("DeleteBooking: repository error for booking id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("DeleteBooking: deleted booking id=%s", id)
	return nil
}

// Вспомогательные методы

func (s *Service) getOwned(ctx context.Context, op, id string, userID int64) (*domain.Booking, error) {
	if err := ids.Validate(id); err != nil {
		return nil, fmt.Errorf("%w: bookingId: %w", ErrInvalidInput, err)
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}

	if err := s.checkCalendarAccess(ctx, booking.CalendarID, userID); err != nil {
		s.logger.Warn("%s: access denied for user=%d to booking id=%s", op, userID, id)
		return nil, err
	}

	return booking, nil
}

func (s *Service) checkCalendarAccess(ctx context.Context, calendarID string, userID int64) error {
	_, err := s.calendars.CheckOwner(ctx, calendarID, userID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, calendars.ErrInvalidInput):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	case errors.Is(err, calendars.ErrCalendarNotFound):
		return ErrCalendarNotFound
	case errors.Is(err, calendars.ErrAccessDenied):
		return ErrAccessDenied
	default:
		return fmt.Errorf("%w: calendar access: %w", ErrInternal, err)
	}
}
