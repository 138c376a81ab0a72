package slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	calendarRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/calendar"
	eventTypeRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/eventtype"
	slotRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-SchedulingService/internal/service/calendars"
	"github.com/m04kA/SMC-SchedulingService/internal/service/slots/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/ids"
)

// Service сервис слотов
type Service struct {
	slotRepo      SlotRepository
	calendarRepo  CalendarRepository
	eventTypeRepo EventTypeRepository
	calendars     CalendarAccessChecker
	logger        Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(
	slotRepo SlotRepository,
	calendarRepo CalendarRepository,
	eventTypeRepo EventTypeRepository,
	calendars CalendarAccessChecker,
	logger Logger,
) *Service {
	return &Service{
		slotRepo:      slotRepo,
		calendarRepo:  calendarRepo,
		eventTypeRepo: eventTypeRepo,
		calendars:     calendars,
		logger:        logger,
	}
}

// ListByCalendar возвращает слоты календаря владельцу, отсортированные по началу
func (s *Service) ListByCalendar(ctx context.Context, req *models.ListSlotsRequest) (*models.SlotListResponse, error) {
	if err := s.checkCalendarAccess(ctx, req.CalendarID, req.UserID); err != nil {
		return nil, err
	}

	filter := domain.SlotFilter{CalendarID: req.CalendarID}
	if req.EventTypeID != nil {
		if err := ids.Validate(*req.EventTypeID); err != nil {
			return nil, fmt.Errorf("%w: eventTypeId: %v", ErrInvalidInput, err)
		}
		filter.EventTypeID = req.EventTypeID
	}
	if req.Status != nil {
		status := domain.SlotStatus(*req.Status)
		if !status.IsValid() {
			return nil, fmt.Errorf("%w: unknown slot status %q", ErrInvalidInput, *req.Status)
		}
		filter.Status = &status
	}

	slots, err := s.slotRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListSlots: repository error for calendar=%s: %v", req.CalendarID, err)
		return nil, fmt.Errorf("%w: ListByCalendar - repository error: %v", ErrInternal, err)
	}

	return &models.SlotListResponse{Slots: models.FromDomainSlots(slots)}, nil
}

// FindAvailable возвращает свободные слоты типа события в окне дат.
// Даты трактуются в часовом поясе календаря, последний день входит в окно целиком.
func (s *Service) FindAvailable(ctx context.Context, req *models.FindAvailableRequest) (*models.AvailableSlotsResponse, error) {
	if err := ids.ValidateAll(req.CalendarID, req.EventTypeID); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	calendar, err := s.calendarRepo.GetByID(ctx, req.CalendarID)
	if err != nil {
		if errors.Is(err, calendarRepo.ErrCalendarNotFound) {
			s.logger.Warn("FindAvailable: calendar id=%s not found", req.CalendarID)
			return nil, ErrCalendarNotFound
		}
		s.logger.Error("FindAvailable: calendar lookup failed: %v", err)
		return nil, fmt.Errorf("%w: FindAvailable - calendar: %v", ErrInternal, err)
	}
	loc := calendar.Location()

	startDay, err := domain.ParseDate(req.StartDate, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: startDate: %v", ErrInvalidInput, err)
	}
	endDay := startDay.AddDate(0, 0, domain.DefaultAvailabilityDays)
	if req.EndDate != nil && *req.EndDate != "" {
		if endDay, err = domain.ParseDate(*req.EndDate, loc); err != nil {
			return nil, fmt.Errorf("%w: endDate: %v", ErrInvalidInput, err)
		}
	}
	if endDay.Before(startDay) {
		return nil, fmt.Errorf("%w: endDate must not be before startDate", ErrInvalidInput)
	}

	eventType, err := s.eventTypeRepo.GetByID(ctx, req.EventTypeID)
	if err != nil {
		if errors.Is(err, eventTypeRepo.ErrEventTypeNotFound) {
			return nil, ErrEventTypeNotFound
		}
		s.logger.Error("FindAvailable: event type lookup failed: %v", err)
		return nil, fmt.Errorf("%w: FindAvailable - event type: %v", ErrInternal, err)
	}
	if eventType.CalendarID != calendar.ID {
		s.logger.Warn("FindAvailable: event type id=%s does not belong to calendar=%s", eventType.ID, calendar.ID)
		return nil, ErrEventTypeNotFound
	}

	from, to := domain.DayRange(startDay, endDay, loc)
	slots, err := s.slotRepo.ListAvailable(ctx, calendar.ID, eventType.ID, from, to)
	if err != nil {
		s.logger.Error("FindAvailable: repository error: %v", err)
		return nil, fmt.Errorf("%w: FindAvailable - repository error: %v", ErrInternal, err)
	}

	return &models.AvailableSlotsResponse{
		CalendarID:  calendar.ID,
		EventTypeID: eventType.ID,
		Timezone:    calendar.Timezone,
		From:        from,
		To:          to,
		Slots:       models.FromDomainSlots(slots),
	}, nil
}

// GetByID возвращает слот владельцу календаря
func (s *Service) GetByID(ctx context.Context, id string, userID int64) (*models.SlotResponse, error) {
	slot, err := s.getOwned(ctx, "GetSlot", id, userID)
	if err != nil {
		return nil, err
	}
	return models.FromDomainSlot(slot), nil
}

// Update меняет статус слота вручную. Бронирования при этом не сверяются.
func (s *Service) Update(ctx context.Context, id string, req *models.UpdateSlotRequest) (*models.SlotResponse, error) {
	status := domain.SlotStatus(req.Status)
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown slot status %q", ErrInvalidInput, req.Status)
	}

	if _, err := s.getOwned(ctx, "UpdateSlot", id, req.UserID); err != nil {
		return nil, err
	}

	updated, err := s.slotRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			return nil, ErrSlotNotFound
		}
		s.logger.Error("UpdateSlot: repository error for id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateSlot: slot id=%s set to %s by user=%d", id, status, req.UserID)
	return models.FromDomainSlot(updated), nil
}

// Delete удаляет слот
func (s *Service) Delete(ctx context.Context, id string, userID int64) error {
	if _, err := s.getOwned(ctx, "DeleteSlot", id, userID); err != nil {
		return err
	}

	if err := s.slotRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			return ErrSlotNotFound
		}
		s.logger.Error("DeleteSlot: repository error for id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteSlot: deleted slot id=%s", id)
	return nil
}

func (s *Service) getOwned(ctx context.Context, op, id string, userID int64) (*domain.Slot, error) {
	if err := ids.Validate(id); err != nil {
		return nil, fmt.Errorf("%w: slotId: %v", ErrInvalidInput, err)
	}

	slot, err := s.slotRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("%s: slot id=%s not found", op, id)
			return nil, ErrSlotNotFound
		}
		s.logger.Error("%s: repository error for slot id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if err := s.checkCalendarAccess(ctx, slot.CalendarID, userID); err != nil {
		return nil, err
	}

	return slot, nil
}

func (s *Service) checkCalendarAccess(ctx context.Context, calendarID string, userID int64) error {
	_, err := s.calendars.CheckOwner(ctx, calendarID, userID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, calendars.ErrInvalidInput):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	case errors.Is(err, calendars.ErrCalendarNotFound):
		return ErrCalendarNotFound
	case errors.Is(err, calendars.ErrAccessDenied):
		return ErrAccessDenied
	default:
		return fmt.Errorf("%w: calendar access: %v", ErrInternal, err)
	}
}
