package eventtypes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	calendarRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/calendar"
	eventTypeRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/eventtype"
	scheduleRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-SchedulingService/internal/service/calendars"
	"github.com/m04kA/SMC-SchedulingService/internal/service/eventtypes/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/ids"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

// Service сервис типов событий
type Service struct {
	eventTypeRepo EventTypeRepository
	scheduleRepo  ScheduleRepository
	calendarRepo  CalendarRepository
	calendars     CalendarAccessChecker
	logger        Logger
}

// NewService создает новый экземпляр сервиса типов событий
func NewService(
	eventTypeRepo EventTypeRepository,
	scheduleRepo ScheduleRepository,
	calendarRepo CalendarRepository,
	calendars CalendarAccessChecker,
	logger Logger,
) *Service {
	return &Service{
		eventTypeRepo: eventTypeRepo,
		scheduleRepo:  scheduleRepo,
		calendarRepo:  calendarRepo,
		calendars:     calendars,
		logger:        logger,
	}
}

// Create создает тип события в календаре пользователя
func (s *Service) Create(ctx context.Context, req *models.CreateEventTypeRequest) (*models.EventTypeResponse, error) {
	s.logger.Info("CreateEventType: user=%d, calendar=%s, title=%q", req.UserID, req.CalendarID, req.Title)

	if err := s.checkCalendarAccess(ctx, req.CalendarID, req.UserID); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	eventType := &domain.EventType{
		CalendarID:             req.CalendarID,
		Title:                  title,
		Slug:                   slugFor(title, req.Slug),
		Description:            req.Description,
		Duration:               req.Duration,
		Color:                  ptr.Deref(req.Color, domain.DefaultEventColor),
		AvailabilityScheduleID: req.AvailabilityScheduleID,
		BufferTimeBefore:       ptr.Deref(req.BufferTimeBefore, 0),
		BufferTimeAfter:        ptr.Deref(req.BufferTimeAfter, 0),
	}
	if err := validateEventType(eventType); err != nil {
		s.logger.Warn("CreateEventType: validation failed: %v", err)
		return nil, err
	}

	if err := s.checkSchedule(ctx, eventType.CalendarID, eventType.AvailabilityScheduleID); err != nil {
		return nil, err
	}

	if err := s.checkSlugFree(ctx, eventType.CalendarID, eventType.Slug, nil); err != nil {
		return nil, err
	}

	created, err := s.eventTypeRepo.Create(ctx, eventType)
	if err != nil {
		if errors.Is(err, eventTypeRepo.ErrDuplicateSlug) {
			return nil, ErrDuplicateSlug
		}
		s.logger.Error("CreateEventType: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateEventType: created event type id=%s, slug=%s", created.ID, created.Slug)
	return models.FromDomainEventType(created), nil
}

// GetByID возвращает тип события владельцу календаря
func (s *Service) GetByID(ctx context.Context, id string, userID int64) (*models.EventTypeResponse, error) {
	eventType, err := s.getOwned(ctx, "GetEventType", id, userID)
	if err != nil {
		return nil, err
	}
	return models.FromDomainEventType(eventType), nil
}

// GetBySlug ищет тип события по slug календаря и slug типа (публичный доступ)
func (s *Service) GetBySlug(ctx context.Context, calendarSlug, eventTypeSlug string) (*models.EventTypeResponse, error) {
	calendar, err := s.calendarRepo.GetBySlug(ctx, calendarSlug)
	if err != nil {
		if errors.Is(err, calendarRepo.ErrCalendarNotFound) {
			return nil, ErrCalendarNotFound
		}
		s.logger.Error("GetEventTypeBySlug: calendar lookup failed for slug=%s: %v", calendarSlug, err)
		return nil, fmt.Errorf("%w: GetBySlug - calendar: %v", ErrInternal, err)
	}

	eventType, err := s.eventTypeRepo.GetBySlug(ctx, calendar.ID, eventTypeSlug)
	if err != nil {
		if errors.Is(err, eventTypeRepo.ErrEventTypeNotFound) {
			s.logger.Warn("GetEventTypeBySlug: slug=%s not found in calendar=%s", eventTypeSlug, calendar.ID)
			return nil, ErrEventTypeNotFound
		}
		s.logger.Error("GetEventTypeBySlug: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetBySlug - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainEventType(eventType), nil
}

// ListByCalendar возвращает типы событий календаря
func (s *Service) ListByCalendar(ctx context.Context, calendarID string, userID int64) (*models.EventTypeListResponse, error) {
	if err := s.checkCalendarAccess(ctx, calendarID, userID); err != nil {
		return nil, err
	}

	eventTypes, err := s.eventTypeRepo.ListByCalendar(ctx, calendarID)
	if err != nil {
		s.logger.Error("ListEventTypes: repository error for calendar=%s: %v", calendarID, err)
		return nil, fmt.Errorf("%w: ListByCalendar - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainEventTypeList(eventTypes), nil
}

// Update обновляет переданные поля типа события.
// Уже сгенерированные слоты не пересчитываются.
func (s *Service) Update(ctx context.Context, id string, req *models.UpdateEventTypeRequest) (*models.EventTypeResponse, error) {
	s.logger.Info("UpdateEventType: id=%s by user=%d", id, req.UserID)

	eventType, err := s.getOwned(ctx, "UpdateEventType", id, req.UserID)
	if err != nil {
		return nil, err
	}

	slugChanged := false
	if req.Title != nil {
		eventType.Title = strings.TrimSpace(*req.Title)
	}
	if req.Slug != nil {
		newSlug := slugFor(eventType.Title, req.Slug)
		slugChanged = newSlug != eventType.Slug
		eventType.Slug = newSlug
	}
	if req.Description != nil {
		eventType.Description = req.Description
	}
	if req.Duration != nil {
		eventType.Duration = *req.Duration
	}
	if req.Color != nil {
		eventType.Color = *req.Color
	}
	if req.BufferTimeBefore != nil {
		eventType.BufferTimeBefore = *req.BufferTimeBefore
	}
	if req.BufferTimeAfter != nil {
		eventType.BufferTimeAfter = *req.BufferTimeAfter
	}

	if err := validateEventType(eventType); err != nil {
		s.logger.Warn("UpdateEventType: validation failed: %v", err)
		return nil, err
	}

	if req.AvailabilityScheduleID != nil && *req.AvailabilityScheduleID != eventType.AvailabilityScheduleID {
		if err := s.checkSchedule(ctx, eventType.CalendarID, *req.AvailabilityScheduleID); err != nil {
			return nil, err
		}
		eventType.AvailabilityScheduleID = *req.AvailabilityScheduleID
	}

	if slugChanged {
		if err := s.checkSlugFree(ctx, eventType.CalendarID, eventType.Slug, &eventType.ID); err != nil {
			return nil, err
		}
	}

	updated, err := s.eventTypeRepo.Update(ctx, eventType)
	if err != nil {
		switch {
		case errors.Is(err, eventTypeRepo.ErrEventTypeNotFound):
			return nil, ErrEventTypeNotFound
		case errors.Is(err, eventTypeRepo.ErrDuplicateSlug):
			return nil, ErrDuplicateSlug
		}
		s.logger.Error("UpdateEventType: repository error for id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateEventType: updated event type id=%s", id)
	return models.FromDomainEventType(updated), nil
}

// Delete удаляет тип события. Слоты и бронирования не затрагиваются.
func (s *Service) Delete(ctx context.Context, id string, userID int64) error {
	if _, err := s.getOwned(ctx, "DeleteEventType", id, userID); err != nil {
		return err
	}

	if err := s.eventTypeRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, eventTypeRepo.ErrEventTypeNotFound) {
			return ErrEventTypeNotFound
		}
		s.logger.Error("DeleteEventType: repository error for id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteEventType: deleted event type id=%s", id)
	return nil
}

func (s *Service) getOwned(ctx context.Context, op, id string, userID int64) (*domain.EventType, error) {
	if err := ids.Validate(id); err != nil {
		return nil, fmt.Errorf("%w: eventTypeId: %v", ErrInvalidInput, err)
	}

	eventType, err := s.eventTypeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, eventTypeRepo.ErrEventTypeNotFound) {
			s.logger.Warn("%s: event type id=%s not found", op, id)
			return nil, ErrEventTypeNotFound
		}
		s.logger.Error("%s: repository error for event type id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if err := s.checkCalendarAccess(ctx, eventType.CalendarID, userID); err != nil {
		return nil, err
	}

	return eventType, nil
}

// checkSchedule проверяет, что расписание существует и принадлежит тому же календарю
func (s *Service) checkSchedule(ctx context.Context, calendarID, scheduleID string) error {
	if err := ids.Validate(scheduleID); err != nil {
		return fmt.Errorf("%w: availabilityScheduleId: %v", ErrInvalidInput, err)
	}

	schedule, err := s.scheduleRepo.GetByID(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Warn("checkSchedule: schedule id=%s not found", scheduleID)
			return ErrScheduleNotFound
		}
		return fmt.Errorf("%w: schedule lookup: %v", ErrInternal, err)
	}

	if schedule.CalendarID != calendarID {
		s.logger.Warn("checkSchedule: schedule id=%s belongs to calendar=%s, not %s", scheduleID, schedule.CalendarID, calendarID)
		return ErrScheduleNotFound
	}

	return nil
}

func (s *Service) checkSlugFree(ctx context.Context, calendarID, eventTypeSlug string, excludeID *string) error {
	exists, err := s.eventTypeRepo.ExistsSlug(ctx, calendarID, eventTypeSlug, excludeID)
	if err != nil {
		s.logger.Error("checkSlugFree: repository error: %v", err)
		return fmt.Errorf("%w: slug check: %v", ErrInternal, err)
	}
	if exists {
		s.logger.Warn("checkSlugFree: slug=%s already used in calendar=%s", eventTypeSlug, calendarID)
		return ErrDuplicateSlug
	}
	return nil
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
