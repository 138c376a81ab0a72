package calendars

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gosimple/slug"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	calendarRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/calendar"
	"github.com/m04kA/SMC-SchedulingService/internal/service/calendars/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/ids"
)

// Service сервис календарей
type Service struct {
	calendarRepo  CalendarRepository
	eventTypeRepo EventTypeRepository
	logger        Logger
}

// NewService создает новый экземпляр сервиса календарей
func NewService(calendarRepo CalendarRepository, eventTypeRepo EventTypeRepository, logger Logger) *Service {
	return &Service{
		calendarRepo:  calendarRepo,
		eventTypeRepo: eventTypeRepo,
		logger:        logger,
	}
}

// Create создает календарь пользователя
func (s *Service) Create(ctx context.Context, req *models.CreateCalendarRequest) (*models.CalendarResponse, error) {
	s.logger.Info("CreateCalendar: user=%d, name=%q", req.UserID, req.Name)

	calendar, err := buildCalendar(req)
	if err != nil {
		s.logger.Warn("CreateCalendar: validation failed: %v", err)
		return nil, err
	}

	created, err := s.calendarRepo.Create(ctx, calendar)
	if err != nil {
		if errors.Is(err, calendarRepo.ErrSlugTaken) {
			s.logger.Warn("CreateCalendar: slug=%s already taken", calendar.Slug)
			return nil, ErrSlugTaken
		}
		s.logger.Error("CreateCalendar: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateCalendar: created calendar id=%s, slug=%s", created.ID, created.Slug)
	return models.FromDomainCalendar(created), nil
}

// GetByID возвращает календарь владельцу
func (s *Service) GetByID(ctx context.Context, id string, userID int64) (*models.CalendarResponse, error) {
	calendar, err := s.CheckOwner(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	return models.FromDomainCalendar(calendar), nil
}

// ListByOwner возвращает календари пользователя
func (s *Service) ListByOwner(ctx context.Context, userID int64) (*models.CalendarListResponse, error) {
	calendars, err := s.calendarRepo.ListByOwner(ctx, userID)
	if err != nil {
		s.logger.Error("ListCalendars: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: ListByOwner - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListCalendars: fetched %d calendars for user=%d", len(calendars), userID)
	return models.FromDomainCalendarList(calendars), nil
}

// GetPublicBySlug возвращает публичную страницу календаря вместе с типами событий
func (s *Service) GetPublicBySlug(ctx context.Context, calendarSlug string) (*models.PublicCalendarResponse, error) {
	calendar, err := s.calendarRepo.GetBySlug(ctx, calendarSlug)
	if err != nil {
		if errors.Is(err, calendarRepo.ErrCalendarNotFound) {
			s.logger.Warn("GetPublicCalendar: slug=%s not found", calendarSlug)
			return nil, ErrCalendarNotFound
		}
		s.logger.Error("GetPublicCalendar: repository error for slug=%s: %v", calendarSlug, err)
		return nil, fmt.Errorf("%w: GetPublicBySlug - repository error: %v", ErrInternal, err)
	}

	eventTypes, err := s.eventTypeRepo.ListByCalendar(ctx, calendar.ID)
	if err != nil {
		s.logger.Error("GetPublicCalendar: failed to list event types for calendar=%s: %v", calendar.ID, err)
		return nil, fmt.Errorf("%w: GetPublicBySlug - event types: %v", ErrInternal, err)
	}

	return models.FromDomainPublicCalendar(calendar, eventTypes), nil
}

// CheckOwner проверяет существование календаря и права пользователя на него
func (s *Service) CheckOwner(ctx context.Context, calendarID string, userID int64) (*domain.Calendar, error) {
	if err := ids.Validate(calendarID); err != nil {
		return nil, fmt.Errorf("%w: calendarId: %v", ErrInvalidInput, err)
	}

	calendar, err := s.calendarRepo.GetByID(ctx, calendarID)
	if err != nil {
		if errors.Is(err, calendarRepo.ErrCalendarNotFound) {
			s.logger.Warn("CheckOwner: calendar id=%s not found", calendarID)
			return nil, ErrCalendarNotFound
		}
		s.logger.Error("CheckOwner: repository error for calendar id=%s: %v", calendarID, err)
		return nil, fmt.Errorf("%w: CheckOwner - repository error: %v", ErrInternal, err)
	}

	if !calendar.IsOwnedBy(userID) {
		s.logger.Warn("CheckOwner: user=%d is not owner of calendar id=%s", userID, calendarID)
		return nil, ErrAccessDenied
	}

	return calendar, nil
}

func buildCalendar(req *models.CreateCalendarRequest) (*domain.Calendar, error) {
	name := strings.TrimSpace(req.Name)
	if n := utf8.RuneCountInString(name); n < domain.MinNameLength || n > domain.MaxCalendarNameLength {
		return nil, fmt.Errorf("%w: name must be %d-%d characters", ErrInvalidInput, domain.MinNameLength, domain.MaxCalendarNameLength)
	}

	calendarSlug := slug.Make(name)
	if req.Slug != nil && strings.TrimSpace(*req.Slug) != "" {
		calendarSlug = strings.TrimSpace(*req.Slug)
		if !slug.IsSlug(calendarSlug) {
			return nil, fmt.Errorf("%w: slug %q is not url-safe", ErrInvalidInput, calendarSlug)
		}
	}
	if len(calendarSlug) < domain.MinSlugLength || len(calendarSlug) > domain.MaxCalendarNameLength {
		return nil, fmt.Errorf("%w: slug must be %d-%d characters", ErrInvalidInput, domain.MinSlugLength, domain.MaxCalendarNameLength)
	}

	timezone := domain.DefaultTimezone
	if req.Timezone != nil && *req.Timezone != "" {
		if _, err := time.LoadLocation(*req.Timezone); err != nil {
			return nil, fmt.Errorf("%w: unknown timezone %q", ErrInvalidInput, *req.Timezone)
		}
		timezone = *req.Timezone
	}

	if req.Description != nil && utf8.RuneCountInString(*req.Description) > domain.MaxDescriptionLength {
		return nil, fmt.Errorf("%w: description must be at most %d characters", ErrInvalidInput, domain.MaxDescriptionLength)
	}

	return &domain.Calendar{
		OwnerID:     req.UserID,
		Name:        name,
		Description: req.Description,
		Slug:        calendarSlug,
		Timezone:    timezone,
	}, nil
}
