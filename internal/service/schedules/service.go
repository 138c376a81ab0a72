package schedules

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-SchedulingService/internal/service/calendars"
	"github.com/m04kA/SMC-SchedulingService/internal/service/schedules/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/ids"
)

// Service сервис расписаний доступности
type Service struct {
	scheduleRepo ScheduleRepository
	calendars    CalendarAccessChecker
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(scheduleRepo ScheduleRepository, calendars CalendarAccessChecker, logger Logger) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		calendars:    calendars,
		logger:       logger,
	}
}

// Create создает расписание в календаре пользователя
func (s *Service) Create(ctx context.Context, req *models.CreateScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("CreateSchedule: user=%d, calendar=%s, name=%q", req.UserID, req.CalendarID, req.Name)

	if err := s.checkCalendarAccess(ctx, req.CalendarID, req.UserID); err != nil {
		return nil, err
	}

	name, err := validateName(req.Name)
	if err != nil {
		s.logger.Warn("CreateSchedule: validation failed: %v", err)
		return nil, err
	}

	days := req.DaysOfWeek
	if len(days) == 0 {
		days = domain.DefaultDaysOfWeek()
	}
	days, err = normalizeDays(days)
	if err != nil {
		s.logger.Warn("CreateSchedule: validation failed: %v", err)
		return nil, err
	}

	startTime, endTime, err := parseWindow(req.StartTime, req.EndTime)
	if err != nil {
		s.logger.Warn("CreateSchedule: validation failed: %v", err)
		return nil, err
	}

	created, err := s.scheduleRepo.Create(ctx, &domain.AvailabilitySchedule{
		CalendarID: req.CalendarID,
		Name:       name,
		DaysOfWeek: days,
		StartTime:  startTime,
		EndTime:    endTime,
	})
	if err != nil {
		s.logger.Error("CreateSchedule: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateSchedule: created schedule id=%s", created.ID)
	return models.FromDomainSchedule(created), nil
}

// GetByID возвращает расписание владельцу календаря
func (s *Service) GetByID(ctx context.Context, id string, userID int64) (*models.ScheduleResponse, error) {
	schedule, err := s.getOwned(ctx, "GetSchedule", id, userID)
	if err != nil {
		return nil, err
	}
	return models.FromDomainSchedule(schedule), nil
}

// ListByCalendar возвращает расписания календаря
func (s *Service) ListByCalendar(ctx context.Context, calendarID string, userID int64) (*models.ScheduleListResponse, error) {
	if err := s.checkCalendarAccess(ctx, calendarID, userID); err != nil {
		return nil, err
	}

	schedules, err := s.scheduleRepo.ListByCalendar(ctx, calendarID)
	if err != nil {
		s.logger.Error("ListSchedules: repository error for calendar=%s: %v", calendarID, err)
		return nil, fmt.Errorf("%w: ListByCalendar - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainScheduleList(schedules), nil
}

// Update обновляет переданные поля расписания
func (s *Service) Update(ctx context.Context, id string, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("UpdateSchedule: id=%s by user=%d", id, req.UserID)

	schedule, err := s.getOwned(ctx, "UpdateSchedule", id, req.UserID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if schedule.Name, err = validateName(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.DaysOfWeek != nil {
		if schedule.DaysOfWeek, err = normalizeDays(req.DaysOfWeek); err != nil {
			return nil, err
		}
	}

	start, end := schedule.StartTime.String(), schedule.EndTime.String()
	if req.StartTime != nil {
		start = *req.StartTime
	}
	if req.EndTime != nil {
		end = *req.EndTime
	}
	if schedule.StartTime, schedule.EndTime, err = parseWindow(start, end); err != nil {
		s.logger.Warn("UpdateSchedule: validation failed: %v", err)
		return nil, err
	}

	updated, err := s.scheduleRepo.Update(ctx, schedule)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("UpdateSchedule: repository error for id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateSchedule: updated schedule id=%s", id)
	return models.FromDomainSchedule(updated), nil
}

// Delete удаляет расписание. Уже сгенерированные слоты остаются.
func (s *Service) Delete(ctx context.Context, id string, userID int64) error {
	if _, err := s.getOwned(ctx, "DeleteSchedule", id, userID); err != nil {
		return err
	}

	if err := s.scheduleRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			return ErrScheduleNotFound
		}
		s.logger.Error("DeleteSchedule: repository error for id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteSchedule: deleted schedule id=%s", id)
	return nil
}

func (s *Service) getOwned(ctx context.Context, op, id string, userID int64) (*domain.AvailabilitySchedule, error) {
	if err := ids.Validate(id); err != nil {
		return nil, fmt.Errorf("%w: scheduleId: %v", ErrInvalidInput, err)
	}

	schedule, err := s.scheduleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Warn("%s: schedule id=%s not found", op, id)
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("%s: repository error for schedule id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if err := s.checkCalendarAccess(ctx, schedule.CalendarID, userID); err != nil {
		return nil, err
	}

	return schedule, nil
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
