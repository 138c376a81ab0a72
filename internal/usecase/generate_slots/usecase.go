package generate_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	eventTypeRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/eventtype"
	scheduleRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-SchedulingService/internal/service/calendars"
)

// UseCase use case для перегенерации слотов календаря на диапазон дат
type UseCase struct {
	calendars     CalendarAccessChecker
	eventTypeRepo EventTypeRepository
	scheduleRepo  ScheduleRepository
	slotRepo      SlotRepository
	txManager     TransactionManager
	metrics       Metrics
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	calendars CalendarAccessChecker,
	eventTypeRepo EventTypeRepository,
	scheduleRepo ScheduleRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		calendars:     calendars,
		eventTypeRepo: eventTypeRepo,
		scheduleRepo:  scheduleRepo,
		slotRepo:      slotRepo,
		txManager:     txManager,
		metrics:       metrics,
		logger:        logger,
	}
}

// Execute перегенерирует слоты календаря в диапазоне [StartDate, EndDate].
//
// Каждый тип события обрабатывается в своей сериализуемой транзакции: свободные слоты
// в окне заменяются новыми. Если в окне есть забронированные слоты, тип события
// пропускается целиком. Ошибка одного типа события не прерывает остальные и попадает
// в Results.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GenerateSlots: user=%d, calendar=%s, range=%s..%s", req.UserID, req.CalendarID, req.StartDate, req.EndDate)

	// 1. Валидация идентификаторов
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GenerateSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем календарь и права владельца
	calendar, err := uc.checkCalendarAccess(ctx, req.CalendarID, req.UserID)
	if err != nil {
		uc.logger.Warn("GenerateSlots: calendar check failed: %v", err)
		return nil, err
	}
	loc := calendar.Location()

	// 3. Разбираем даты в часовом поясе календаря
	startDay, endDay, err := parseRange(req.StartDate, req.EndDate, loc)
	if err != nil {
		uc.logger.Warn("GenerateSlots: invalid range: %v", err)
		return nil, err
	}

	// 4. Определяем типы событий
	eventTypes, err := uc.resolveEventTypes(ctx, calendar.ID, req.EventTypeID)
	if err != nil {
		return nil, err
	}

	from, to := domain.DayRange(startDay, endDay, loc)
	resp := &Response{
		From:    from,
		To:      to,
		Results: make([]EventTypeResult, 0, len(eventTypes)),
	}

	// 5. Перегенерируем слоты по каждому типу события независимо
	failed := 0
	for _, eventType := range eventTypes {
		result := uc.regenerate(ctx, eventType, startDay, endDay, from, to, loc)
		if result.Error != nil {
			failed++
			uc.metrics.ObserveSlotsGenerated(0, true)
		} else {
			resp.Total += result.Created
			uc.metrics.ObserveSlotsGenerated(result.Created, false)
		}
		resp.Results = append(resp.Results, result)
	}

	resp.Message = fmt.Sprintf("Generated %d slots for %d event types", resp.Total, len(eventTypes)-failed)
	if failed > 0 {
		resp.Message += fmt.Sprintf(", %d event types skipped", failed)
	}

	uc.logger.Info("GenerateSlots: calendar=%s, %s", calendar.ID, resp.Message)
	return resp, nil
}

// regenerate заменяет свободные слоты одного типа события в окне [from, to)
func (uc *UseCase) regenerate(
	ctx context.Context,
	eventType *domain.EventType,
	startDay, endDay, from, to time.Time,
	loc *time.Location,
) EventTypeResult {
	result := EventTypeResult{EventTypeID: eventType.ID}

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		schedule, err := uc.scheduleRepo.GetByID(txCtx, eventType.AvailabilityScheduleID)
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
				return fmt.Errorf("%w: id=%s", ErrScheduleNotFound, eventType.AvailabilityScheduleID)
			}
			return fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
		}
		if schedule.CalendarID != eventType.CalendarID {
			return fmt.Errorf("%w: id=%s belongs to another calendar", ErrScheduleNotFound, schedule.ID)
		}
		if !schedule.HasValidWindow() {
			return fmt.Errorf("%w: %s-%s", ErrInvalidSchedule, schedule.StartTime, schedule.EndTime)
		}

		booked, err := uc.slotRepo.CountBooked(txCtx, eventType.ID, from, to)
		if err != nil {
			return fmt.Errorf("%w: failed to count booked slots: %v", ErrInternal, err)
		}
		if booked > 0 {
			return fmt.Errorf("%w: %d booked slots", ErrBookedSlotsInRange, booked)
		}

		deleted, err := uc.slotRepo.DeleteAvailableInRange(txCtx, eventType.ID, from, to)
		if err != nil {
			return fmt.Errorf("%w: failed to delete slots: %v", ErrInternal, err)
		}

		candidates := generateSlots(startDay, endDay, schedule, eventType, loc)
		created := 0
		if len(candidates) > 0 {
			if created, err = uc.slotRepo.CreateMany(txCtx, candidates); err != nil {
				return fmt.Errorf("%w: failed to insert slots: %v", ErrInternal, err)
			}
		}

		result.Created = created
		result.Deleted = deleted
		return nil
	})

	if err != nil {
		msg := err.Error()
		result = EventTypeResult{EventTypeID: eventType.ID, Error: &msg}
		if errors.Is(err, ErrBookedSlotsInRange) || errors.Is(err, ErrScheduleNotFound) || errors.Is(err, ErrInvalidSchedule) {
			uc.logger.Warn("GenerateSlots: event type id=%s skipped: %v", eventType.ID, err)
		} else {
			uc.logger.Error("GenerateSlots: event type id=%s failed: %v", eventType.ID, err)
		}
		return result
	}

	uc.logger.Info("GenerateSlots: event type id=%s, replaced %d slots with %d", eventType.ID, result.Deleted, result.Created)
	return result
}

// resolveEventTypes возвращает запрошенный тип события или все типы календаря
func (uc *UseCase) resolveEventTypes(ctx context.Context, calendarID string, eventTypeID *string) ([]*domain.EventType, error) {
	if eventTypeID != nil {
		eventType, err := uc.eventTypeRepo.GetByID(ctx, *eventTypeID)
		if err != nil {
			if errors.Is(err, eventTypeRepo.ErrEventTypeNotFound) {
				uc.logger.Warn("GenerateSlots: event type id=%s not found", *eventTypeID)
				return nil, ErrEventTypeNotFound
			}
			uc.logger.Error("GenerateSlots: failed to get event type id=%s: %v", *eventTypeID, err)
			return nil, fmt.Errorf("%w: failed to get event type: %v", ErrInternal, err)
		}
		if eventType.CalendarID != calendarID {
			uc.logger.Warn("GenerateSlots: event type id=%s does not belong to calendar=%s", *eventTypeID, calendarID)
			return nil, ErrEventTypeNotFound
		}
		return []*domain.EventType{eventType}, nil
	}

	eventTypes, err := uc.eventTypeRepo.ListByCalendar(ctx, calendarID)
	if err != nil {
		uc.logger.Error("GenerateSlots: failed to list event types for calendar=%s: %v", calendarID, err)
		return nil, fmt.Errorf("%w: failed to list event types: %v", ErrInternal, err)
	}
	if len(eventTypes) == 0 {
		uc.logger.Warn("GenerateSlots: calendar=%s has no event types", calendarID)
		return nil, ErrNoEventTypes
	}

	return eventTypes, nil
}

func (uc *UseCase) checkCalendarAccess(ctx context.Context, calendarID string, userID int64) (*domain.Calendar, error) {
	calendar, err := uc.calendars.CheckOwner(ctx, calendarID, userID)
	switch {
	case err == nil:
		return calendar, nil
	case errors.Is(err, calendars.ErrInvalidInput):
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	case errors.Is(err, calendars.ErrCalendarNotFound):
		return nil, ErrCalendarNotFound
	case errors.Is(err, calendars.ErrAccessDenied):
		return nil, ErrAccessDenied
	default:
		return nil, fmt.Errorf("%w: calendar access: %v", ErrInternal, err)
	}
}
