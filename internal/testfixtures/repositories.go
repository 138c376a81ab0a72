package testfixtures

import (
	"context"
	"sort"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/booking"
	calendarRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/calendar"
	eventTypeRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/eventtype"
	scheduleRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/schedule"
	slotRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-SchedulingService/pkg/ids"
)

// CalendarRepo in-memory репозиторий календарей
type CalendarRepo struct{ s *Store }

func (r *CalendarRepo) Create(_ context.Context, c *domain.Calendar) (*domain.Calendar, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("calendars.Create"); err != nil {
		return nil, err
	}
	for _, existing := range r.s.calendars {
		if existing.Slug == c.Slug {
			return nil, calendarRepo.ErrSlugTaken
		}
	}
	if c.ID == "" {
		c.ID = ids.New()
	}
	c.CreatedAt, c.UpdatedAt = r.s.now(), r.s.now()
	r.s.calendars[c.ID] = *c
	return c, nil
}

func (r *CalendarRepo) GetByID(_ context.Context, id string) (*domain.Calendar, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("calendars.GetByID"); err != nil {
		return nil, err
	}
	c, ok := r.s.calendars[id]
	if !ok {
		return nil, calendarRepo.ErrCalendarNotFound
	}
	return &c, nil
}

func (r *CalendarRepo) GetBySlug(_ context.Context, slug string) (*domain.Calendar, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.calendars {
		if c.Slug == slug {
			c := c
			return &c, nil
		}
	}
	return nil, calendarRepo.ErrCalendarNotFound
}

func (r *CalendarRepo) ListByOwner(_ context.Context, ownerID int64) ([]*domain.Calendar, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*domain.Calendar, 0)
	for _, c := range r.s.calendars {
		if c.OwnerID == ownerID {
			c := c
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ScheduleRepo in-memory репозиторий расписаний
type ScheduleRepo struct{ s *Store }

func (r *ScheduleRepo) Create(_ context.Context, sc *domain.AvailabilitySchedule) (*domain.AvailabilitySchedule, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if sc.ID == "" {
		sc.ID = ids.New()
	}
	sc.CreatedAt, sc.UpdatedAt = r.s.now(), r.s.now()
	r.s.schedules[sc.ID] = *sc
	return sc, nil
}

func (r *ScheduleRepo) GetByID(_ context.Context, id string) (*domain.AvailabilitySchedule, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("schedules.GetByID"); err != nil {
		return nil, err
	}
	sc, ok := r.s.schedules[id]
	if !ok {
		return nil, scheduleRepo.ErrScheduleNotFound
	}
	return &sc, nil
}

func (r *ScheduleRepo) ListByCalendar(_ context.Context, calendarID string) ([]*domain.AvailabilitySchedule, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*domain.AvailabilitySchedule, 0)
	for _, sc := range r.s.schedules {
		if sc.CalendarID == calendarID {
			sc := sc
			out = append(out, &sc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *ScheduleRepo) Update(_ context.Context, sc *domain.AvailabilitySchedule) (*domain.AvailabilitySchedule, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.schedules[sc.ID]
	if !ok {
		return nil, scheduleRepo.ErrScheduleNotFound
	}
	sc.CreatedAt, sc.UpdatedAt = existing.CreatedAt, r.s.now()
	r.s.schedules[sc.ID] = *sc
	return sc, nil
}

func (r *ScheduleRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.schedules[id]; !ok {
		return scheduleRepo.ErrScheduleNotFound
	}
	delete(r.s.schedules, id)
	return nil
}

// EventTypeRepo in-memory репозиторий типов событий
type EventTypeRepo struct{ s *Store }

func (r *EventTypeRepo) Create(_ context.Context, et *domain.EventType) (*domain.EventType, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.slugTaken(et.CalendarID, et.Slug, "") {
		return nil, eventTypeRepo.ErrDuplicateSlug
	}
	if et.ID == "" {
		et.ID = ids.New()
	}
	et.CreatedAt, et.UpdatedAt = r.s.now(), r.s.now()
	r.s.eventTypes[et.ID] = *et
	return et, nil
}

func (r *EventTypeRepo) GetByID(_ context.Context, id string) (*domain.EventType, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("eventTypes.GetByID"); err != nil {
		return nil, err
	}
	et, ok := r.s.eventTypes[id]
	if !ok {
		return nil, eventTypeRepo.ErrEventTypeNotFound
	}
	return &et, nil
}

func (r *EventTypeRepo) GetBySlug(_ context.Context, calendarID, slug string) (*domain.EventType, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, et := range r.s.eventTypes {
		if et.CalendarID == calendarID && et.Slug == slug {
			et := et
			return &et, nil
		}
	}
	return nil, eventTypeRepo.ErrEventTypeNotFound
}

func (r *EventTypeRepo) ListByCalendar(_ context.Context, calendarID string) ([]*domain.EventType, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*domain.EventType, 0)
	for _, et := range r.s.eventTypes {
		if et.CalendarID == calendarID {
			et := et
			out = append(out, &et)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *EventTypeRepo) ExistsSlug(_ context.Context, calendarID, slug string, excludeID *string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	exclude := ""
	if excludeID != nil {
		exclude = *excludeID
	}
	return r.slugTaken(calendarID, slug, exclude), nil
}

func (r *EventTypeRepo) Update(_ context.Context, et *domain.EventType) (*domain.EventType, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.eventTypes[et.ID]
	if !ok {
		return nil, eventTypeRepo.ErrEventTypeNotFound
	}
	if r.slugTaken(et.CalendarID, et.Slug, et.ID) {
		return nil, eventTypeRepo.ErrDuplicateSlug
	}
	et.CreatedAt, et.UpdatedAt = existing.CreatedAt, r.s.now()
	r.s.eventTypes[et.ID] = *et
	return et, nil
}

func (r *EventTypeRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.eventTypes[id]; !ok {
		return eventTypeRepo.ErrEventTypeNotFound
	}
	delete(r.s.eventTypes, id)
	return nil
}

func (r *EventTypeRepo) slugTaken(calendarID, slug, excludeID string) bool {
	for _, et := range r.s.eventTypes {
		if et.CalendarID == calendarID && et.Slug == slug && et.ID != excludeID {
			return true
		}
	}
	return false
}

// SlotRepo in-memory репозиторий слотов
type SlotRepo struct{ s *Store }

func (r *SlotRepo) CreateMany(_ context.Context, slots []*domain.Slot) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("slots.CreateMany"); err != nil {
		return 0, err
	}
	for _, sl := range slots {
		if sl.ID == "" {
			sl.ID = ids.New()
		}
		if sl.Status == "" {
			sl.Status = domain.SlotStatusAvailable
		}
		sl.CreatedAt, sl.UpdatedAt = r.s.now(), r.s.now()
		r.s.slots[sl.ID] = *sl
	}
	return len(slots), nil
}

func (r *SlotRepo) GetByID(_ context.Context, id string) (*domain.Slot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sl, ok := r.s.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	return &sl, nil
}

func (r *SlotRepo) ListAvailable(ctx context.Context, calendarID, eventTypeID string, from, to time.Time) ([]*domain.Slot, error) {
	status := domain.SlotStatusAvailable
	return r.List(ctx, domain.SlotFilter{CalendarID: calendarID, EventTypeID: &eventTypeID, Status: &status, From: &from, To: &to})
}

func (r *SlotRepo) List(_ context.Context, f domain.SlotFilter) ([]*domain.Slot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*domain.Slot, 0)
	for _, sl := range r.s.slots {
		if sl.CalendarID != f.CalendarID {
			continue
		}
		if f.EventTypeID != nil && sl.EventTypeID != *f.EventTypeID {
			continue
		}
		if f.Status != nil && sl.Status != *f.Status {
			continue
		}
		if f.From != nil && sl.StartTime.Before(*f.From) {
			continue
		}
		if f.To != nil && !sl.StartTime.Before(*f.To) {
			continue
		}
		sl := sl
		out = append(out, &sl)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (r *SlotRepo) CountBooked(_ context.Context, eventTypeID string, from, to time.Time) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	count := 0
	for _, sl := range r.s.slots {
		if sl.EventTypeID == eventTypeID && sl.Status == domain.SlotStatusBooked && inRange(sl.StartTime, from, to) {
			count++
		}
	}
	return count, nil
}

func (r *SlotRepo) DeleteAvailableInRange(_ context.Context, eventTypeID string, from, to time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var deleted int64
	for id, sl := range r.s.slots {
		if sl.EventTypeID == eventTypeID && sl.Status == domain.SlotStatusAvailable && inRange(sl.StartTime, from, to) {
			delete(r.s.slots, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *SlotRepo) Reserve(_ context.Context, id string) error {
	return r.transition(id, domain.SlotStatusAvailable, domain.SlotStatusBooked, slotRepo.ErrSlotNotAvailable)
}

func (r *SlotRepo) Release(_ context.Context, id string) error {
	return r.transition(id, domain.SlotStatusBooked, domain.SlotStatusAvailable, slotRepo.ErrSlotNotBooked)
}

func (r *SlotRepo) transition(id string, from, to domain.SlotStatus, errNoRows error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sl, ok := r.s.slots[id]
	if !ok || sl.Status != from {
		return errNoRows
	}
	sl.Status = to
	sl.UpdatedAt = r.s.now()
	r.s.slots[id] = sl
	return nil
}

func (r *SlotRepo) UpdateStatus(_ context.Context, id string, status domain.SlotStatus) (*domain.Slot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sl, ok := r.s.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	sl.Status = status
	r.s.slots[id] = sl
	return &sl, nil
}

func (r *SlotRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.slots[id]; !ok {
		return slotRepo.ErrSlotNotFound
	}
	delete(r.s.slots, id)
	return nil
}

// BookingRepo in-memory репозиторий бронирований
type BookingRepo struct{ s *Store }

func (r *BookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("bookings.Create"); err != nil {
		return nil, err
	}
	for _, existing := range r.s.bookings {
		if existing.SlotID == b.SlotID && existing.Status == domain.BookingStatusConfirmed && b.Status == domain.BookingStatusConfirmed {
			return nil, bookingRepo.ErrSlotAlreadyBooked
		}
	}
	if b.ID == "" {
		b.ID = ids.New()
	}
	b.CreatedAt, b.UpdatedAt = r.s.now(), r.s.now()
	r.s.bookings[b.ID] = *b
	return b, nil
}

func (r *BookingRepo) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return &b, nil
}

func (r *BookingRepo) List(_ context.Context, calendarIDs []string) ([]*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	allowed := make(map[string]bool, len(calendarIDs))
	for _, id := range calendarIDs {
		allowed[id] = true
	}
	out := make([]*domain.Booking, 0)
	for _, b := range r.s.bookings {
		if len(allowed) > 0 && !allowed[b.CalendarID] {
			continue
		}
		b := b
		out = append(out, &b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (r *BookingRepo) Update(_ context.Context, id string, status *domain.BookingStatus, notes *string) (*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	if status != nil {
		b.Status = *status
	}
	if notes != nil {
		n := *notes
		b.Notes = &n
	}
	b.UpdatedAt = r.s.now()
	r.s.bookings[id] = b
	return &b, nil
}

func (r *BookingRepo) Cancel(_ context.Context, id string, reason *string) (*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("bookings.Cancel"); err != nil {
		return nil, err
	}
	b, ok := r.s.bookings[id]
	if !ok || b.Status != domain.BookingStatusConfirmed {
		return nil, bookingRepo.ErrCannotCancel
	}
	now := r.s.now()
	b.Status = domain.BookingStatusCancelled
	b.CancelReason = reason
	b.CancelledAt = &now
	b.UpdatedAt = now
	r.s.bookings[id] = b
	return &b, nil
}

func (r *BookingRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	delete(r.s.bookings, id)
	return nil
}

func inRange(t, from, to time.Time) bool {
	return !t.Before(from) && t.Before(to)
}
