// Package testfixtures содержит in-memory реализации репозиториев и менеджера транзакций
// для тестов сервисов и use case'ов.
package testfixtures

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/ids"
)

// Store общее in-memory хранилище. Репозитории ниже являются его представлениями.
type Store struct {
	mu   sync.Mutex
	txMu sync.Mutex

	calendars  map[string]domain.Calendar
	schedules  map[string]domain.AvailabilitySchedule
	eventTypes map[string]domain.EventType
	slots      map[string]domain.Slot
	bookings   map[string]domain.Booking

	failures map[string]error
	now      func() time.Time
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		calendars:  make(map[string]domain.Calendar),
		schedules:  make(map[string]domain.AvailabilitySchedule),
		eventTypes: make(map[string]domain.EventType),
		slots:      make(map[string]domain.Slot),
		bookings:   make(map[string]domain.Booking),
		failures:   make(map[string]error),
		now:        func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) },
	}
}

// Fail заставляет операцию (например "slots.CreateMany") возвращать err
func (s *Store) Fail(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = err
}

// Heal снимает все внедренные ошибки
func (s *Store) Heal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = make(map[string]error)
}

func (s *Store) failure(op string) error {
	return s.failures[op]
}

// Calendars репозиторий календарей
func (s *Store) Calendars() *CalendarRepo { return &CalendarRepo{s: s} }

// Schedules репозиторий расписаний
func (s *Store) Schedules() *ScheduleRepo { return &ScheduleRepo{s: s} }

// EventTypes репозиторий типов событий
func (s *Store) EventTypes() *EventTypeRepo { return &EventTypeRepo{s: s} }

// Slots репозиторий слотов
func (s *Store) Slots() *SlotRepo { return &SlotRepo{s: s} }

// Bookings репозиторий бронирований
func (s *Store) Bookings() *BookingRepo { return &BookingRepo{s: s} }

// TxManager менеджер транзакций поверх хранилища
func (s *Store) TxManager() *TxManager { return &TxManager{s: s} }

// AddCalendar кладет календарь напрямую, минуя сервисы
func (s *Store) AddCalendar(c domain.Calendar) *domain.Calendar {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == "" {
		c.ID = ids.New()
	}
	if c.Timezone == "" {
		c.Timezone = domain.DefaultTimezone
	}
	s.calendars[c.ID] = c
	return &c
}

// AddSchedule кладет расписание напрямую
func (s *Store) AddSchedule(sc domain.AvailabilitySchedule) *domain.AvailabilitySchedule {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sc.ID == "" {
		sc.ID = ids.New()
	}
	s.schedules[sc.ID] = sc
	return &sc
}

// AddEventType кладет тип события напрямую
func (s *Store) AddEventType(et domain.EventType) *domain.EventType {
	s.mu.Lock()
	defer s.mu.Unlock()
	if et.ID == "" {
		et.ID = ids.New()
	}
	if et.Color == "" {
		et.Color = domain.DefaultEventColor
	}
	s.eventTypes[et.ID] = et
	return &et
}

// AddSlot кладет слот напрямую
func (s *Store) AddSlot(sl domain.Slot) *domain.Slot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sl.ID == "" {
		sl.ID = ids.New()
	}
	if sl.Status == "" {
		sl.Status = domain.SlotStatusAvailable
	}
	s.slots[sl.ID] = sl
	return &sl
}

// SlotStatus возвращает текущий статус слота или пустую строку
func (s *Store) SlotStatus(id string) domain.SlotStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.slots[id].Status
}

// AllSlots возвращает все слоты по возрастанию начала
func (s *Store) AllSlots() []domain.Slot {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Slot, 0, len(s.slots))
	for _, sl := range s.slots {
		out = append(out, sl)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out
}

// AllBookings возвращает все бронирования
func (s *Store) AllBookings() []domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		out = append(out, b)
	}
	return out
}

type snapshot struct {
	calendars  map[string]domain.Calendar
	schedules  map[string]domain.AvailabilitySchedule
	eventTypes map[string]domain.EventType
	slots      map[string]domain.Slot
	bookings   map[string]domain.Booking
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot{
		calendars:  copyMap(s.calendars),
		schedules:  copyMap(s.schedules),
		eventTypes: copyMap(s.eventTypes),
		slots:      copyMap(s.slots),
		bookings:   copyMap(s.bookings),
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calendars = snap.calendars
	s.schedules = snap.schedules
	s.eventTypes = snap.eventTypes
	s.slots = snap.slots
	s.bookings = snap.bookings
}

func copyMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// TxManager выполняет функции последовательно и откатывает хранилище при ошибке
type TxManager struct {
	s *Store
}

type txKey struct{}

func (m *TxManager) run(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	m.s.txMu.Lock()
	defer m.s.txMu.Unlock()

	snap := m.s.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		m.s.restore(snap)
		return err
	}
	return nil
}

// Do выполняет fn в "транзакции"
func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

// DoSerializable выполняет fn в "сериализуемой транзакции"
func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

// DoReadOnly выполняет fn в "транзакции только для чтения"
func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}
