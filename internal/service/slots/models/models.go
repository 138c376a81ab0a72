package models

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// ListSlotsRequest запрос на список слотов календаря с необязательными фильтрами
type ListSlotsRequest struct {
	UserID      int64
	CalendarID  string
	EventTypeID *string
	Status      *string
}

// FindAvailableRequest запрос свободных слотов (публичный)
type FindAvailableRequest struct {
	CalendarID  string
	EventTypeID string
	StartDate   string  // YYYY-MM-DD в часовом поясе календаря
	EndDate     *string // по умолчанию StartDate + 7 дней
}

// UpdateSlotRequest запрос на ручную смену статуса слота
type UpdateSlotRequest struct {
	UserID int64  `json:"-"`
	Status string `json:"status"`
}

// SlotResponse ответ с данными слота
type SlotResponse struct {
	ID          string    `json:"id"`
	CalendarID  string    `json:"calendarId"`
	EventTypeID string    `json:"eventTypeId"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SlotListResponse ответ со списком слотов
type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
}

// AvailableSlotsResponse ответ со свободными слотами в окне дат
type AvailableSlotsResponse struct {
	CalendarID  string         `json:"calendarId"`
	EventTypeID string         `json:"eventTypeId"`
	Timezone    string         `json:"timezone"`
	From        time.Time      `json:"from"`
	To          time.Time      `json:"to"`
	Slots       []SlotResponse `json:"slots"`
}

// FromDomainSlot конвертирует domain модель в DTO
func FromDomainSlot(s *domain.Slot) *SlotResponse {
	if s == nil {
		return nil
	}

	return &SlotResponse{
		ID:          s.ID,
		CalendarID:  s.CalendarID,
		EventTypeID: s.EventTypeID,
		StartTime:   s.StartTime,
		EndTime:     s.EndTime,
		Status:      string(s.Status),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// FromDomainSlots конвертирует список domain моделей в DTO
func FromDomainSlots(slots []*domain.Slot) []SlotResponse {
	result := make([]SlotResponse, 0, len(slots))
	for _, s := range slots {
		if item := FromDomainSlot(s); item != nil {
			result = append(result, *item)
		}
	}
	return result
}
