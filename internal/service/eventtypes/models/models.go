package models

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// CreateEventTypeRequest запрос на создание типа события
type CreateEventTypeRequest struct {
	UserID                 int64   `json:"-"`
	CalendarID             string  `json:"-"`
	Title                  string  `json:"title"`
	Slug                   *string `json:"slug,omitempty"` // если не задан, генерируется из title
	Description            *string `json:"description,omitempty"`
	Duration               int     `json:"duration"` // минуты
	Color                  *string `json:"color,omitempty"`
	AvailabilityScheduleID string  `json:"availabilityScheduleId"`
	BufferTimeBefore       *int    `json:"bufferTimeBefore,omitempty"`
	BufferTimeAfter        *int    `json:"bufferTimeAfter,omitempty"`
}

// UpdateEventTypeRequest запрос на обновление типа события
type UpdateEventTypeRequest struct {
	UserID                 int64   `json:"-"`
	Title                  *string `json:"title,omitempty"`
	Slug                   *string `json:"slug,omitempty"`
	Description            *string `json:"description,omitempty"`
	Duration               *int    `json:"duration,omitempty"`
	Color                  *string `json:"color,omitempty"`
	AvailabilityScheduleID *string `json:"availabilityScheduleId,omitempty"`
	BufferTimeBefore       *int    `json:"bufferTimeBefore,omitempty"`
	BufferTimeAfter        *int    `json:"bufferTimeAfter,omitempty"`
}

// EventTypeResponse ответ с данными типа события
type EventTypeResponse struct {
	ID                     string    `json:"id"`
	CalendarID             string    `json:"calendarId"`
	Title                  string    `json:"title"`
	Slug                   string    `json:"slug"`
	Description            *string   `json:"description,omitempty"`
	Duration               int       `json:"duration"`
	Color                  string    `json:"color"`
	AvailabilityScheduleID string    `json:"availabilityScheduleId"`
	BufferTimeBefore       int       `json:"bufferTimeBefore"`
	BufferTimeAfter        int       `json:"bufferTimeAfter"`
	CreatedAt              time.Time `json:"createdAt"`
	UpdatedAt              time.Time `json:"updatedAt"`
}

// EventTypeListResponse ответ со списком типов событий
type EventTypeListResponse struct {
	EventTypes []EventTypeResponse `json:"eventTypes"`
}

// FromDomainEventType конвертирует domain модель в DTO
func FromDomainEventType(e *domain.EventType) *EventTypeResponse {
	if e == nil {
		return nil
	}

	return &EventTypeResponse{
		ID:                     e.ID,
		CalendarID:             e.CalendarID,
		Title:                  e.Title,
		Slug:                   e.Slug,
		Description:            e.Description,
		Duration:               e.Duration,
		Color:                  e.Color,
		AvailabilityScheduleID: e.AvailabilityScheduleID,
		BufferTimeBefore:       e.BufferTimeBefore,
		BufferTimeAfter:        e.BufferTimeAfter,
		CreatedAt:              e.CreatedAt,
		UpdatedAt:              e.UpdatedAt,
	}
}

// FromDomainEventTypeList конвертирует список domain моделей в DTO
func FromDomainEventTypeList(eventTypes []*domain.EventType) *EventTypeListResponse {
	resp := &EventTypeListResponse{
		EventTypes: make([]EventTypeResponse, 0, len(eventTypes)),
	}

	for _, e := range eventTypes {
		if item := FromDomainEventType(e); item != nil {
			resp.EventTypes = append(resp.EventTypes, *item)
		}
	}

	return resp
}
