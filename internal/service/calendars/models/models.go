package models

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// CreateCalendarRequest запрос на создание календаря
type CreateCalendarRequest struct {
	UserID      int64   `json:"-"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Slug        *string `json:"slug,omitempty"`     // если не задан, генерируется из name
	Timezone    *string `json:"timezone,omitempty"` // IANA, по умолчанию UTC
}

// CalendarResponse ответ с данными календаря
type CalendarResponse struct {
	ID          string    `json:"id"`
	OwnerID     int64     `json:"ownerId"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Slug        string    `json:"slug"`
	Timezone    string    `json:"timezone"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CalendarListResponse ответ со списком календарей
type CalendarListResponse struct {
	Calendars []CalendarResponse `json:"calendars"`
}

// PublicEventType краткое описание типа события для публичной страницы
type PublicEventType struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Slug        string  `json:"slug"`
	Description *string `json:"description,omitempty"`
	Duration    int     `json:"duration"`
	Color       string  `json:"color"`
}

// PublicCalendarResponse публичное представление календаря
type PublicCalendarResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description *string           `json:"description,omitempty"`
	Slug        string            `json:"slug"`
	Timezone    string            `json:"timezone"`
	EventTypes  []PublicEventType `json:"eventTypes"`
}

// FromDomainCalendar конвертирует domain модель в DTO
func FromDomainCalendar(c *domain.Calendar) *CalendarResponse {
	if c == nil {
		return nil
	}

	return &CalendarResponse{
		ID:          c.ID,
		OwnerID:     c.OwnerID,
		Name:        c.Name,
		Description: c.Description,
		Slug:        c.Slug,
		Timezone:    c.Timezone,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// FromDomainCalendarList конвертирует список domain моделей в DTO
func FromDomainCalendarList(calendars []*domain.Calendar) *CalendarListResponse {
	resp := &CalendarListResponse{
		Calendars: make([]CalendarResponse, 0, len(calendars)),
	}

	for _, c := range calendars {
		if item := FromDomainCalendar(c); item != nil {
			resp.Calendars = append(resp.Calendars, *item)
		}
	}

	return resp
}

// FromDomainPublicCalendar собирает публичное представление календаря с его типами событий
func FromDomainPublicCalendar(c *domain.Calendar, eventTypes []*domain.EventType) *PublicCalendarResponse {
	resp := &PublicCalendarResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Slug:        c.Slug,
		Timezone:    c.Timezone,
		EventTypes:  make([]PublicEventType, 0, len(eventTypes)),
	}

	for _, et := range eventTypes {
		resp.EventTypes = append(resp.EventTypes, PublicEventType{
			ID:          et.ID,
			Title:       et.Title,
			Slug:        et.Slug,
			Description: et.Description,
			Duration:    et.Duration,
			Color:       et.Color,
		})
	}

	return resp
}
