package models

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// CreateScheduleRequest запрос на создание расписания
type CreateScheduleRequest struct {
	UserID     int64  `json:"-"`
	CalendarID string `json:"-"`
	Name       string `json:"name"`
	DaysOfWeek []int  `json:"daysOfWeek,omitempty"` // 1=понедельник..7=воскресенье, по умолчанию пн-пт
	StartTime  string `json:"startTime"`            // "09:00"
	EndTime    string `json:"endTime"`              // "17:00"
}

// UpdateScheduleRequest запрос на обновление расписания.
// Обновляются только переданные поля.
type UpdateScheduleRequest struct {
	UserID     int64   `json:"-"`
	Name       *string `json:"name,omitempty"`
	DaysOfWeek []int   `json:"daysOfWeek,omitempty"`
	StartTime  *string `json:"startTime,omitempty"`
	EndTime    *string `json:"endTime,omitempty"`
}

// ScheduleResponse ответ с данными расписания
type ScheduleResponse struct {
	ID         string    `json:"id"`
	CalendarID string    `json:"calendarId"`
	Name       string    `json:"name"`
	DaysOfWeek []int     `json:"daysOfWeek"`
	StartTime  string    `json:"startTime"`
	EndTime    string    `json:"endTime"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ScheduleListResponse ответ со списком расписаний
type ScheduleListResponse struct {
	Schedules []ScheduleResponse `json:"schedules"`
}

// FromDomainSchedule конвертирует domain модель в DTO
func FromDomainSchedule(s *domain.AvailabilitySchedule) *ScheduleResponse {
	if s == nil {
		return nil
	}

	return &ScheduleResponse{
		ID:         s.ID,
		CalendarID: s.CalendarID,
		Name:       s.Name,
		DaysOfWeek: s.DaysOfWeek,
		StartTime:  s.StartTime.String(),
		EndTime:    s.EndTime.String(),
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

// FromDomainScheduleList конвертирует список domain моделей в DTO
func FromDomainScheduleList(schedules []*domain.AvailabilitySchedule) *ScheduleListResponse {
	resp := &ScheduleListResponse{
		Schedules: make([]ScheduleResponse, 0, len(schedules)),
	}

	for _, s := range schedules {
		if item := FromDomainSchedule(s); item != nil {
			resp.Schedules = append(resp.Schedules, *item)
		}
	}

	return resp
}
