package models

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Request модели

// ListBookingsRequest запрос на список бронирований владельца
type ListBookingsRequest struct {
	UserID     int64
	CalendarID *string // если не задан, бронирования по всем календарям владельца
}

// UpdateBookingRequest запрос на обновление бронирования.
// Слот при смене статуса не пересчитывается.
type UpdateBookingRequest struct {
	UserID int64   `json:"-"`
	Status *string `json:"status,omitempty"`
	Notes  *string `json:"notes,omitempty"`
}

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// Response модели

// RescheduleInfoResponse сведения о переносе
type RescheduleInfoResponse struct {
	PreviousSlotID string  `json:"previousSlotId"`
	Reason         *string `json:"reason,omitempty"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            string  `json:"id"`
	SlotID        string  `json:"slotId"`
	CalendarID    string  `json:"calendarId"`
	EventTypeID   string  `json:"eventTypeId"`
	AttendeeName  string  `json:"attendeeName"`
	AttendeeEmail string  `json:"attendeeEmail"`
	AttendeePhone *string `json:"attendeePhone,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	Status        string  `json:"status"`

	CancelReason   *string                 `json:"cancelReason,omitempty"`
	CancelledAt    *string                 `json:"cancelledAt,omitempty"` // ISO 8601
	RescheduleInfo *RescheduleInfoResponse `json:"rescheduleInfo,omitempty"`

	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:            b.ID,
		SlotID:        b.SlotID,
		CalendarID:    b.CalendarID,
		EventTypeID:   b.EventTypeID,
		AttendeeName:  b.AttendeeName,
		AttendeeEmail: b.AttendeeEmail,
		AttendeePhone: b.AttendeePhone,
		Notes:         b.Notes,
		Status:        string(b.Status),
		CancelReason:  b.CancelReason,
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	if b.RescheduleInfo != nil {
		resp.RescheduleInfo = &RescheduleInfoResponse{
			PreviousSlotID: b.RescheduleInfo.PreviousSlotID,
			Reason:         b.RescheduleInfo.Reason,
		}
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}
