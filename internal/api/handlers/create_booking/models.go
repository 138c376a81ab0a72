package create_booking

import (
	"time"

	createBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	SlotID string  `json:"slotId"`
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Phone  *string `json:"phone,omitempty"`
	Notes  *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
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
	StartTime     string  `json:"startTime"`
	EndTime       string  `json:"endTime"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() *createBooking.Request {
	return &createBooking.Request{
		SlotID: r.SlotID,
		Name:   r.Name,
		Email:  r.Email,
		Phone:  r.Phone,
		Notes:  r.Notes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:            resp.ID,
		SlotID:        resp.SlotID,
		CalendarID:    resp.CalendarID,
		EventTypeID:   resp.EventTypeID,
		AttendeeName:  resp.AttendeeName,
		AttendeeEmail: resp.AttendeeEmail,
		AttendeePhone: resp.AttendeePhone,
		Notes:         resp.Notes,
		Status:        resp.Status,
		StartTime:     resp.StartTime.Format(time.RFC3339),
		EndTime:       resp.EndTime.Format(time.RFC3339),
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     resp.UpdatedAt.Format(time.RFC3339),
	}
}
