package generate_slots

import (
	"time"

	generateSlots "github.com/m04kA/SMC-SchedulingService/internal/usecase/generate_slots"
)

// GenerateSlotsRequest HTTP request model
type GenerateSlotsRequest struct {
	StartDate   string  `json:"startDate"` // "2024-06-03"
	EndDate     string  `json:"endDate"`   // включительно
	EventTypeID *string `json:"eventTypeId,omitempty"`
}

// EventTypeResult HTTP модель результата по типу события
type EventTypeResult struct {
	EventTypeID string  `json:"eventTypeId"`
	Created     int     `json:"created"`
	Deleted     int64   `json:"deleted"`
	Error       *string `json:"error,omitempty"`
}

// GenerateSlotsResponse HTTP response model
type GenerateSlotsResponse struct {
	Total   int               `json:"total"`
	Message string            `json:"message"`
	From    string            `json:"from"`
	To      string            `json:"to"`
	Results []EventTypeResult `json:"results"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *GenerateSlotsRequest) ToUseCaseRequest(userID int64, calendarID string) *generateSlots.Request {
	return &generateSlots.Request{
		UserID:      userID,
		CalendarID:  calendarID,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		EventTypeID: r.EventTypeID,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *generateSlots.Response) *GenerateSlotsResponse {
	results := make([]EventTypeResult, 0, len(resp.Results))
	for _, res := range resp.Results {
		results = append(results, EventTypeResult{
			EventTypeID: res.EventTypeID,
			Created:     res.Created,
			Deleted:     res.Deleted,
			Error:       res.Error,
		})
	}

	return &GenerateSlotsResponse{
		Total:   resp.Total,
		Message: resp.Message,
		From:    resp.From.Format(time.RFC3339),
		To:      resp.To.Format(time.RFC3339),
		Results: results,
	}
}
