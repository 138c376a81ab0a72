package create_booking

import "time"

// Request модель запроса на создание бронирования
type Request struct {
	SlotID string  // ID свободного слота
	Name   string  // имя участника
	Email  string  // email участника
	Phone  *string // телефон (опционально)
	Notes  *string // дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID            string
	SlotID        string
	CalendarID    string
	EventTypeID   string
	AttendeeName  string
	AttendeeEmail string
	AttendeePhone *string
	Notes         *string
	Status        string

	// Время копируется из слота на момент бронирования
	StartTime time.Time
	EndTime   time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
