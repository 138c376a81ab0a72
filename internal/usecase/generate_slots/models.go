package generate_slots

import "time"

// Request модель запроса на генерацию слотов
type Request struct {
	UserID      int64   // владелец календаря
	CalendarID  string  // ID календаря
	StartDate   string  // первый день диапазона, YYYY-MM-DD в часовом поясе календаря
	EndDate     string  // последний день диапазона (включительно)
	EventTypeID *string // если не задан, генерируются слоты для всех типов событий календаря
}

// Response модель ответа с итогами генерации
type Response struct {
	Total   int               // сколько слотов создано суммарно
	Message string            // человекочитаемый итог
	From    time.Time         // начало окна [From, To)
	To      time.Time         // конец окна, полночь дня после EndDate
	Results []EventTypeResult // результат по каждому типу события
}

// EventTypeResult результат генерации для одного типа события
type EventTypeResult struct {
	EventTypeID string
	Created     int
	Deleted     int64   // удалено свободных слотов, замененных новыми
	Error       *string // причина отказа, если тип события пропущен
}
