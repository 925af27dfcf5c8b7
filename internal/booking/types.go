package booking

import (
	"time"

	"github.com/Leganyst/calendar-scheduler/internal/calendar"
)

// Selection — выбранный день, фиксируется в момент клика.
// Month считается с единицы (time.Month): в JSON июнь уходит как 6.
type Selection struct {
	Day     int          `json:"day"`
	Month   time.Month   `json:"month"`
	Year    int          `json:"year"`
	Weekday time.Weekday `json:"weekday"`
}

// SelectionFromCell снимает выбор с ячейки сетки.
func SelectionFromCell(c calendar.DayCell) Selection {
	return Selection{
		Day:     c.Day,
		Month:   c.Month,
		Year:    c.Year,
		Weekday: c.Weekday,
	}
}

// Contact заполняется по полю на экране формы.
type Contact struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// Payload — итоговая заявка, создаётся один раз на успешную отправку.
type Payload struct {
	DaySelection Selection `json:"daySelection"`
	Contact      Contact   `json:"contact"`
	SelectedTime string    `json:"selectedTime"`
}

// Ack — подтверждение хранилища: ID записи и время создания.
type Ack struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
}
