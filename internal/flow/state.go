// Package flow — конечный автомат экранов виджета бронирования.
//
// Автомат чистый: Transition не делает ввода-вывода и возвращает заявку,
// которую вызывающий отправляет сам.
package flow

import (
	"github.com/Leganyst/calendar-scheduler/internal/booking"
	"github.com/Leganyst/calendar-scheduler/internal/calendar"
)

type Screen string

const (
	ScreenStart     Screen = "start"
	ScreenNextMonth Screen = "nextMonth"
	ScreenTime      Screen = "time"
	ScreenContact   Screen = "contact"
	ScreenDone      Screen = "done"
)

// Заголовки экранов, кроме месячных.
const (
	TitleTime    = "Pick a Time"
	TitleContact = "Enter your Info"
	TitleDone    = "Thanks 👏"
)

// State хранит всё состояние виджета одним значением.
type State struct {
	Screen Screen
	// месячный экран, с которого выбран день; на него ведёт «назад» с time
	Origin Screen
	View   calendar.MonthView

	Selection    *booking.Selection
	Times        []string
	SelectedTime string

	Contact     booking.Contact
	FieldErrors map[string]string
}

func (s State) Title() string {
	switch s.Screen {
	case ScreenTime:
		return TitleTime
	case ScreenContact:
		return TitleContact
	case ScreenDone:
		return TitleDone
	default:
		return s.View.Title
	}
}

// CanForward: стрелка вперёд активна только на start.
func (s State) CanForward() bool {
	return s.Screen == ScreenStart
}

func (s State) CanBack() bool {
	return s.Screen != ScreenStart && s.Screen != ScreenDone
}

// IsMonthScreen сообщает, показывается ли сетка дней.
func (s State) IsMonthScreen() bool {
	return s.Screen == ScreenStart || s.Screen == ScreenNextMonth
}

// FieldError возвращает текст ошибки поля или пустую строку.
func (s State) FieldError(field string) string {
	return s.FieldErrors[field]
}
