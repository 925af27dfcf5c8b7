package flow

import (
	"maps"
	"slices"
	"time"

	"github.com/Leganyst/calendar-scheduler/internal/booking"
	"github.com/Leganyst/calendar-scheduler/internal/calendar"
)

// Machine хранит неизменные входы автомата: настройку календаря,
// исходный месяц и текущую дату.
type Machine struct {
	Config    calendar.Config
	Start     time.Time
	Today     time.Time
	Validator *booking.Validator
}

func NewMachine(cfg calendar.Config, start, today time.Time, v *booking.Validator) *Machine {
	if v == nil {
		v = booking.NewValidator(nil)
	}
	return &Machine{Config: cfg, Start: start, Today: today, Validator: v}
}

// Initial — экран start с сеткой исходного месяца.
func (m *Machine) Initial() State {
	return State{
		Screen: ScreenStart,
		View:   m.startView(),
	}
}

// Transition возвращает следующее состояние. Заявка не nil только
// при успешной отправке формы, ровно один раз.
func (m *Machine) Transition(s State, e Event) (State, *booking.Payload) {
	if s.Screen == ScreenDone {
		return s, nil
	}

	switch ev := e.(type) {
	case ForwardNav:
		return m.forward(s), nil
	case BackNav:
		return m.back(s), nil
	case PickDay:
		return m.pickDay(s, ev.Day), nil
	case PickTime:
		return pickTime(s, ev.Time), nil
	case EditField:
		return editField(s, ev.Field, ev.Value), nil
	case Submit:
		return m.submit(s)
	}
	return s, nil
}

func (m *Machine) startView() calendar.MonthView {
	return calendar.ComputeMonthView(m.Start, m.Config, m.Today)
}

func (m *Machine) forward(s State) State {
	if s.Screen != ScreenStart {
		return s
	}
	next := s
	next.Screen = ScreenNextMonth
	next.View = calendar.NextMonth(m.startView(), m.Config, m.Today)
	next.Selection = nil
	return next
}

func (m *Machine) back(s State) State {
	next := s
	switch s.Screen {
	case ScreenNextMonth:
		next.Screen = ScreenStart
		next.View = m.startView()
		next.Selection = nil
	case ScreenTime:
		// Selection остаётся, сетка та же, что была при выборе дня.
		next.Screen = s.Origin
	case ScreenContact:
		next.Screen = ScreenTime
	}
	return next
}

func (m *Machine) pickDay(s State, day int) State {
	if !s.IsMonthScreen() {
		return s
	}
	cell, ok := s.View.Cell(day)
	if !ok || cell.IsUnavailable {
		return s
	}
	times := m.Config.TimesFor(cell.Weekday)
	if len(times) == 0 {
		return s
	}

	sel := booking.SelectionFromCell(cell)
	next := s
	next.Origin = s.Screen
	next.Screen = ScreenTime
	next.Selection = &sel
	next.Times = times
	return next
}

func pickTime(s State, t string) State {
	if s.Screen != ScreenTime || !slices.Contains(s.Times, t) {
		return s
	}
	next := s
	next.Screen = ScreenContact
	next.SelectedTime = t
	return next
}

func editField(s State, field, value string) State {
	if s.Screen != ScreenContact {
		return s
	}
	next := s
	switch field {
	case booking.FieldName:
		next.Contact.Name = value
	case booking.FieldEmail:
		next.Contact.Email = value
	}
	return next
}

func (m *Machine) submit(s State) (State, *booking.Payload) {
	if s.Screen != ScreenContact || s.Selection == nil {
		return s, nil
	}

	res := m.Validator.Validate(s.Contact)
	if !res.Valid {
		next := s
		next.FieldErrors = maps.Clone(res.FieldErrors)
		return next, nil
	}

	next := s
	next.Screen = ScreenDone
	next.FieldErrors = nil
	return next, &booking.Payload{
		DaySelection: *s.Selection,
		Contact:      s.Contact,
		SelectedTime: s.SelectedTime,
	}
}
