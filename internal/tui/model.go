package tui

import (
	"context"
	"sync"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/Leganyst/calendar-scheduler/internal/booking"
	"github.com/Leganyst/calendar-scheduler/internal/flow"
	"github.com/Leganyst/calendar-scheduler/internal/submit"
)

const (
	inputName = iota
	inputEmail
)

// SubmittedMsg приходит, когда отправка завершилась. Исход уже записан в лог.
type SubmittedMsg struct{}

// Model — bubbletea-модель виджета. Всё состояние бронирования живёт
// в flow.State, здесь только курсоры и поля ввода.
type Model struct {
	ctx       context.Context
	machine   *flow.Machine
	state     flow.State
	submitter submit.Submitter
	logger    *zap.Logger
	styles    Styles

	dayCursor  int
	timeCursor int

	inputs [2]textinput.Model
	focus  int

	outbox *outbox
}

// outbox общий для всех копий Model: bubbletea копирует модель на каждом Update.
type outbox struct {
	mu    sync.Mutex
	sends []func()
}

func (o *outbox) add(send func()) func() {
	var once sync.Once
	run := func() { once.Do(send) }
	o.mu.Lock()
	o.sends = append(o.sends, run)
	o.mu.Unlock()
	return run
}

func (o *outbox) flush() {
	o.mu.Lock()
	sends := o.sends
	o.sends = nil
	o.mu.Unlock()
	for _, run := range sends {
		run()
	}
}

func New(ctx context.Context, machine *flow.Machine, submitter submit.Submitter, logger *zap.Logger) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	name := textinput.New()
	name.Placeholder = "Your Name"
	name.CharLimit = 120
	name.Width = 30
	name.Focus()

	email := textinput.New()
	email.Placeholder = "your@email.com"
	email.CharLimit = 254
	email.Width = 30

	m := Model{
		ctx:       ctx,
		machine:   machine,
		state:     machine.Initial(),
		submitter: submitter,
		logger:    logger,
		styles:    DefaultStyles(),
		inputs:    [2]textinput.Model{name, email},
		outbox:    &outbox{},
	}
	m.dayCursor = firstSelectableDay(m.state)
	return m
}

// Flush досылает заявки, команды которых программа не успела выполнить
// до выхода, и ждёт уже начатые. Вызывается после Program.Run.
func (m Model) Flush() {
	m.outbox.flush()
}

func (m Model) State() flow.State {
	return m.state
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SubmittedMsg:
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.state.Screen {
		case flow.ScreenStart, flow.ScreenNextMonth:
			return m.updateMonth(msg)
		case flow.ScreenTime:
			return m.updateTime(msg)
		case flow.ScreenContact:
			return m.updateContact(msg)
		case flow.ScreenDone:
			if msg.String() == "q" || msg.Type == tea.KeyEsc {
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m Model) apply(e flow.Event) (Model, *booking.Payload) {
	prev := m.state
	next, payload := m.machine.Transition(prev, e)
	m.state = next

	if next.IsMonthScreen() && (!prev.IsMonthScreen() || next.View.Month != prev.View.Month) {
		if !prev.IsMonthScreen() && next.Selection != nil && next.View.Month == next.Selection.Month {
			m.dayCursor = next.Selection.Day
		} else {
			m.dayCursor = firstSelectableDay(next)
		}
	}
	if next.Screen == flow.ScreenTime && prev.Screen != flow.ScreenTime && prev.Screen != flow.ScreenContact {
		m.timeCursor = 0
	}
	return m, payload
}

func (m Model) updateMonth(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "left", "h":
		m.moveDay(-1)
	case "right", "l":
		m.moveDay(1)
	case "up", "k":
		m.moveDay(-7)
	case "down", "j":
		m.moveDay(7)
	case "enter", " ":
		m, _ = m.apply(flow.PickDay{Day: m.dayCursor})
	case "]", ">", "pgdown":
		m, _ = m.apply(flow.ForwardNav{})
	case "[", "<", "pgup", "esc", "backspace":
		m, _ = m.apply(flow.BackNav{})
	}
	return m, nil
}

func (m *Model) moveDay(delta int) {
	day := m.dayCursor + delta
	if day < 1 || day > m.state.View.DaysInMonth {
		return
	}
	m.dayCursor = day
}

func (m Model) updateTime(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.timeCursor > 0 {
			m.timeCursor--
		}
	case "down", "j":
		if m.timeCursor < len(m.state.Times)-1 {
			m.timeCursor++
		}
	case "enter", " ":
		if m.timeCursor < len(m.state.Times) {
			m, _ = m.apply(flow.PickTime{Time: m.state.Times[m.timeCursor]})
		}
	case "[", "<", "esc", "backspace":
		m, _ = m.apply(flow.BackNav{})
	}
	return m, nil
}

func (m Model) updateContact(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m, _ = m.apply(flow.BackNav{})
		return m, nil
	case tea.KeyTab, tea.KeyDown:
		cmd := m.cycleFocus(1)
		return m, cmd
	case tea.KeyShiftTab, tea.KeyUp:
		cmd := m.cycleFocus(-1)
		return m, cmd
	case tea.KeyEnter:
		var payload *booking.Payload
		m, payload = m.apply(flow.Submit{})
		if payload == nil {
			return m, nil
		}
		return m, m.dispatch(*payload)
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)

	field := booking.FieldName
	if m.focus == inputEmail {
		field = booking.FieldEmail
	}
	m, _ = m.apply(flow.EditField{Field: field, Value: m.inputs[m.focus].Value()})
	return m, cmd
}

func (m *Model) cycleFocus(delta int) tea.Cmd {
	n := len(m.inputs)
	m.inputs[m.focus].Blur()
	m.focus = ((m.focus+delta)%n + n) % n
	return m.inputs[m.focus].Focus()
}

// dispatch отправляет заявку вне цикла Update. Экран уже done, результат
// посетителю не показывается. Заявка уходит ровно один раз: либо командой,
// либо из Flush.
func (m Model) dispatch(p booking.Payload) tea.Cmd {
	ctx, s, logger := m.ctx, m.submitter, m.logger
	send := m.outbox.add(func() {
		submit.Dispatch(ctx, s, p, logger)
	})
	return func() tea.Msg {
		send()
		return SubmittedMsg{}
	}
}

func firstSelectableDay(s flow.State) int {
	for _, c := range s.View.Days {
		if !c.IsUnavailable {
			return c.Day
		}
	}
	return 1
}
