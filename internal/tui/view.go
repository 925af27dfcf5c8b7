package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Leganyst/calendar-scheduler/internal/booking"
	"github.com/Leganyst/calendar-scheduler/internal/calendar"
	"github.com/Leganyst/calendar-scheduler/internal/flow"
)

const (
	msgNoTimes = "Sorry no times available for this day."
	msgDone    = "Thanks for scheduling some time!"
)

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n\n")

	switch m.state.Screen {
	case flow.ScreenStart, flow.ScreenNextMonth:
		b.WriteString(m.monthView())
	case flow.ScreenTime:
		b.WriteString(m.timeView())
	case flow.ScreenContact:
		b.WriteString(m.contactView())
	case flow.ScreenDone:
		b.WriteString(m.styles.Done.Render(msgDone))
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render(m.help()))
	b.WriteString("\n")
	return b.String()
}

func (m Model) header() string {
	back, forward := m.styles.ArrowDisabled, m.styles.ArrowDisabled
	if m.state.CanBack() {
		back = m.styles.Arrow
	}
	if m.state.CanForward() {
		forward = m.styles.Arrow
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.styles.Title.Render(m.state.Title()),
		back.Render("‹"),
		forward.Render("›"),
	)
}

func (m Model) monthView() string {
	view := m.state.View

	labels := make([]string, 0, len(view.WeekdayLabels))
	for _, l := range view.WeekdayLabels {
		labels = append(labels, m.styles.WeekdayLabel.Render(l))
	}

	lines := []string{lipgloss.JoinHorizontal(lipgloss.Top, labels...)}
	for _, row := range view.Rows() {
		cells := make([]string, 0, len(row))
		for _, c := range row {
			cells = append(cells, m.renderDay(c))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderDay(c *calendar.DayCell) string {
	if c == nil {
		return m.styles.DayUnavailable.Render("")
	}
	label := strconv.Itoa(c.Day)
	switch {
	case c.Day == m.dayCursor:
		return m.styles.DayCursor.Render(label)
	case c.IsUnavailable:
		return m.styles.DayUnavailable.Render(label)
	case c.IsToday:
		return m.styles.DayToday.Render(label)
	default:
		return m.styles.Day.Render(label)
	}
}

func (m Model) timeView() string {
	if len(m.state.Times) == 0 {
		return m.styles.Empty.Render(msgNoTimes)
	}
	slots := make([]string, 0, len(m.state.Times))
	for i, t := range m.state.Times {
		style := m.styles.Slot
		if i == m.timeCursor || t == m.state.SelectedTime {
			style = m.styles.SlotCursor
		}
		slots = append(slots, style.Render(t))
	}
	return lipgloss.JoinVertical(lipgloss.Left, slots...)
}

func (m Model) contactView() string {
	var b strings.Builder
	fields := []struct {
		label string
		field string
		idx   int
	}{
		{"Name", booking.FieldName, inputName},
		{"Email", booking.FieldEmail, inputEmail},
	}
	for _, f := range fields {
		b.WriteString(m.styles.Label.Render(f.label))
		b.WriteString("\n")
		b.WriteString(m.inputs[f.idx].View())
		b.WriteString("\n")
		if msg := m.state.FieldError(f.field); msg != "" {
			b.WriteString(m.styles.Error.Render(msg))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Button.Render("Submit"))
	return b.String()
}

func (m Model) help() string {
	switch m.state.Screen {
	case flow.ScreenStart, flow.ScreenNextMonth:
		return "←/→/↑/↓ move • enter pick • ]/[ month • q quit"
	case flow.ScreenTime:
		return "↑/↓ move • enter pick • esc back • q quit"
	case flow.ScreenContact:
		return "tab next field • enter submit • esc back • ctrl+c quit"
	default:
		return "q quit"
	}
}
