// Package tui — терминальный виджет бронирования поверх flow.Machine.
package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorBlue      = lipgloss.Color("#2563eb")
	colorBlueLight = lipgloss.Color("#dbeafe")
	colorGray      = lipgloss.Color("#9ca3af")
	colorGrayLight = lipgloss.Color("#f3f4f6")
	colorRed       = lipgloss.Color("#dc2626")
	colorWhite     = lipgloss.Color("#ffffff")
)

type Styles struct {
	Title         lipgloss.Style
	Arrow         lipgloss.Style
	ArrowDisabled lipgloss.Style

	WeekdayLabel   lipgloss.Style
	Day            lipgloss.Style
	DayUnavailable lipgloss.Style
	DayToday       lipgloss.Style
	DayCursor      lipgloss.Style

	Slot       lipgloss.Style
	SlotCursor lipgloss.Style
	Empty      lipgloss.Style

	Label  lipgloss.Style
	Error  lipgloss.Style
	Button lipgloss.Style

	Done lipgloss.Style
	Help lipgloss.Style
}

func DefaultStyles() Styles {
	cell := lipgloss.NewStyle().Width(4).Align(lipgloss.Center)

	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Width(20),
		Arrow: lipgloss.NewStyle().
			Foreground(colorBlue).
			Background(colorBlueLight).
			Bold(true).
			Padding(0, 1).
			MarginLeft(1),
		ArrowDisabled: lipgloss.NewStyle().
			Foreground(colorGray).
			Background(colorGrayLight).
			Bold(true).
			Padding(0, 1).
			MarginLeft(1),

		WeekdayLabel:   cell.Bold(true),
		Day:            cell.Foreground(colorBlue).Bold(true),
		DayUnavailable: cell.Foreground(colorGray),
		DayToday:       cell.Foreground(colorBlue).Bold(true).Underline(true),
		DayCursor:      cell.Foreground(colorWhite).Background(colorBlue).Bold(true),

		Slot: lipgloss.NewStyle().
			Foreground(colorBlue).
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBlue).
			Width(24).
			Align(lipgloss.Center),
		SlotCursor: lipgloss.NewStyle().
			Foreground(colorBlue).
			Background(colorBlueLight).
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBlue).
			Width(24).
			Align(lipgloss.Center),
		Empty: lipgloss.NewStyle().Foreground(colorGray),

		Label: lipgloss.NewStyle().Bold(true),
		Error: lipgloss.NewStyle().Foreground(colorRed),
		Button: lipgloss.NewStyle().
			Foreground(colorWhite).
			Background(colorBlue).
			Bold(true).
			Padding(0, 2),

		Done: lipgloss.NewStyle().
			MarginTop(1).
			Width(36).
			Align(lipgloss.Center),
		Help: lipgloss.NewStyle().
			Foreground(colorGray).
			MarginTop(1),
	}
}
