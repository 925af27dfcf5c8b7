package calendar

import (
	"fmt"
	"time"
)

// Сокращения дней недели, начиная с воскресенья.
var sundayLedLabels = [7]string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

// DayCell — одна ячейка дня в сетке месяца.
// Ровно один из IsPast/IsToday/IsFuture равен true.
type DayCell struct {
	Day     int          // день месяца, с 1
	Weekday time.Weekday // канонический номер, не зависит от поворота сетки
	Month   time.Month
	Year    int

	IsPast        bool
	IsToday       bool
	IsFuture      bool
	IsUnavailable bool
}

// Date возвращает дату ячейки в полночь по loc.
func (c DayCell) Date(loc *time.Location) time.Time {
	return time.Date(c.Year, c.Month, c.Day, 0, 0, 0, 0, loc)
}

// MonthView — результат расчёта сетки на месяц. Значение не меняется после создания.
type MonthView struct {
	Year  int
	Month time.Month
	Title string

	// Порядок колонок после поворота на WeekStartDay и подписи к ним.
	Weekdays      []time.Weekday
	WeekdayLabels []string

	LeadingBlankCount int
	DaysInMonth       int
	Days              []DayCell

	location *time.Location
}

// ComputeMonthView строит сетку месяца, в который попадает ref.
// today — реальная текущая дата, по ней считаются прошедшие дни.
func ComputeMonthView(ref time.Time, cfg Config, today time.Time) MonthView {
	loc := ref.Location()
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, loc)

	weekdays := rotateWeekdays(cfg.WeekStartDay)
	labels := make([]string, len(weekdays))
	for i, wd := range weekdays {
		labels[i] = sundayLedLabels[wd]
	}

	// Нулевой день следующего месяца — последний день текущего.
	daysInMonth := time.Date(first.Year(), first.Month()+1, 0, 0, 0, 0, 0, loc).Day()
	startingWeekday := first.Weekday()

	leading := 0
	for _, wd := range weekdays {
		if wd == startingWeekday {
			break
		}
		leading++
	}

	ty, tm, td := today.Date()
	todayKey := dateKey(ty, tm, td)

	days := make([]DayCell, 0, daysInMonth)
	for i := 0; i < daysInMonth; i++ {
		wd := time.Weekday((i + int(startingWeekday)) % 7)
		if !validWeekday(wd) {
			panic(fmt.Sprintf("calendar: computed weekday %d is out of range", int(wd)))
		}

		cell := DayCell{
			Day:     i + 1,
			Weekday: wd,
			Month:   first.Month(),
			Year:    first.Year(),
		}

		switch key := dateKey(cell.Year, cell.Month, cell.Day); {
		case key == todayKey:
			cell.IsToday = true
		case key < todayKey:
			cell.IsPast = true
		default:
			cell.IsFuture = true
		}
		cell.IsUnavailable = cell.IsPast || !cfg.IsAvailable(wd)

		days = append(days, cell)
	}

	return MonthView{
		Year:              first.Year(),
		Month:             first.Month(),
		Title:             first.Month().String(),
		Weekdays:          weekdays,
		WeekdayLabels:     labels,
		LeadingBlankCount: leading,
		DaysInMonth:       daysInMonth,
		Days:              days,
		location:          loc,
	}
}

// NextMonth строит сетку с 1-го числа следующего месяца (декабрь -> январь следующего года).
func NextMonth(current MonthView, cfg Config, today time.Time) MonthView {
	return ComputeMonthView(FirstOfNextMonth(current.First()), cfg, today)
}

func FirstOfNextMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, t.Location())
}

// First возвращает 1-е число месяца сетки.
func (v MonthView) First() time.Time {
	loc := v.location
	if loc == nil {
		loc = time.Local
	}
	return time.Date(v.Year, v.Month, 1, 0, 0, 0, 0, loc)
}

// Cell ищет ячейку по дню месяца.
func (v MonthView) Cell(day int) (DayCell, bool) {
	if day < 1 || day > len(v.Days) {
		return DayCell{}, false
	}
	return v.Days[day-1], true
}

// Rows раскладывает месяц по строкам из 7 колонок.
// Пустые ячейки до 1-го числа и после последнего равны nil.
func (v MonthView) Rows() [][]*DayCell {
	total := v.LeadingBlankCount + len(v.Days)
	if total%7 != 0 {
		total += 7 - total%7
	}

	rows := make([][]*DayCell, 0, total/7)
	for start := 0; start < total; start += 7 {
		row := make([]*DayCell, 7)
		for col := 0; col < 7; col++ {
			idx := start + col - v.LeadingBlankCount
			if idx >= 0 && idx < len(v.Days) {
				cell := v.Days[idx]
				row[col] = &cell
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func rotateWeekdays(start time.Weekday) []time.Weekday {
	out := make([]time.Weekday, 7)
	for i := range out {
		out[i] = time.Weekday(((int(start)+i)%7 + 7) % 7)
	}
	return out
}

func dateKey(year int, month time.Month, day int) int {
	return year*10000 + int(month)*100 + day
}
