package flow

// Event описывает действие посетителя.
type Event interface {
	isEvent()
}

type ForwardNav struct{}

type BackNav struct{}

// PickDay: клик по дню месяца.
type PickDay struct {
	Day int
}

type PickTime struct {
	Time string
}

// EditField приходит на каждый ввод в поле name или email.
type EditField struct {
	Field string
	Value string
}

type Submit struct{}

func (ForwardNav) isEvent() {}
func (BackNav) isEvent() {}
func (PickDay) isEvent() {}
func (PickTime) isEvent() {}
func (EditField) isEvent() {}
func (Submit) isEvent() {}
