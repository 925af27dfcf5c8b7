package calendar

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidWeekday   = errors.New("weekday must be in range 0..6")
	ErrInvalidWeekStart = errors.New("week start day must be in range 0..6")
)

// AvailabilityMap — день недели (0=воскресенье..6=суббота) -> упорядоченный список слотов.
// Отсутствующий ключ или пустой список означает, что день недоступен.
type AvailabilityMap map[time.Weekday][]string

// Config — неизменяемая настройка календаря на одну сессию виджета.
type Config struct {
	WeekStartDay time.Weekday
	Availability AvailabilityMap
}

// Validate проверяет, что все дни недели лежат в диапазоне 0..6.
func (c Config) Validate() error {
	if !validWeekday(c.WeekStartDay) {
		return ErrInvalidWeekStart
	}
	for wd := range c.Availability {
		if !validWeekday(wd) {
			return fmt.Errorf("availability key %d: %w", int(wd), ErrInvalidWeekday)
		}
	}
	return nil
}

// TimesFor возвращает слоты для дня недели; пустой срез, если их нет.
func (c Config) TimesFor(wd time.Weekday) []string {
	times := c.Availability[wd]
	out := make([]string, len(times))
	copy(out, times)
	return out
}

// IsAvailable: у дня недели есть хотя бы один слот.
func (c Config) IsAvailable(wd time.Weekday) bool {
	return len(c.Availability[wd]) > 0
}

// формат YAML-файла
type fileConfig struct {
	WeekStartDay int              `yaml:"weekStartDay"`
	Availability map[int][]string `yaml:"availability"`
}

// ParseConfig разбирает YAML вида:
//
//	weekStartDay: 1
//	availability:
//	  1: ["12:00pm"]
//	  3: ["09:00am", "12:00pm"]
func ParseConfig(data []byte) (Config, error) {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Config{}, fmt.Errorf("parse calendar config: %w", err)
	}

	cfg := Config{
		WeekStartDay: time.Weekday(fc.WeekStartDay),
		Availability: make(AvailabilityMap, len(fc.Availability)),
	}
	for day, times := range fc.Availability {
		cfg.Availability[time.Weekday(day)] = times
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig читает настройку календаря из файла.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read calendar config: %w", err)
	}
	return ParseConfig(data)
}

func validWeekday(wd time.Weekday) bool {
	return wd >= time.Sunday && wd <= time.Saturday
}
