package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Leganyst/calendar-scheduler/internal/model"
)

// CalendarRepository — хранилище заявок. Только запись, без чтения обратно.
type CalendarRepository interface {
	// Сохранить заявку одним INSERT.
	Create(ctx context.Context, record *model.CalendarRecord) error
}

// Реализация на GORM.
type GormCalendarRepository struct {
	db *gorm.DB
}

func NewGormCalendarRepository(db *gorm.DB) *GormCalendarRepository {
	return &GormCalendarRepository{db: db}
}

func (r *GormCalendarRepository) Create(ctx context.Context, record *model.CalendarRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}
