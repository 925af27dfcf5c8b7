package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// calendar_records — заявки из виджета календаря.
// Blob хранится как есть, схема проверяется раньше, на границе API.
type CalendarRecord struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	Blob datatypes.JSON `gorm:"type:jsonb;not null"`

	CreatedAt time.Time `gorm:"not null;index"`
}

// BeforeCreate проставляет ID на стороне приложения: в sqlite нет gen_random_uuid().
func (r *CalendarRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
