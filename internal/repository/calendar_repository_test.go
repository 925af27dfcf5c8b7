package repository

import (
	"context"
	"encoding/json"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Leganyst/calendar-scheduler/internal/model"
)

func TestGormCalendarRepository_Create_SQLite(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := model.AutoMigrate(db); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}

	repo := NewGormCalendarRepository(db)
	blob := datatypes.JSON(`{"selectedTime":"12:00pm","contact":{"name":"Jo","email":"jo@x.com"}}`)
	rec := &model.CalendarRecord{Blob: blob}

	if err := repo.Create(context.Background(), rec); err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.ID == uuid.Nil {
		t.Fatalf("expected ID to be assigned")
	}
	if rec.CreatedAt.IsZero() {
		t.Fatalf("expected CreatedAt to be set")
	}

	var stored model.CalendarRecord
	if err := db.First(&stored, "id = ?", rec.ID).Error; err != nil {
		t.Fatalf("load stored record: %v", err)
	}

	var got, want map[string]any
	if err := json.Unmarshal(stored.Blob, &got); err != nil {
		t.Fatalf("decode stored blob: %v", err)
	}
	if err := json.Unmarshal(blob, &want); err != nil {
		t.Fatalf("decode blob: %v", err)
	}
	if got["selectedTime"] != want["selectedTime"] {
		t.Fatalf("blob mismatch: got %v, want %v", got, want)
	}
}

func TestGormCalendarRepository_Create_KeepsExplicitID(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := model.AutoMigrate(db); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}

	id := uuid.New()
	rec := &model.CalendarRecord{ID: id, Blob: datatypes.JSON(`{}`)}
	if err := NewGormCalendarRepository(db).Create(context.Background(), rec); err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.ID != id {
		t.Fatalf("expected ID %s to be kept, got %s", id, rec.ID)
	}
}

func TestGormCalendarRepository_Create_PostgresSingleInsert(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	if err != nil {
		t.Fatalf("open gorm over sqlmock: %v", err)
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "calendar_records"`)).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	rec := &model.CalendarRecord{Blob: datatypes.JSON(`{"selectedTime":"12:00pm"}`)}
	if err := NewGormCalendarRepository(db).Create(context.Background(), rec); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
