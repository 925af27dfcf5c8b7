package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Leganyst/calendar-scheduler/internal/booking"
	"github.com/Leganyst/calendar-scheduler/internal/metrics"
	"github.com/Leganyst/calendar-scheduler/internal/model"
	"github.com/Leganyst/calendar-scheduler/internal/repository"
)

const rawBody = `{"daySelection":{"day":12,"month":6,"year":2024},"contact":{"name":"Jo","email":"jo@x.com"},"selectedTime":"12:00pm"}`

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := model.AutoMigrate(db); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return db
}

type failingRepo struct{}

func (failingRepo) Create(context.Context, *model.CalendarRecord) error {
	return errors.New("disk full")
}

var _ repository.CalendarRepository = failingRepo{}

func assertSubmissions(t *testing.T, reg *prometheus.Registry, sample string) {
	t.Helper()
	expected := `# HELP calendar_bookings_submissions_total Booking submissions by transport, accepted shape and outcome
# TYPE calendar_bookings_submissions_total counter
` + sample + "\n"
	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "calendar_bookings_submissions_total"); err != nil {
		t.Fatalf("submissions metric: %v", err)
	}
}

func TestRecord_RawShapeStoredVerbatim(t *testing.T) {
	db := newTestDB(t)
	m := metrics.NewBookingMetrics(prometheus.NewRegistry())
	svc := NewBookingService(repository.NewGormCalendarRepository(db), m, nil)

	ack, err := svc.Record(context.Background(), []byte(rawBody), TransportHTTP)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if _, err := uuid.Parse(ack.ID); err != nil {
		t.Fatalf("ack id is not a uuid: %q", ack.ID)
	}
	if ack.CreatedAt.IsZero() {
		t.Fatalf("expected createdAt to be set")
	}

	var stored model.CalendarRecord
	if err := db.First(&stored, "id = ?", ack.ID).Error; err != nil {
		t.Fatalf("load record: %v", err)
	}
	if string(stored.Blob) != rawBody {
		t.Fatalf("blob changed on the way in:\n got %s\nwant %s", stored.Blob, rawBody)
	}
}

func TestRecord_EnvelopedShape(t *testing.T) {
	svc := NewBookingService(repository.NewGormCalendarRepository(newTestDB(t)), nil, nil)

	body := []byte(`{"@calendar/scheduler":` + rawBody + `}`)
	if _, err := svc.Record(context.Background(), body, TransportHTTP); err != nil {
		t.Fatalf("record enveloped: %v", err)
	}
}

func TestRecord_InvalidBodyNotStored(t *testing.T) {
	db := newTestDB(t)
	reg := prometheus.NewRegistry()
	svc := NewBookingService(repository.NewGormCalendarRepository(db), metrics.NewBookingMetrics(reg), nil)

	_, err := svc.Record(context.Background(), []byte(`{"contact":{"name":"Jo"}}`), TransportHTTP)
	if !errors.Is(err, booking.ErrInvalidPayload) {
		t.Fatalf("expected ErrInvalidPayload, got %v", err)
	}

	var count int64
	if err := db.Model(&model.CalendarRecord{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected nothing stored, got %d records", count)
	}
	assertSubmissions(t, reg, `calendar_bookings_submissions_total{outcome="rejected",shape="none",transport="http"} 1`)
}

func TestRecord_RepositoryFailure(t *testing.T) {
	reg := prometheus.NewRegistry()
	svc := NewBookingService(failingRepo{}, metrics.NewBookingMetrics(reg), nil)

	_, err := svc.Record(context.Background(), []byte(rawBody), TransportHTTP)
	if err == nil {
		t.Fatalf("expected error from failing repository")
	}
	if errors.Is(err, booking.ErrInvalidPayload) {
		t.Fatalf("storage failure must not look like a validation failure: %v", err)
	}
	assertSubmissions(t, reg, `calendar_bookings_submissions_total{outcome="failed",shape="raw",transport="http"} 1`)
}

func TestSubmitBooking_OK(t *testing.T) {
	svc := NewBookingService(repository.NewGormCalendarRepository(newTestDB(t)), nil, nil)

	req, err := structpb.NewStruct(map[string]any{
		"daySelection": map[string]any{"day": 12, "month": 6, "year": 2024},
		"contact":      map[string]any{"name": "Jo", "email": "jo@x.com"},
		"selectedTime": "12:00pm",
	})
	if err != nil {
		t.Fatalf("build request: %v", err)
	}

	resp, err := svc.SubmitBooking(context.Background(), req)
	if err != nil {
		t.Fatalf("SubmitBooking: %v", err)
	}
	if resp.GetFields()["id"].GetStringValue() == "" {
		t.Fatalf("expected id in response, got %v", resp)
	}
	if resp.GetFields()["createdAt"].GetStringValue() == "" {
		t.Fatalf("expected createdAt in response, got %v", resp)
	}
}

func TestSubmitBooking_ErrorCodes(t *testing.T) {
	bad, _ := structpb.NewStruct(map[string]any{"selectedTime": "12:00pm"})
	good, _ := structpb.NewStruct(map[string]any{
		"daySelection": map[string]any{"day": 1, "month": 7, "year": 2024},
		"contact":      map[string]any{"name": "Jo", "email": "jo@x.com"},
		"selectedTime": "12:00pm",
	})

	cases := []struct {
		name string
		svc  *BookingService
		req  *structpb.Struct
		want codes.Code
	}{
		{"nil request", NewBookingService(failingRepo{}, nil, nil), nil, codes.InvalidArgument},
		{"invalid body", NewBookingService(failingRepo{}, nil, nil), bad, codes.InvalidArgument},
		{"storage down", NewBookingService(failingRepo{}, nil, nil), good, codes.Internal},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.svc.SubmitBooking(context.Background(), tc.req)
			if got := status.Code(err); got != tc.want {
				t.Fatalf("code = %v, want %v (err=%v)", got, tc.want, err)
			}
		})
	}
}

func TestRecord_InvalidUTF8Rejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(repository.NewGormCalendarRepository(db), nil, nil)

	body := strings.Replace(rawBody, `"Jo"`, "\"J\xffo\"", 1)
	_, err := svc.Record(context.Background(), []byte(body), TransportHTTP)
	if !errors.Is(err, booking.ErrInvalidPayload) {
		t.Fatalf("expected ErrInvalidPayload, got %v", err)
	}

	var count int64
	if err := db.Model(&model.CalendarRecord{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("invalid UTF-8 body was stored")
	}
}
