package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
	"gorm.io/datatypes"

	calendarv1 "github.com/Leganyst/calendar-scheduler/internal/api/calendar/v1"
	"github.com/Leganyst/calendar-scheduler/internal/booking"
	"github.com/Leganyst/calendar-scheduler/internal/metrics"
	"github.com/Leganyst/calendar-scheduler/internal/model"
	"github.com/Leganyst/calendar-scheduler/internal/repository"
)

const (
	TransportHTTP = "http"
	TransportGRPC = "grpc"
)

var bookingTracer = otel.Tracer("calendar.internal.service")

// BookingService принимает заявки из виджета и пишет их в хранилище как есть.
// Двойные бронирования одного слота не отслеживаются.
type BookingService struct {
	calendarv1.UnimplementedBookingServiceServer

	repo    repository.CalendarRepository
	metrics *metrics.BookingMetrics
	logger  *zap.Logger
}

func NewBookingService(
	repo repository.CalendarRepository,
	m *metrics.BookingMetrics,
	logger *zap.Logger,
) *BookingService {
	if repo == nil {
		panic("service: calendar repository required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BookingService{repo: repo, metrics: m, logger: logger}
}

// Record проверяет тело по обоим форматам и сохраняет его целиком одним блобом.
// Ошибка формата оборачивает booking.ErrInvalidPayload.
func (s *BookingService) Record(ctx context.Context, raw []byte, transport string) (booking.Ack, error) {
	shape, err := booking.ParseSubmission(raw)
	if err != nil {
		s.metrics.ObserveSubmission(transport, "", "rejected")
		s.logger.Debug("booking rejected", zap.String("transport", transport), zap.Error(err))
		return booking.Ack{}, err
	}

	ctx, span := bookingTracer.Start(ctx, "bookings.record", trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()
	span.SetAttributes(
		attribute.String("calendar.transport", transport),
		attribute.String("calendar.shape", string(shape)),
	)

	rec := &model.CalendarRecord{Blob: datatypes.JSON(raw)}

	started := time.Now()
	err = s.repo.Create(ctx, rec)
	s.metrics.ObserveSinkLatency(time.Since(started).Seconds())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "persist failed")
		s.metrics.ObserveSubmission(transport, string(shape), "failed")
		s.logger.Error("booking persist failed", zap.String("transport", transport), zap.Error(err))
		return booking.Ack{}, fmt.Errorf("record booking: %w", err)
	}

	s.metrics.ObserveSubmission(transport, string(shape), "accepted")
	s.logger.Info("booking recorded",
		zap.String("id", rec.ID.String()),
		zap.String("transport", transport),
		zap.String("shape", string(shape)),
	)

	return booking.Ack{ID: rec.ID.String(), CreatedAt: rec.CreatedAt}, nil
}

// SubmitBooking — реализация RPC calendar.v1.BookingService/SubmitBooking.
func (s *BookingService) SubmitBooking(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request body is required")
	}

	raw, err := protojson.Marshal(req)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "encode request: %v", err)
	}

	ack, err := s.Record(ctx, raw, TransportGRPC)
	if err != nil {
		if errors.Is(err, booking.ErrInvalidPayload) {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		return nil, status.Errorf(codes.Internal, "record booking: %v", err)
	}

	resp, err := structpb.NewStruct(map[string]any{
		"id":        ack.ID,
		"createdAt": ack.CreatedAt.Format(time.RFC3339Nano),
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	return resp, nil
}
