package submit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	calendarv1 "github.com/Leganyst/calendar-scheduler/internal/api/calendar/v1"
	"github.com/Leganyst/calendar-scheduler/internal/booking"
)

// GRPCSubmitter шлёт ту же заявку без обёртки через BookingService.
type GRPCSubmitter struct {
	client calendarv1.BookingServiceClient
}

func NewGRPCSubmitter(client calendarv1.BookingServiceClient) *GRPCSubmitter {
	return &GRPCSubmitter{client: client}
}

// DialGRPC открывает соединение без TLS; вызывающий закрывает его сам.
func DialGRPC(target string, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", target, err)
	}
	return conn, nil
}

func (s *GRPCSubmitter) Submit(ctx context.Context, p booking.Payload) (booking.Ack, error) {
	raw, err := booking.EncodeRaw(p)
	if err != nil {
		return booking.Ack{}, fmt.Errorf("encode booking: %w", err)
	}

	req := &structpb.Struct{}
	if err := protojson.Unmarshal(raw, req); err != nil {
		return booking.Ack{}, fmt.Errorf("encode booking struct: %w", err)
	}

	resp, err := s.client.SubmitBooking(ctx, req)
	if err != nil {
		if st, ok := status.FromError(err); ok {
			return booking.Ack{}, fmt.Errorf("%w: %s: %s", ErrNetwork, st.Code(), st.Message())
		}
		return booking.Ack{}, fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	return ackFromStruct(resp)
}

func ackFromStruct(resp *structpb.Struct) (booking.Ack, error) {
	fields := resp.GetFields()
	ack := booking.Ack{ID: fields["id"].GetStringValue()}
	if ack.ID == "" {
		return booking.Ack{}, errors.New("ack without id")
	}
	if ts := fields["createdAt"].GetStringValue(); ts != "" {
		created, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return booking.Ack{}, fmt.Errorf("parse createdAt: %w", err)
		}
		ack.CreatedAt = created
	}
	return ack, nil
}
