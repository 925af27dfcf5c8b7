// Package calendarv1 описывает gRPC-сервис приёма заявок календаря.
//
// Сообщения — google.protobuf.Struct: тело то же, что и в JSON POST,
// поэтому отдельный .proto и генерация не нужны.
package calendarv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	BookingServiceName                          = "calendar.v1.BookingService"
	BookingService_SubmitBooking_FullMethodName = "/calendar.v1.BookingService/SubmitBooking"
)

// BookingServiceServer — серверная сторона сервиса.
type BookingServiceServer interface {
	SubmitBooking(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// UnimplementedBookingServiceServer встраивается в реализации.
type UnimplementedBookingServiceServer struct{}

func (UnimplementedBookingServiceServer) SubmitBooking(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method SubmitBooking not implemented")
}

func RegisterBookingServiceServer(s grpc.ServiceRegistrar, srv BookingServiceServer) {
	s.RegisterService(&BookingService_ServiceDesc, srv)
}

func _BookingService_SubmitBooking_Handler(
	srv any,
	ctx context.Context,
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BookingServiceServer).SubmitBooking(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: BookingService_SubmitBooking_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(BookingServiceServer).SubmitBooking(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

var BookingService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: BookingServiceName,
	HandlerType: (*BookingServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "SubmitBooking",
			Handler:    _BookingService_SubmitBooking_Handler,
		},
	},
	Streams: []grpc.StreamDesc{},
}

// BookingServiceClient — клиентская сторона сервиса.
type BookingServiceClient interface {
	SubmitBooking(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type bookingServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewBookingServiceClient(cc grpc.ClientConnInterface) BookingServiceClient {
	return &bookingServiceClient{cc: cc}
}

func (c *bookingServiceClient) SubmitBooking(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, BookingService_SubmitBooking_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
