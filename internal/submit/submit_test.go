package submit

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	calendarv1 "github.com/Leganyst/calendar-scheduler/internal/api/calendar/v1"
	"github.com/Leganyst/calendar-scheduler/internal/booking"
	"github.com/Leganyst/calendar-scheduler/internal/model"
	"github.com/Leganyst/calendar-scheduler/internal/repository"
	"github.com/Leganyst/calendar-scheduler/internal/service"
)

func samplePayload() booking.Payload {
	return booking.Payload{
		DaySelection: booking.Selection{Day: 12, Month: time.June, Year: 2024, Weekday: time.Wednesday},
		Contact:      booking.Contact{Name: "Jo", Email: "jo@x.com"},
		SelectedTime: "12:00pm",
	}
}

func TestHTTPSubmitter_PostsEnvelopedBody(t *testing.T) {
	var gotBody []byte
	var gotMethod, gotType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"rec-1","createdAt":"2024-06-10T09:00:00Z"}`))
	}))
	defer srv.Close()

	ack, err := NewHTTPSubmitter(srv.URL, nil).Submit(context.Background(), samplePayload())
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "application/json", gotType)
	assert.Equal(t, "rec-1", ack.ID)

	shape, err := booking.ParseSubmission(gotBody)
	require.NoError(t, err)
	assert.Equal(t, booking.ShapeEnveloped, shape)

	var env map[string]booking.Payload
	require.NoError(t, json.Unmarshal(gotBody, &env))
	assert.Equal(t, samplePayload(), env[booking.EnvelopeKey])
}

func TestHTTPSubmitter_NonSuccessIsNetworkError(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewHTTPSubmitter(srv.URL, nil).Submit(context.Background(), samplePayload())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNetwork))
	// повторов нет
	assert.Equal(t, 1, calls)
}

func TestHTTPSubmitter_UnreachableIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewHTTPSubmitter(url, nil).Submit(context.Background(), samplePayload())
	assert.ErrorIs(t, err, ErrNetwork)
}

func startBufconn(t *testing.T, srv calendarv1.BookingServiceServer) calendarv1.BookingServiceClient {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	gs := grpc.NewServer()
	calendarv1.RegisterBookingServiceServer(gs, srv)
	go func() { _ = gs.Serve(lis) }()
	t.Cleanup(gs.Stop)

	conn, err := DialGRPC("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return calendarv1.NewBookingServiceClient(conn)
}

func TestGRPCSubmitter_StoresRawShape(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, model.AutoMigrate(db))

	svc := service.NewBookingService(repository.NewGormCalendarRepository(db), nil, nil)
	client := startBufconn(t, svc)

	ack, err := NewGRPCSubmitter(client).Submit(context.Background(), samplePayload())
	require.NoError(t, err)
	assert.NotEmpty(t, ack.ID)
	assert.False(t, ack.CreatedAt.IsZero())

	var stored model.CalendarRecord
	require.NoError(t, db.First(&stored, "id = ?", ack.ID).Error)

	shape, err := booking.ParseSubmission(stored.Blob)
	require.NoError(t, err)
	assert.Equal(t, booking.ShapeRaw, shape)
}

type rejectingServer struct {
	calendarv1.UnimplementedBookingServiceServer
}

func (rejectingServer) SubmitBooking(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.InvalidArgument, "nope")
}

func TestGRPCSubmitter_StatusIsNetworkError(t *testing.T) {
	client := startBufconn(t, rejectingServer{})

	_, err := NewGRPCSubmitter(client).Submit(context.Background(), samplePayload())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNetwork)
	assert.Contains(t, err.Error(), "InvalidArgument")
}

type stubSubmitter struct {
	ack booking.Ack
	err error
	got []booking.Payload
}

func (s *stubSubmitter) Submit(_ context.Context, p booking.Payload) (booking.Ack, error) {
	s.got = append(s.got, p)
	return s.ack, s.err
}

func TestDispatch_LogsOutcome(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	ok := &stubSubmitter{ack: booking.Ack{ID: "rec-1"}}
	Dispatch(context.Background(), ok, samplePayload(), logger)

	failing := &stubSubmitter{err: ErrNetwork}
	Dispatch(context.Background(), failing, samplePayload(), logger)

	require.Len(t, ok.got, 1)
	require.Len(t, failing.got, 1)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "booking submitted", entries[0].Message)
	assert.Equal(t, "booking submission failed", entries[1].Message)
	assert.Equal(t, zap.ErrorLevel, entries[1].Level)
}
