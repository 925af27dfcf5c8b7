package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Leganyst/calendar-scheduler/internal/booking"
)

// BookingRecorder вызывается на каждую заявку.
type BookingRecorder interface {
	Record(ctx context.Context, raw []byte, transport string) (booking.Ack, error)
}

// Config — зависимости HTTP-слоя.
type Config struct {
	Logger             *zap.Logger
	Bookings           BookingRecorder
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
}

// New собирает chi-роутер со всеми маршрутами.
func New(cfg Config) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(CORS(cfg.CORSAllowedOrigins))
	}
	r.Use(RequestLogger(logger))

	h := &bookingHandler{recorder: cfg.Bookings, logger: logger}

	r.Get("/health", healthCheck)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	// Виджет по умолчанию шлёт в корень, /bookings оставлен для явных клиентов.
	r.Post("/", h.submit)
	r.Post("/bookings", h.submit)

	return r
}
