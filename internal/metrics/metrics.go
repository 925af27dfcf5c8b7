package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics — счётчики приёма заявок и задержка записи в хранилище.
type BookingMetrics struct {
	submissionsTotal *prometheus.CounterVec
	sinkLatency      prometheus.Histogram
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "calendar",
			Subsystem: "bookings",
			Name:      "submissions_total",
			Help:      "Booking submissions by transport, accepted shape and outcome",
		}, []string{"transport", "shape", "outcome"}),
		sinkLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "calendar",
			Subsystem: "bookings",
			Name:      "sink_write_seconds",
			Help:      "Latency of persisting a booking blob",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.sinkLatency)
	return m
}

// ObserveSubmission учитывает одну заявку. shape пустой, если тело не прошло проверку.
func (m *BookingMetrics) ObserveSubmission(transport, shape, outcome string) {
	if m == nil {
		return
	}
	if shape == "" {
		shape = "none"
	}
	m.submissionsTotal.WithLabelValues(transport, shape, outcome).Inc()
}

func (m *BookingMetrics) ObserveSinkLatency(seconds float64) {
	if m == nil {
		return
	}
	m.sinkLatency.Observe(seconds)
}
