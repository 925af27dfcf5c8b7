package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveSubmission(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewBookingMetrics(reg)

	m.ObserveSubmission("http", "enveloped", "accepted")
	m.ObserveSubmission("http", "enveloped", "accepted")
	m.ObserveSubmission("grpc", "", "rejected")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.submissionsTotal.WithLabelValues("http", "enveloped", "accepted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.submissionsTotal.WithLabelValues("grpc", "none", "rejected")))
}

func TestObserveSinkLatency(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewBookingMetrics(reg)

	m.ObserveSinkLatency(0.01)

	assert.Equal(t, 1, testutil.CollectAndCount(m.sinkLatency))
}

func TestNilMetricsAreNoop(t *testing.T) {
	var m *BookingMetrics
	m.ObserveSubmission("http", "raw", "accepted")
	m.ObserveSinkLatency(1)
}
