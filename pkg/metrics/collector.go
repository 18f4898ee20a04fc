// Package metrics exposes Prometheus collectors for the booking service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/shearbook/shearbook/internal/assistant"
)

var (
	assistantMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_messages_total",
			Help: "Total number of assistant messages processed labeled by status",
		},
		[]string{"status"},
	)
	messageDurationSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "assistant_message_duration_seconds",
			Help:    "Duration of assistant message processing in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
	stageTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_stage_transitions_total",
			Help: "Total number of dialogue stage transitions",
		},
		[]string{"from", "to"},
	)
	bookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookings_total",
			Help: "Total number of appointments created labeled by channel and status",
		},
		[]string{"channel", "status"},
	)
	activeSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "assistant_active_sessions",
			Help: "Current number of live conversation sessions",
		},
	)
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests labeled by path and status code",
		},
		[]string{"path", "status"},
	)
)

func init() {
	assistant.RegisterStageRecorder(RecordStageTransition)
}

// RecordMessage increments the processed-message counter and records duration.
func RecordMessage(status string, duration time.Duration) {
	if status == "" {
		status = "unknown"
	}

	assistantMessagesTotal.WithLabelValues(status).Inc()
	messageDurationSeconds.Observe(duration.Seconds())
}

// RecordStageTransition counts a dialogue stage change. Registered with the
// assistant package at init.
func RecordStageTransition(from, to string) {
	if from == "" {
		from = "none"
	}
	if to == "" {
		to = "none"
	}

	stageTransitionsTotal.WithLabelValues(from, to).Inc()
}

// RecordBooking counts an appointment creation attempt.
func RecordBooking(channel, status string) {
	if channel == "" {
		channel = "unknown"
	}
	if status == "" {
		status = "unknown"
	}

	bookingsTotal.WithLabelValues(channel, status).Inc()
}

// SetActiveSessions publishes the current live session count.
func SetActiveSessions(count int) {
	activeSessions.Set(float64(count))
}

// RecordHTTPRequest counts a handled HTTP request.
func RecordHTTPRequest(path, status string) {
	httpRequestsTotal.WithLabelValues(path, status).Inc()
}
