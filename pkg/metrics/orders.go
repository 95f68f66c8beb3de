package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// OrderMetrics records order submission outcomes.
type OrderMetrics struct {
	duration *prometheus.HistogramVec
	attempts *prometheus.CounterVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
}

// NewOrderMetrics registers the submission metrics on the provided registerer.
func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	if reg == nil {
		return &OrderMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "order_submit_duration_seconds",
		Help:    "Duration of order submissions in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})
	attempts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_submit_attempts",
		Help: "Order submissions attempted, counted before the outcome is known.",
	}, []string{"method"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_submit_success",
		Help: "Successful order submissions.",
	}, []string{"method"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_submit_failure",
		Help: "Failed order submissions.",
	}, []string{"method", "code"})
	reg.MustRegister(duration, attempts, success, failure)
	return &OrderMetrics{
		duration: duration,
		attempts: attempts,
		success:  success,
		failure:  failure,
	}
}

// IncAttempt counts one submission attempt for the delivery method.
func (o *OrderMetrics) IncAttempt(method string) {
	if o == nil || o.attempts == nil {
		return
	}
	o.attempts.WithLabelValues(normalizeLabel(method)).Inc()
}

// ObserveDuration records how long the submission took.
func (o *OrderMetrics) ObserveDuration(method string, duration time.Duration) {
	if o == nil || o.duration == nil {
		return
	}
	o.duration.WithLabelValues(normalizeLabel(method)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for the delivery method.
func (o *OrderMetrics) IncSuccess(method string) {
	if o == nil || o.success == nil {
		return
	}
	o.success.WithLabelValues(normalizeLabel(method)).Inc()
}

// IncFailure increments the failure counter for the delivery method and
// error code.
func (o *OrderMetrics) IncFailure(method, code string) {
	if o == nil || o.failure == nil {
		return
	}
	o.failure.WithLabelValues(normalizeLabel(method), normalizeLabel(code)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
