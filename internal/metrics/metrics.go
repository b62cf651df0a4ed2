// Package metrics exposes Prometheus collectors for the gateway.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "gateway"

// AuthMetrics records authentication filter decisions. It satisfies
// authn.Observer.
type AuthMetrics struct {
	decisions *prometheus.CounterVec
	duration  prometheus.Histogram
}

// NewAuthMetrics creates the collectors and registers them with reg.
// Registration failures panic, as with prometheus.MustRegister.
func NewAuthMetrics(reg prometheus.Registerer) *AuthMetrics {
	m := &AuthMetrics{
		decisions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "auth_decisions_total",
				Help:      "Authentication filter decisions by outcome and reason.",
			},
			[]string{"decision", "reason"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "auth_filter_duration_seconds",
				Help:      "Time spent deciding whether a request may pass.",
				Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
			},
		),
	}

	reg.MustRegister(m.decisions, m.duration)
	return m
}

// ObserveDecision counts one decision and its latency.
func (m *AuthMetrics) ObserveDecision(decision, reason string, elapsed time.Duration) {
	m.decisions.WithLabelValues(decision, reason).Inc()
	m.duration.Observe(elapsed.Seconds())
}
