package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// AdmissionMetrics exposes the rate limiter's operational counters on a
// dedicated registry so repeated construction in tests never collides with
// the global default registerer.
type AdmissionMetrics struct {
	registry *prometheus.Registry

	decisions       *prometheus.CounterVec
	thresholdEvents *prometheus.CounterVec
	notifications   *prometheus.CounterVec
	evalDuration    prometheus.Histogram
}

func NewAdmissionMetrics() *AdmissionMetrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(registry)

	return &AdmissionMetrics{
		registry: registry,
		decisions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ratekeeper_admission_decisions_total",
			Help: "Admission decisions by outcome, denying limit kind and throttle type.",
		}, []string{"result", "limit_kind", "throttle"}),
		thresholdEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ratekeeper_global_threshold_events_total",
			Help: "Global usage threshold crossings by level (warn, full).",
		}, []string{"level"}),
		notifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ratekeeper_notifications_accepted_total",
			Help: "Accepted notifications by channel.",
		}, []string{"channel"}),
		evalDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "ratekeeper_evaluation_duration_seconds",
			Help:    "Duration of one atomic counter-store evaluation round trip.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14),
		}),
	}
}

// RecordDecision counts one admission decision.
func (m *AdmissionMetrics) RecordDecision(allowed bool, limitKind, throttle string) {
	result := "allowed"
	if !allowed {
		result = "denied"
	}
	m.decisions.WithLabelValues(result, limitKind, throttle).Inc()
}

// RecordThresholdEvent counts a global usage threshold crossing.
func (m *AdmissionMetrics) RecordThresholdEvent(level string) {
	m.thresholdEvents.WithLabelValues(level).Inc()
}

// ObserveEvaluation records the duration of one counter-store round trip.
func (m *AdmissionMetrics) ObserveEvaluation(d time.Duration) {
	m.evalDuration.Observe(d.Seconds())
}

// RecordNotification counts one accepted notification.
func (m *AdmissionMetrics) RecordNotification(channel string) {
	m.notifications.WithLabelValues(channel).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *AdmissionMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		ErrorHandling: promhttp.ContinueOnError,
	})
}
