package ratelimit

import "time"

// MetricsRecorder receives admission pipeline measurements. Implementations
// must be safe for concurrent use; the admission service calls them on the
// hot path.
type MetricsRecorder interface {
	// RecordDecision counts one admission decision. limitKind names the
	// denying ceiling kind, or "NONE" when the request was admitted or no
	// ceiling applied at all.
	RecordDecision(allowed bool, limitKind, throttle string)
	// RecordThresholdEvent counts a global usage threshold crossing.
	// level is "warn" or "full".
	RecordThresholdEvent(level string)
	// ObserveEvaluation records the duration of one counter-store round trip.
	ObserveEvaluation(d time.Duration)
}

// NopMetrics discards every measurement. Used by tests and by tools that
// run the admission pipeline without a metrics registry.
type NopMetrics struct{}

func (NopMetrics) RecordDecision(bool, string, string) {}
func (NopMetrics) RecordThresholdEvent(string)         {}
func (NopMetrics) ObserveEvaluation(time.Duration)     {}
