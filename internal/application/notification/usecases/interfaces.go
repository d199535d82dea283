package usecases

// MetricsRecorder counts accepted notifications. Implementations must be
// safe for concurrent use.
type MetricsRecorder interface {
	RecordNotification(channel string)
}

// NopMetrics discards every measurement.
type NopMetrics struct{}

func (NopMetrics) RecordNotification(string) {}
