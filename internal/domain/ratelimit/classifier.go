package ratelimit

import "time"

// Classifier maps a denial to a throttle label. Client ceilings always
// throttle hard. Global ceilings grade by usage ratio: at or above the
// hard threshold the rejection is immediate, between the soft and hard
// thresholds the rejection is soft and carries the configured delay.
type Classifier struct {
	softThreshold float64
	hardThreshold float64
	softDelay     time.Duration
}

func NewClassifier(softThreshold, hardThreshold float64, softDelay time.Duration) *Classifier {
	return &Classifier{
		softThreshold: softThreshold,
		hardThreshold: hardThreshold,
		softDelay:     softDelay,
	}
}

// Classify labels the denial of the given limit. current is the counter
// value observed by the evaluator, before any increment.
func (c *Classifier) Classify(failed EffectiveLimit, current int64) (ThrottleType, time.Duration) {
	if !failed.IsGlobal() {
		return ThrottleHard, 0
	}

	ratio := GlobalRatio(current, failed.Limit())
	switch {
	case ratio >= c.hardThreshold:
		return ThrottleHard, 0
	case ratio >= c.softThreshold:
		return ThrottleSoft, c.softDelay
	default:
		// A denial implies ratio >= 1.0, so this arm only fires with a
		// soft threshold above 1.0.
		return ThrottleHard, 0
	}
}
