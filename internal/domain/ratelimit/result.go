package ratelimit

import "time"

// ThrottleType labels how a denial should be served back to the caller.
type ThrottleType string

const (
	ThrottleNone ThrottleType = "NONE"
	// ThrottleSoft precedes the 429 with a bounded cooperative delay to
	// damp burst retries.
	ThrottleSoft ThrottleType = "SOFT"
	// ThrottleHard rejects immediately.
	ThrottleHard ThrottleType = "HARD"
)

func (t ThrottleType) String() string {
	return string(t)
}

// Outcome is the raw answer of one atomic check-and-increment round trip.
// On success Counts carries the post-increment value of every evaluated
// limit in input order. On failure FailedIndex points at the first limit
// whose pre-existing count already reached its ceiling; no counter was
// touched.
type Outcome struct {
	Allowed bool

	FailedIndex       int
	CurrentCount      int64
	Ceiling           int64
	RetryAfterSeconds int64

	Counts        []int64
	MaxTTLSeconds int64
}

// Result is the fully classified admission decision handed to the HTTP
// boundary. Exactly one is produced per request.
type Result struct {
	Allowed bool

	// Limit is the ceiling that denied the request, or nil when the
	// request was admitted or no ceiling applied at all.
	Limit             *EffectiveLimit
	CurrentCount      int64
	Ceiling           int64
	Remaining         int64
	RetryAfterSeconds int64

	// GlobalUsageRatio is count/ceiling for GLOBAL denials, zero otherwise.
	GlobalUsageRatio float64
	Throttle         ThrottleType
	SoftDelay        time.Duration

	Reason string
}

// AllowedResult builds the admit decision. The representative ceiling and
// remaining figure feed the rate-limit response headers; callers pass
// ceiling 0 when no client ceiling applied.
func AllowedResult(ceiling, current, retryAfterSeconds int64) *Result {
	remaining := int64(0)
	if ceiling > current {
		remaining = ceiling - current
	}
	return &Result{
		Allowed:           true,
		CurrentCount:      current,
		Ceiling:           ceiling,
		Remaining:         remaining,
		RetryAfterSeconds: retryAfterSeconds,
		Throttle:          ThrottleNone,
	}
}

// NoSubscriptionResult builds the hard denial for a client without an
// effectively active subscription. No ceiling applies and no counter was
// touched, so every count field stays zero.
func NoSubscriptionResult(reason string) *Result {
	return &Result{
		Allowed:  false,
		Throttle: ThrottleHard,
		Reason:   reason,
	}
}

// DeniedResult builds the rejection decision for the given failed limit.
func DeniedResult(limit EffectiveLimit, current, retryAfterSeconds int64, throttle ThrottleType, softDelay time.Duration, reason string) *Result {
	r := &Result{
		Allowed:           false,
		Limit:             &limit,
		CurrentCount:      current,
		Ceiling:           limit.Limit(),
		Remaining:         0,
		RetryAfterSeconds: retryAfterSeconds,
		Throttle:          throttle,
		SoftDelay:         softDelay,
		Reason:            reason,
	}
	if limit.IsGlobal() {
		r.GlobalUsageRatio = GlobalRatio(current, limit.Limit())
	}
	return r
}

// GlobalRatio is the usage ratio count/ceiling, zero-guarded.
func GlobalRatio(current, ceiling int64) float64 {
	if ceiling <= 0 {
		return 0
	}
	return float64(current) / float64(ceiling)
}
