package ratelimit

import "errors"

var (
	// ErrNoActiveSubscription denies admission when the client has no
	// effectively active plan. Counters are never touched on this path.
	ErrNoActiveSubscription = errors.New("no active subscription")
	ErrRuleNotFound         = errors.New("rate limit rule not found")
	// ErrStoreUnavailable marks a counter-store outage. The admission
	// path fails closed on it.
	ErrStoreUnavailable = errors.New("counter store unavailable")
)
