package ratelimit

import (
	"context"
	"time"
)

// Evaluator performs the all-or-nothing multi-limit check-and-increment
// against the shared counter store. Either every counter in limits is
// incremented by exactly one, or none is and the first exceeding ceiling
// is reported. Implementations must be atomic with respect to concurrent
// evaluations on overlapping keys.
//
// Limits must be non-empty, pre-sorted, and contain only enabled ceilings;
// now fixes the time buckets for the whole evaluation.
type Evaluator interface {
	Evaluate(ctx context.Context, limits []EffectiveLimit, now time.Time) (*Outcome, error)
}
