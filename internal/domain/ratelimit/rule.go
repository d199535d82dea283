package ratelimit

import (
	"fmt"
	"time"

	"github.com/ratekeeper/ratekeeper/internal/shared/biztime"
)

type RuleKind string

const (
	// RuleKindGlobal caps traffic across all clients. Per-client ceilings
	// are not modelled as rules; they come from the subscription plan.
	RuleKindGlobal RuleKind = "GLOBAL"
)

func (k RuleKind) String() string {
	return string(k)
}

func (k RuleKind) IsValid() bool {
	return k == RuleKindGlobal
}

// RateLimitRule is a system-wide ceiling. A zero windowSeconds means the
// rule counts against the calendar month instead of a fixed window.
type RateLimitRule struct {
	id            uint
	kind          RuleKind
	limitValue    int64
	windowSeconds int64
	active        bool
	createdAt     time.Time
	updatedAt     time.Time
}

func NewGlobalRule(limitValue, windowSeconds int64) (*RateLimitRule, error) {
	if limitValue <= 0 {
		return nil, fmt.Errorf("limit value must be greater than 0")
	}
	if windowSeconds < 0 {
		return nil, fmt.Errorf("window seconds cannot be negative")
	}

	now := biztime.NowUTC()
	return &RateLimitRule{
		kind:          RuleKindGlobal,
		limitValue:    limitValue,
		windowSeconds: windowSeconds,
		active:        true,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

func ReconstructRule(id uint, kind RuleKind, limitValue, windowSeconds int64, active bool,
	createdAt, updatedAt time.Time) (*RateLimitRule, error) {

	if id == 0 {
		return nil, fmt.Errorf("rule ID cannot be zero")
	}
	if !kind.IsValid() {
		return nil, fmt.Errorf("invalid rule kind: %s", kind)
	}
	if limitValue <= 0 {
		return nil, fmt.Errorf("limit value must be greater than 0")
	}

	return &RateLimitRule{
		id:            id,
		kind:          kind,
		limitValue:    limitValue,
		windowSeconds: windowSeconds,
		active:        active,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}, nil
}

func (r *RateLimitRule) ID() uint {
	return r.id
}

func (r *RateLimitRule) SetID(id uint) error {
	if r.id != 0 {
		return fmt.Errorf("rule ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("rule ID cannot be zero")
	}
	r.id = id
	return nil
}

func (r *RateLimitRule) Kind() RuleKind {
	return r.kind
}

func (r *RateLimitRule) LimitValue() int64 {
	return r.limitValue
}

func (r *RateLimitRule) WindowSeconds() int64 {
	return r.windowSeconds
}

// IsMonthly reports whether the rule counts against the calendar month.
func (r *RateLimitRule) IsMonthly() bool {
	return r.windowSeconds == 0
}

func (r *RateLimitRule) Active() bool {
	return r.active
}

func (r *RateLimitRule) CreatedAt() time.Time {
	return r.createdAt
}

func (r *RateLimitRule) UpdatedAt() time.Time {
	return r.updatedAt
}

// UpdateLimit replaces the ceiling. Passing zero windowSeconds converts the
// rule to a calendar-month one. The active flag is not touched.
func (r *RateLimitRule) UpdateLimit(limitValue, windowSeconds int64) error {
	if limitValue <= 0 {
		return fmt.Errorf("limit value must be greater than 0")
	}
	if windowSeconds < 0 {
		return fmt.Errorf("window seconds cannot be negative")
	}
	r.limitValue = limitValue
	r.windowSeconds = windowSeconds
	r.updatedAt = biztime.NowUTC()
	return nil
}

func (r *RateLimitRule) Activate() {
	if r.active {
		return
	}
	r.active = true
	r.updatedAt = biztime.NowUTC()
}

func (r *RateLimitRule) Deactivate() {
	if !r.active {
		return
	}
	r.active = false
	r.updatedAt = biztime.NowUTC()
}

// EffectiveLimit materializes the rule as a per-request ceiling.
func (r *RateLimitRule) EffectiveLimit() EffectiveLimit {
	if r.IsMonthly() {
		return NewGlobalMonthlyLimit(r.limitValue)
	}
	return NewGlobalWindowLimit(r.limitValue, r.windowSeconds)
}
