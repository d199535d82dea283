package plan

import (
	"fmt"
	"time"

	"github.com/ratekeeper/ratekeeper/internal/shared/biztime"
)

// SubscriptionPlan is the quota contract sold to a client: a mandatory
// monthly ceiling plus an optional short-window ceiling. Window fields are
// either both set (positive) or both zero.
type SubscriptionPlan struct {
	id            uint
	name          string
	monthlyLimit  int64
	windowLimit   int64
	windowSeconds int64
	active        bool
	expiresAt     *time.Time
	createdAt     time.Time
	updatedAt     time.Time
}

func NewSubscriptionPlan(name string, monthlyLimit, windowLimit, windowSeconds int64, expiresAt *time.Time) (*SubscriptionPlan, error) {
	if name == "" {
		return nil, fmt.Errorf("plan name is required")
	}
	if len(name) > 100 {
		return nil, fmt.Errorf("plan name too long (max 100 characters)")
	}
	if monthlyLimit <= 0 {
		return nil, fmt.Errorf("monthly limit must be greater than 0")
	}
	if err := validateWindow(windowLimit, windowSeconds); err != nil {
		return nil, err
	}

	now := biztime.NowUTC()
	return &SubscriptionPlan{
		name:          name,
		monthlyLimit:  monthlyLimit,
		windowLimit:   windowLimit,
		windowSeconds: windowSeconds,
		active:        true,
		expiresAt:     expiresAt,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

func ReconstructSubscriptionPlan(id uint, name string, monthlyLimit, windowLimit, windowSeconds int64,
	active bool, expiresAt *time.Time, createdAt, updatedAt time.Time) (*SubscriptionPlan, error) {

	if id == 0 {
		return nil, fmt.Errorf("plan ID cannot be zero")
	}
	if name == "" {
		return nil, fmt.Errorf("plan name is required")
	}
	if err := validateWindow(windowLimit, windowSeconds); err != nil {
		return nil, err
	}

	return &SubscriptionPlan{
		id:            id,
		name:          name,
		monthlyLimit:  monthlyLimit,
		windowLimit:   windowLimit,
		windowSeconds: windowSeconds,
		active:        active,
		expiresAt:     expiresAt,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}, nil
}

func validateWindow(windowLimit, windowSeconds int64) error {
	if windowLimit < 0 || windowSeconds < 0 {
		return fmt.Errorf("window limit and window seconds cannot be negative")
	}
	if (windowLimit > 0) != (windowSeconds > 0) {
		return fmt.Errorf("window limit and window seconds must be set together")
	}
	return nil
}

func (p *SubscriptionPlan) ID() uint {
	return p.id
}

func (p *SubscriptionPlan) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("plan ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("plan ID cannot be zero")
	}
	p.id = id
	return nil
}

func (p *SubscriptionPlan) Name() string {
	return p.name
}

func (p *SubscriptionPlan) MonthlyLimit() int64 {
	return p.monthlyLimit
}

func (p *SubscriptionPlan) WindowLimit() int64 {
	return p.windowLimit
}

func (p *SubscriptionPlan) WindowSeconds() int64 {
	return p.windowSeconds
}

// HasWindowLimit reports whether the plan carries a short-window ceiling
// in addition to the monthly one.
func (p *SubscriptionPlan) HasWindowLimit() bool {
	return p.windowLimit > 0 && p.windowSeconds > 0
}

func (p *SubscriptionPlan) Active() bool {
	return p.active
}

func (p *SubscriptionPlan) ExpiresAt() *time.Time {
	return p.expiresAt
}

func (p *SubscriptionPlan) CreatedAt() time.Time {
	return p.createdAt
}

func (p *SubscriptionPlan) UpdatedAt() time.Time {
	return p.updatedAt
}

// IsEffectivelyActive reports whether the plan should admit traffic at the
// given instant: the active flag is set and the expiry, when present, has
// not passed.
func (p *SubscriptionPlan) IsEffectivelyActive(now time.Time) bool {
	if !p.active {
		return false
	}
	if p.expiresAt == nil {
		return true
	}
	return p.expiresAt.After(now)
}

func (p *SubscriptionPlan) Activate() {
	if p.active {
		return
	}
	p.active = true
	p.updatedAt = biztime.NowUTC()
}

func (p *SubscriptionPlan) Deactivate() {
	if !p.active {
		return
	}
	p.active = false
	p.updatedAt = biztime.NowUTC()
}

func (p *SubscriptionPlan) Rename(name string) error {
	if name == "" {
		return fmt.Errorf("plan name is required")
	}
	if len(name) > 100 {
		return fmt.Errorf("plan name too long (max 100 characters)")
	}
	p.name = name
	p.updatedAt = biztime.NowUTC()
	return nil
}

func (p *SubscriptionPlan) UpdateMonthlyLimit(limit int64) error {
	if limit <= 0 {
		return fmt.Errorf("monthly limit must be greater than 0")
	}
	p.monthlyLimit = limit
	p.updatedAt = biztime.NowUTC()
	return nil
}

// UpdateWindowLimit replaces the short-window ceiling. Passing zero for both
// arguments removes it.
func (p *SubscriptionPlan) UpdateWindowLimit(limit, windowSeconds int64) error {
	if err := validateWindow(limit, windowSeconds); err != nil {
		return err
	}
	p.windowLimit = limit
	p.windowSeconds = windowSeconds
	p.updatedAt = biztime.NowUTC()
	return nil
}

func (p *SubscriptionPlan) SetExpiresAt(expiresAt *time.Time) {
	p.expiresAt = expiresAt
	p.updatedAt = biztime.NowUTC()
}
