package plan

import "time"

// Snapshot is the value copy of a plan that gets serialized into the
// subscription cache. It carries everything limit assembly needs so the
// hot path never has to rehydrate the full entity.
type Snapshot struct {
	ID            uint       `json:"id"`
	Name          string     `json:"name"`
	MonthlyLimit  int64      `json:"monthlyLimit"`
	WindowLimit   int64      `json:"windowLimit,omitempty"`
	WindowSeconds int64      `json:"windowSeconds,omitempty"`
	Active        bool       `json:"active"`
	ExpiresAt     *time.Time `json:"expiresAt,omitempty"`
}

// NewSnapshot copies the cache-relevant fields out of a plan entity.
func NewSnapshot(p *SubscriptionPlan) Snapshot {
	return Snapshot{
		ID:            p.ID(),
		Name:          p.Name(),
		MonthlyLimit:  p.MonthlyLimit(),
		WindowLimit:   p.WindowLimit(),
		WindowSeconds: p.WindowSeconds(),
		Active:        p.Active(),
		ExpiresAt:     p.ExpiresAt(),
	}
}

func (s Snapshot) HasWindowLimit() bool {
	return s.WindowLimit > 0 && s.WindowSeconds > 0
}

// IsEffectivelyActive mirrors SubscriptionPlan.IsEffectivelyActive for
// cached copies, so a snapshot cached before expiry stops admitting once
// the expiry instant passes.
func (s Snapshot) IsEffectivelyActive(now time.Time) bool {
	if !s.Active {
		return false
	}
	if s.ExpiresAt == nil {
		return true
	}
	return s.ExpiresAt.After(now)
}
