package ratelimit

import (
	"context"
	"fmt"

	"github.com/ratekeeper/ratekeeper/internal/domain/plan"
	"github.com/ratekeeper/ratekeeper/internal/domain/ratelimit"
	"github.com/ratekeeper/ratekeeper/internal/shared/logger"
)

// LimitAssembler materializes the full set of ceilings one admission must
// clear: the client's plan limits plus every active global rule, ordered
// GLOBAL, MONTHLY, WINDOW so a system-wide overflow takes the blame even
// when a client ceiling would also have tripped.
type LimitAssembler struct {
	rules  ratelimit.RuleRepository
	logger logger.Interface
}

func NewLimitAssembler(rules ratelimit.RuleRepository, logger logger.Interface) *LimitAssembler {
	return &LimitAssembler{
		rules:  rules,
		logger: logger,
	}
}

// Assemble builds the sorted limit list for one admission. Ceilings of zero
// are disabled and skipped. An empty result means no ceiling applies and
// the request is admitted without touching the counter store.
func (a *LimitAssembler) Assemble(ctx context.Context, clientID uint, snapshot *plan.Snapshot) ([]ratelimit.EffectiveLimit, error) {
	limits := make([]ratelimit.EffectiveLimit, 0, 4)

	if snapshot.MonthlyLimit > 0 {
		limits = append(limits, ratelimit.NewMonthlyLimit(clientID, snapshot.MonthlyLimit))
	}
	if snapshot.HasWindowLimit() {
		limits = append(limits, ratelimit.NewWindowLimit(clientID, snapshot.WindowLimit, snapshot.WindowSeconds))
	}

	rules, err := a.rules.GetActiveGlobalRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load global rules: %w", err)
	}
	for _, rule := range rules {
		limits = append(limits, rule.EffectiveLimit())
	}

	enabled := limits[:0]
	for _, l := range limits {
		if l.Enabled() {
			enabled = append(enabled, l)
		}
	}

	ratelimit.SortByPriority(enabled)
	return enabled, nil
}
