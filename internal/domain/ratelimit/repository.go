package ratelimit

import "context"

type RuleRepository interface {
	Create(ctx context.Context, rule *RateLimitRule) error
	GetByID(ctx context.Context, id uint) (*RateLimitRule, error)
	Update(ctx context.Context, rule *RateLimitRule) error

	List(ctx context.Context, filter RuleFilter) ([]*RateLimitRule, int64, error)
	// GetActiveGlobalRules returns every active GLOBAL rule. Called on the
	// admission hot path, so implementations should keep it to one indexed
	// query.
	GetActiveGlobalRules(ctx context.Context) ([]*RateLimitRule, error)
}

type RuleFilter struct {
	Active   *bool
	Page     int
	PageSize int
}
