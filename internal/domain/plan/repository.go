package plan

import "context"

type PlanRepository interface {
	Create(ctx context.Context, plan *SubscriptionPlan) error
	GetByID(ctx context.Context, id uint) (*SubscriptionPlan, error)
	Update(ctx context.Context, plan *SubscriptionPlan) error

	List(ctx context.Context, filter PlanFilter) ([]*SubscriptionPlan, int64, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
}

type PlanFilter struct {
	Active   *bool
	Page     int
	PageSize int
}
