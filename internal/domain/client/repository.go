package client

import "context"

type ClientRepository interface {
	Create(ctx context.Context, client *Client) error
	GetByID(ctx context.Context, id uint) (*Client, error)
	GetByAPIKey(ctx context.Context, apiKey string) (*Client, error)

	List(ctx context.Context, filter ClientFilter) ([]*Client, int64, error)
	// ListIDsByPlanID returns the ids of all clients on a plan. Used to fan
	// out cache invalidation when the plan changes.
	ListIDsByPlanID(ctx context.Context, planID uint) ([]uint, error)
}

type ClientFilter struct {
	PlanID   *uint
	Active   *bool
	Page     int
	PageSize int
}
