package dto

import (
	"time"

	"github.com/ratekeeper/ratekeeper/internal/domain/plan"
)

type CreatePlanRequest struct {
	Name          string     `json:"name" binding:"required,max=100"`
	MonthlyLimit  int64      `json:"monthlyLimit" binding:"required,gt=0"`
	WindowLimit   int64      `json:"windowLimit" binding:"omitempty,gt=0"`
	WindowSeconds int64      `json:"windowSeconds" binding:"omitempty,gt=0"`
	ExpiresAt     *time.Time `json:"expiresAt"`
}

// UpdatePlanRequest applies a partial edit; nil fields keep their value.
// WindowLimit and WindowSeconds travel together: setting both to zero
// removes the per-window ceiling.
type UpdatePlanRequest struct {
	Name          *string    `json:"name" binding:"omitempty,min=1,max=100"`
	MonthlyLimit  *int64     `json:"monthlyLimit" binding:"omitempty,gt=0"`
	WindowLimit   *int64     `json:"windowLimit" binding:"omitempty,gte=0"`
	WindowSeconds *int64     `json:"windowSeconds" binding:"omitempty,gte=0"`
	Active        *bool      `json:"active"`
	ExpiresAt     *time.Time `json:"expiresAt"`
}

type PlanResponse struct {
	ID            uint       `json:"id"`
	Name          string     `json:"name"`
	MonthlyLimit  int64      `json:"monthlyLimit"`
	WindowLimit   int64      `json:"windowLimit,omitempty"`
	WindowSeconds int64      `json:"windowSeconds,omitempty"`
	Active        bool       `json:"active"`
	ExpiresAt     *time.Time `json:"expiresAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

type ListPlansResponse struct {
	Plans    []*PlanResponse `json:"plans"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"pageSize"`
}

func ToPlanResponse(p *plan.SubscriptionPlan) *PlanResponse {
	return &PlanResponse{
		ID:            p.ID(),
		Name:          p.Name(),
		MonthlyLimit:  p.MonthlyLimit(),
		WindowLimit:   p.WindowLimit(),
		WindowSeconds: p.WindowSeconds(),
		Active:        p.Active(),
		ExpiresAt:     p.ExpiresAt(),
		CreatedAt:     p.CreatedAt(),
		UpdatedAt:     p.UpdatedAt(),
	}
}

func ToPlanResponses(plans []*plan.SubscriptionPlan) []*PlanResponse {
	responses := make([]*PlanResponse, len(plans))
	for i, p := range plans {
		responses[i] = ToPlanResponse(p)
	}
	return responses
}
