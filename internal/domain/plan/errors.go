package plan

import "errors"

var (
	ErrPlanNotFound   = errors.New("subscription plan not found")
	ErrPlanNameExists = errors.New("plan name already exists")
	ErrPlanInactive   = errors.New("subscription plan inactive")
	ErrPlanInUse      = errors.New("subscription plan is referenced by clients")
)
