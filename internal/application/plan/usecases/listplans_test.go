package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ratekeeper/ratekeeper/internal/domain/plan"
	apperrors "github.com/ratekeeper/ratekeeper/internal/shared/errors"
)

func TestListPlansUseCase_AppliesPaginationDefaults(t *testing.T) {
	repo := new(mockPlanRepository)
	plans := []*plan.SubscriptionPlan{mustPlan(t, 1, "Default", 1000, 0, 0)}
	repo.On("List", mock.Anything, plan.PlanFilter{Page: 1, PageSize: 20}).
		Return(plans, int64(1), nil).Once()

	uc := NewListPlansUseCase(repo)
	resp, err := uc.Execute(context.Background(), ListPlansQuery{})

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Total)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 20, resp.PageSize)
	require.Len(t, resp.Plans, 1)
	assert.Equal(t, "Default", resp.Plans[0].Name)
	repo.AssertExpectations(t)
}

func TestListPlansUseCase_PassesActiveFilter(t *testing.T) {
	active := true
	repo := new(mockPlanRepository)
	repo.On("List", mock.Anything, plan.PlanFilter{Active: &active, Page: 2, PageSize: 5}).
		Return([]*plan.SubscriptionPlan{}, int64(0), nil).Once()

	uc := NewListPlansUseCase(repo)
	resp, err := uc.Execute(context.Background(), ListPlansQuery{Active: &active, Page: 2, PageSize: 5})

	require.NoError(t, err)
	assert.Empty(t, resp.Plans)
	repo.AssertExpectations(t)
}

func TestGetPlanUseCase_ReturnsPlan(t *testing.T) {
	repo := new(mockPlanRepository)
	repo.On("GetByID", mock.Anything, uint(1)).Return(mustPlan(t, 1, "Default", 1000, 100, 60), nil).Once()

	uc := NewGetPlanUseCase(repo)
	resp, err := uc.Execute(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, uint(1), resp.ID)
	assert.Equal(t, int64(100), resp.WindowLimit)
}

func TestGetPlanUseCase_NotFound(t *testing.T) {
	repo := new(mockPlanRepository)
	repo.On("GetByID", mock.Anything, uint(12)).Return(nil, plan.ErrPlanNotFound).Once()

	uc := NewGetPlanUseCase(repo)
	_, err := uc.Execute(context.Background(), 12)

	require.Error(t, err)
	assert.True(t, apperrors.IsNotFoundError(err))
}
