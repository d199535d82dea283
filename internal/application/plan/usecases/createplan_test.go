package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ratekeeper/ratekeeper/internal/application/plan/dto"
	"github.com/ratekeeper/ratekeeper/internal/domain/plan"
	apperrors "github.com/ratekeeper/ratekeeper/internal/shared/errors"
)

func mustPlan(t *testing.T, id uint, name string, monthly, window, windowSeconds int64) *plan.SubscriptionPlan {
	t.Helper()
	p, err := plan.NewSubscriptionPlan(name, monthly, window, windowSeconds, nil)
	require.NoError(t, err)
	require.NoError(t, p.SetID(id))
	return p
}

func TestCreatePlanUseCase_CreatesPlan(t *testing.T) {
	repo := new(mockPlanRepository)
	repo.On("ExistsByName", mock.Anything, "Premium").Return(false, nil).Once()
	repo.On("Create", mock.Anything, mock.AnythingOfType("*plan.SubscriptionPlan")).
		Run(func(args mock.Arguments) {
			p := args.Get(1).(*plan.SubscriptionPlan)
			require.NoError(t, p.SetID(3))
		}).
		Return(nil).Once()

	uc := NewCreatePlanUseCase(repo, nopLogger{})
	resp, err := uc.Execute(context.Background(), &dto.CreatePlanRequest{
		Name:          "  Premium ",
		MonthlyLimit:  50000,
		WindowLimit:   100,
		WindowSeconds: 60,
	})

	require.NoError(t, err)
	assert.Equal(t, uint(3), resp.ID)
	assert.Equal(t, "Premium", resp.Name, "name should be trimmed before persisting")
	assert.Equal(t, int64(50000), resp.MonthlyLimit)
	assert.Equal(t, int64(100), resp.WindowLimit)
	assert.Equal(t, int64(60), resp.WindowSeconds)
	assert.True(t, resp.Active)
	repo.AssertExpectations(t)
}

func TestCreatePlanUseCase_RejectsDuplicateName(t *testing.T) {
	repo := new(mockPlanRepository)
	repo.On("ExistsByName", mock.Anything, "Default").Return(true, nil).Once()

	uc := NewCreatePlanUseCase(repo, nopLogger{})
	_, err := uc.Execute(context.Background(), &dto.CreatePlanRequest{
		Name:         "Default",
		MonthlyLimit: 1000,
	})

	require.Error(t, err)
	assert.True(t, apperrors.IsConflictError(err))
	assert.Contains(t, err.Error(), "already exists")
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreatePlanUseCase_MapsDuplicateRaceToConflict(t *testing.T) {
	repo := new(mockPlanRepository)
	repo.On("ExistsByName", mock.Anything, "Default").Return(false, nil).Once()
	repo.On("Create", mock.Anything, mock.Anything).Return(plan.ErrPlanNameExists).Once()

	uc := NewCreatePlanUseCase(repo, nopLogger{})
	_, err := uc.Execute(context.Background(), &dto.CreatePlanRequest{
		Name:         "Default",
		MonthlyLimit: 1000,
	})

	require.Error(t, err)
	assert.True(t, apperrors.IsConflictError(err))
}

func TestCreatePlanUseCase_RejectsLoneWindowLimit(t *testing.T) {
	repo := new(mockPlanRepository)
	repo.On("ExistsByName", mock.Anything, "Broken").Return(false, nil).Once()

	uc := NewCreatePlanUseCase(repo, nopLogger{})
	_, err := uc.Execute(context.Background(), &dto.CreatePlanRequest{
		Name:         "Broken",
		MonthlyLimit: 1000,
		WindowLimit:  100,
	})

	require.Error(t, err)
	assert.True(t, apperrors.IsValidationError(err))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
