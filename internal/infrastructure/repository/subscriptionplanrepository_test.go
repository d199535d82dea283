package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ratekeeper/ratekeeper/internal/domain/plan"
)

func createTestPlan(t *testing.T, name string, monthlyLimit int64) *plan.SubscriptionPlan {
	t.Helper()
	p, err := plan.NewSubscriptionPlan(name, monthlyLimit, 0, 0, nil)
	require.NoError(t, err)
	return p
}

func TestSubscriptionPlanRepository_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriptionPlanRepository(db)
	ctx := context.Background()

	t.Run("create plan successfully", func(t *testing.T) {
		p := createTestPlan(t, "Basic", 1000)
		err := repo.Create(ctx, p)
		assert.NoError(t, err)
		assert.NotZero(t, p.ID())
	})

	t.Run("duplicate name is rejected", func(t *testing.T) {
		p1 := createTestPlan(t, "Duplicated", 1000)
		require.NoError(t, repo.Create(ctx, p1))

		p2 := createTestPlan(t, "Duplicated", 2000)
		err := repo.Create(ctx, p2)
		assert.ErrorIs(t, err, plan.ErrPlanNameExists)
	})
}

func TestSubscriptionPlanRepository_GetByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriptionPlanRepository(db)
	ctx := context.Background()

	t.Run("round trips all fields", func(t *testing.T) {
		expires := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Second)
		p, err := plan.NewSubscriptionPlan("Pro", 10000, 5, 60, &expires)
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, p))

		found, err := repo.GetByID(ctx, p.ID())
		require.NoError(t, err)
		assert.Equal(t, "Pro", found.Name())
		assert.Equal(t, int64(10000), found.MonthlyLimit())
		assert.Equal(t, int64(5), found.WindowLimit())
		assert.Equal(t, int64(60), found.WindowSeconds())
		assert.True(t, found.Active())
		require.NotNil(t, found.ExpiresAt())
		assert.WithinDuration(t, expires, *found.ExpiresAt(), time.Second)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 99999)
		assert.ErrorIs(t, err, plan.ErrPlanNotFound)
	})
}

func TestSubscriptionPlanRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriptionPlanRepository(db)
	ctx := context.Background()

	t.Run("update limits and status", func(t *testing.T) {
		p := createTestPlan(t, "Mutable", 1000)
		require.NoError(t, repo.Create(ctx, p))

		require.NoError(t, p.UpdateMonthlyLimit(5000))
		require.NoError(t, p.UpdateWindowLimit(10, 30))
		p.Deactivate()

		require.NoError(t, repo.Update(ctx, p))

		found, err := repo.GetByID(ctx, p.ID())
		require.NoError(t, err)
		assert.Equal(t, int64(5000), found.MonthlyLimit())
		assert.Equal(t, int64(10), found.WindowLimit())
		assert.False(t, found.Active())
	})

	t.Run("update non-existent plan", func(t *testing.T) {
		p := createTestPlan(t, "Ghost", 1000)
		require.NoError(t, p.SetID(99999))
		err := repo.Update(ctx, p)
		assert.ErrorIs(t, err, plan.ErrPlanNotFound)
	})
}

func TestSubscriptionPlanRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriptionPlanRepository(db)
	ctx := context.Background()

	active := createTestPlan(t, "Active", 1000)
	require.NoError(t, repo.Create(ctx, active))

	disabled := createTestPlan(t, "Disabled", 1000)
	disabled.Deactivate()
	require.NoError(t, repo.Create(ctx, disabled))

	t.Run("list all", func(t *testing.T) {
		plans, total, err := repo.List(ctx, plan.PlanFilter{Page: 1, PageSize: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, plans, 2)
	})

	t.Run("filter by active", func(t *testing.T) {
		isActive := true
		plans, total, err := repo.List(ctx, plan.PlanFilter{Active: &isActive, Page: 1, PageSize: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, plans, 1)
		assert.Equal(t, "Active", plans[0].Name())
	})
}

func TestSubscriptionPlanRepository_ExistsByName(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriptionPlanRepository(db)
	ctx := context.Background()

	p := createTestPlan(t, "Existing", 1000)
	require.NoError(t, repo.Create(ctx, p))

	exists, err := repo.ExistsByName(ctx, "Existing")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByName(ctx, "Missing")
	require.NoError(t, err)
	assert.False(t, exists)

	// Uniqueness ignores case.
	exists, err = repo.ExistsByName(ctx, "EXISTING")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByName(ctx, "existing")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestSubscriptionPlanRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriptionPlanRepository(db)
	ctx := context.Background()

	p := createTestPlan(t, "Doomed", 1000)
	require.NoError(t, repo.Create(ctx, p))

	require.NoError(t, repo.Delete(ctx, p.ID()))

	_, err := repo.GetByID(ctx, p.ID())
	assert.ErrorIs(t, err, plan.ErrPlanNotFound)

	err = repo.Delete(ctx, p.ID())
	assert.ErrorIs(t, err, plan.ErrPlanNotFound)
}
