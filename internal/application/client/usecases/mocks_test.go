package usecases

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ratekeeper/ratekeeper/internal/domain/client"
	"github.com/ratekeeper/ratekeeper/internal/domain/plan"
	"github.com/ratekeeper/ratekeeper/internal/shared/logger"
)

type nopLogger struct{}

func (nopLogger) Debug(msg string, args ...any)                   {}
func (nopLogger) Info(msg string, args ...any)                    {}
func (nopLogger) Warn(msg string, args ...any)                    {}
func (nopLogger) Error(msg string, args ...any)                   {}
func (nopLogger) Fatal(msg string, args ...any)                   {}
func (n nopLogger) With(args ...any) logger.Interface             { return n }
func (n nopLogger) Named(name string) logger.Interface            { return n }
func (nopLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Errorw(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Fatalw(msg string, keysAndValues ...interface{}) {}

type mockClientRepository struct {
	mock.Mock
}

func (m *mockClientRepository) Create(ctx context.Context, c *client.Client) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockClientRepository) GetByID(ctx context.Context, id uint) (*client.Client, error) {
	args := m.Called(ctx, id)
	if c, ok := args.Get(0).(*client.Client); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockClientRepository) GetByAPIKey(ctx context.Context, apiKey string) (*client.Client, error) {
	args := m.Called(ctx, apiKey)
	if c, ok := args.Get(0).(*client.Client); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockClientRepository) List(ctx context.Context, filter client.ClientFilter) ([]*client.Client, int64, error) {
	args := m.Called(ctx, filter)
	if clients, ok := args.Get(0).([]*client.Client); ok {
		return clients, args.Get(1).(int64), args.Error(2)
	}
	return nil, args.Get(1).(int64), args.Error(2)
}

func (m *mockClientRepository) ListIDsByPlanID(ctx context.Context, planID uint) ([]uint, error) {
	args := m.Called(ctx, planID)
	if ids, ok := args.Get(0).([]uint); ok {
		return ids, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockPlanRepository struct {
	mock.Mock
}

func (m *mockPlanRepository) Create(ctx context.Context, p *plan.SubscriptionPlan) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockPlanRepository) GetByID(ctx context.Context, id uint) (*plan.SubscriptionPlan, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*plan.SubscriptionPlan); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPlanRepository) Update(ctx context.Context, p *plan.SubscriptionPlan) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockPlanRepository) List(ctx context.Context, filter plan.PlanFilter) ([]*plan.SubscriptionPlan, int64, error) {
	args := m.Called(ctx, filter)
	if plans, ok := args.Get(0).([]*plan.SubscriptionPlan); ok {
		return plans, args.Get(1).(int64), args.Error(2)
	}
	return nil, args.Get(1).(int64), args.Error(2)
}

func (m *mockPlanRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}
