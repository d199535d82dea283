package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ratekeeper/ratekeeper/internal/application/rule/dto"
	"github.com/ratekeeper/ratekeeper/internal/domain/ratelimit"
	apperrors "github.com/ratekeeper/ratekeeper/internal/shared/errors"
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

type mockRuleRepository struct {
	mock.Mock
}

func (m *mockRuleRepository) Create(ctx context.Context, rule *ratelimit.RateLimitRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *mockRuleRepository) GetByID(ctx context.Context, id uint) (*ratelimit.RateLimitRule, error) {
	args := m.Called(ctx, id)
	if rule, ok := args.Get(0).(*ratelimit.RateLimitRule); ok {
		return rule, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRuleRepository) Update(ctx context.Context, rule *ratelimit.RateLimitRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *mockRuleRepository) List(ctx context.Context, filter ratelimit.RuleFilter) ([]*ratelimit.RateLimitRule, int64, error) {
	args := m.Called(ctx, filter)
	if rules, ok := args.Get(0).([]*ratelimit.RateLimitRule); ok {
		return rules, args.Get(1).(int64), args.Error(2)
	}
	return nil, args.Get(1).(int64), args.Error(2)
}

func (m *mockRuleRepository) GetActiveGlobalRules(ctx context.Context) ([]*ratelimit.RateLimitRule, error) {
	args := m.Called(ctx)
	if rules, ok := args.Get(0).([]*ratelimit.RateLimitRule); ok {
		return rules, args.Error(1)
	}
	return nil, args.Error(1)
}

func TestCreateRuleUseCase_CreatesWindowRule(t *testing.T) {
	repo := new(mockRuleRepository)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*ratelimit.RateLimitRule")).
		Run(func(args mock.Arguments) {
			rule := args.Get(1).(*ratelimit.RateLimitRule)
			require.NoError(t, rule.SetID(2))
		}).
		Return(nil).Once()

	uc := NewCreateRuleUseCase(repo, nopLogger{})
	resp, err := uc.Execute(context.Background(), &dto.CreateRuleRequest{
		Kind:          "GLOBAL",
		LimitValue:    5000,
		WindowSeconds: 60,
	})

	require.NoError(t, err)
	assert.Equal(t, uint(2), resp.ID)
	assert.Equal(t, "GLOBAL", resp.Kind)
	assert.Equal(t, int64(5000), resp.LimitValue)
	assert.Equal(t, int64(60), resp.WindowSeconds)
	assert.True(t, resp.Active)
	repo.AssertExpectations(t)
}

func TestCreateRuleUseCase_CreatesMonthlyRule(t *testing.T) {
	repo := new(mockRuleRepository)
	repo.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			rule := args.Get(1).(*ratelimit.RateLimitRule)
			require.NoError(t, rule.SetID(3))
			assert.True(t, rule.IsMonthly())
		}).
		Return(nil).Once()

	uc := NewCreateRuleUseCase(repo, nopLogger{})
	resp, err := uc.Execute(context.Background(), &dto.CreateRuleRequest{
		Kind:       "GLOBAL",
		LimitValue: 100000,
	})

	require.NoError(t, err)
	assert.Zero(t, resp.WindowSeconds)
}

func TestCreateRuleUseCase_RejectsNonGlobalKind(t *testing.T) {
	repo := new(mockRuleRepository)

	uc := NewCreateRuleUseCase(repo, nopLogger{})
	for _, kind := range []string{"WINDOW", "MONTHLY", "client", ""} {
		_, err := uc.Execute(context.Background(), &dto.CreateRuleRequest{
			Kind:       kind,
			LimitValue: 100,
		})
		require.Error(t, err, "kind %q", kind)
		assert.True(t, apperrors.IsValidationError(err), "kind %q", kind)
	}
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestListRulesUseCase_ListsRules(t *testing.T) {
	rule, err := ratelimit.NewGlobalRule(5000, 60)
	require.NoError(t, err)
	require.NoError(t, rule.SetID(2))

	repo := new(mockRuleRepository)
	repo.On("List", mock.Anything, ratelimit.RuleFilter{Page: 1, PageSize: 20}).
		Return([]*ratelimit.RateLimitRule{rule}, int64(1), nil).Once()

	uc := NewListRulesUseCase(repo)
	resp, err := uc.Execute(context.Background(), ListRulesQuery{})

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Total)
	require.Len(t, resp.Rules, 1)
	assert.Equal(t, int64(5000), resp.Rules[0].LimitValue)
	repo.AssertExpectations(t)
}
