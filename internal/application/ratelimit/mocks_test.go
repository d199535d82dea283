package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ratekeeper/ratekeeper/internal/domain/client"
	"github.com/ratekeeper/ratekeeper/internal/domain/plan"
	"github.com/ratekeeper/ratekeeper/internal/domain/ratelimit"
	"github.com/ratekeeper/ratekeeper/internal/infrastructure/cache"
	redisrl "github.com/ratekeeper/ratekeeper/internal/infrastructure/ratelimit"
	"github.com/ratekeeper/ratekeeper/internal/shared/config"
	"github.com/ratekeeper/ratekeeper/internal/shared/logger"
)

type nopLogger struct{}

func newNopLogger() logger.Interface { return &nopLogger{} }

func (l *nopLogger) Debug(msg string, args ...any)                   {}
func (l *nopLogger) Info(msg string, args ...any)                    {}
func (l *nopLogger) Warn(msg string, args ...any)                    {}
func (l *nopLogger) Error(msg string, args ...any)                   {}
func (l *nopLogger) Fatal(msg string, args ...any)                   {}
func (l *nopLogger) With(args ...any) logger.Interface               { return l }
func (l *nopLogger) Named(name string) logger.Interface              { return l }
func (l *nopLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (l *nopLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (l *nopLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (l *nopLogger) Errorw(msg string, keysAndValues ...interface{}) {}
func (l *nopLogger) Fatalw(msg string, keysAndValues ...interface{}) {}

type mockClientRepository struct {
	mock.Mock
}

func (m *mockClientRepository) Create(ctx context.Context, c *client.Client) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockClientRepository) GetByID(ctx context.Context, id uint) (*client.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*client.Client), args.Error(1)
}

func (m *mockClientRepository) GetByAPIKey(ctx context.Context, apiKey string) (*client.Client, error) {
	args := m.Called(ctx, apiKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*client.Client), args.Error(1)
}

func (m *mockClientRepository) List(ctx context.Context, filter client.ClientFilter) ([]*client.Client, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*client.Client), args.Get(1).(int64), args.Error(2)
}

func (m *mockClientRepository) ListIDsByPlanID(ctx context.Context, planID uint) ([]uint, error) {
	args := m.Called(ctx, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
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
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*plan.SubscriptionPlan), args.Error(1)
}

func (m *mockPlanRepository) Update(ctx context.Context, p *plan.SubscriptionPlan) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockPlanRepository) List(ctx context.Context, filter plan.PlanFilter) ([]*plan.SubscriptionPlan, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*plan.SubscriptionPlan), args.Get(1).(int64), args.Error(2)
}

func (m *mockPlanRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

type mockRuleRepository struct {
	mock.Mock
}

func (m *mockRuleRepository) Create(ctx context.Context, rule *ratelimit.RateLimitRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *mockRuleRepository) GetByID(ctx context.Context, id uint) (*ratelimit.RateLimitRule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ratelimit.RateLimitRule), args.Error(1)
}

func (m *mockRuleRepository) Update(ctx context.Context, rule *ratelimit.RateLimitRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *mockRuleRepository) List(ctx context.Context, filter ratelimit.RuleFilter) ([]*ratelimit.RateLimitRule, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*ratelimit.RateLimitRule), args.Get(1).(int64), args.Error(2)
}

func (m *mockRuleRepository) GetActiveGlobalRules(ctx context.Context) ([]*ratelimit.RateLimitRule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ratelimit.RateLimitRule), args.Error(1)
}

// recordingMetrics counts recorder calls so tests can assert on emitted
// threshold events without a Prometheus registry.
type recordingMetrics struct {
	mu         sync.Mutex
	decisions  []string
	thresholds []string
	evals      int
}

func (r *recordingMetrics) RecordDecision(allowed bool, limitKind, throttle string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	verdict := "denied"
	if allowed {
		verdict = "allowed"
	}
	r.decisions = append(r.decisions, verdict+"/"+limitKind+"/"+throttle)
}

func (r *recordingMetrics) RecordThresholdEvent(level string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.thresholds = append(r.thresholds, level)
}

func (r *recordingMetrics) ObserveEvaluation(time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.evals++
}

func (r *recordingMetrics) thresholdEvents() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.thresholds))
	copy(out, r.thresholds)
	return out
}

type serviceHarness struct {
	svc       *AdmissionService
	planCache cache.SubscriptionPlanCache
	mr        *miniredis.Miniredis
	clients   *mockClientRepository
	plans     *mockPlanRepository
	rules     *mockRuleRepository
	metrics   *recordingMetrics
}

func newServiceHarness(t *testing.T, cfg *config.RateLimitConfig) *serviceHarness {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		rdb.Close()
		mr.Close()
	})

	clients := new(mockClientRepository)
	plans := new(mockPlanRepository)
	rules := new(mockRuleRepository)
	metrics := &recordingMetrics{}

	planCache := cache.NewRedisSubscriptionPlanCache(rdb, newNopLogger())
	resolver := NewSubscriptionResolver(planCache, clients, plans, newNopLogger())
	assembler := NewLimitAssembler(rules, newNopLogger())
	evaluator := redisrl.NewScriptEvaluator(rdb, newNopLogger())

	return &serviceHarness{
		svc:       NewAdmissionService(resolver, assembler, evaluator, cfg, metrics, newNopLogger()),
		planCache: planCache,
		mr:        mr,
		clients:   clients,
		plans:     plans,
		rules:     rules,
		metrics:   metrics,
	}
}

func testRateLimitConfig() *config.RateLimitConfig {
	return &config.RateLimitConfig{
		Throttling:          "hard",
		SoftDelayMs:         100,
		GlobalSoftThreshold: 0.80,
		GlobalWarnThreshold: 0.80,
		GlobalFullThreshold: 1.00,
		GlobalHardThreshold: 1.20,
	}
}

func mustPlan(t *testing.T, id uint, name string, monthly, window, windowSeconds int64) *plan.SubscriptionPlan {
	t.Helper()
	p, err := plan.NewSubscriptionPlan(name, monthly, window, windowSeconds, nil)
	require.NoError(t, err)
	require.NoError(t, p.SetID(id))
	return p
}

func mustClient(t *testing.T, id, planID uint) *client.Client {
	t.Helper()
	c, err := client.NewClient("test client", planID)
	require.NoError(t, err)
	require.NoError(t, c.SetID(id))
	return c
}

func mustGlobalRule(t *testing.T, id uint, limit, windowSeconds int64) *ratelimit.RateLimitRule {
	t.Helper()
	r, err := ratelimit.NewGlobalRule(limit, windowSeconds)
	require.NoError(t, err)
	require.NoError(t, r.SetID(id))
	return r
}
