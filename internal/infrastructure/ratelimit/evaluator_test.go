package ratelimit

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ratekeeper/ratekeeper/internal/domain/ratelimit"
	"github.com/ratekeeper/ratekeeper/internal/shared/biztime"
	"github.com/ratekeeper/ratekeeper/internal/shared/logger"
)

// nopLogger is a no-op logger for testing.
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

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})

	return client, mr
}

func TestScriptEvaluator_AllowsUntilCeiling(t *testing.T) {
	client, _ := setupTestRedis(t)
	eval := NewScriptEvaluator(client, newNopLogger())
	ctx := context.Background()

	now := time.Date(2025, 6, 15, 12, 0, 10, 0, time.UTC)
	limits := []ratelimit.EffectiveLimit{ratelimit.NewWindowLimit(1, 3, 60)}

	for i := int64(1); i <= 3; i++ {
		out, err := eval.Evaluate(ctx, limits, now)
		require.NoError(t, err)
		assert.True(t, out.Allowed, "request %d should be admitted", i)
		assert.Equal(t, []int64{i}, out.Counts)
	}

	out, err := eval.Evaluate(ctx, limits, now)
	require.NoError(t, err)
	assert.False(t, out.Allowed, "4th request should be denied")
	assert.Equal(t, 0, out.FailedIndex)
	assert.Equal(t, int64(3), out.CurrentCount)
	assert.Equal(t, int64(3), out.Ceiling)
	assert.GreaterOrEqual(t, out.RetryAfterSeconds, int64(1))
	assert.LessOrEqual(t, out.RetryAfterSeconds, int64(60))
}

func TestScriptEvaluator_DenialLeavesNoPartialIncrement(t *testing.T) {
	client, mr := setupTestRedis(t)
	eval := NewScriptEvaluator(client, newNopLogger())
	ctx := context.Background()

	now := time.Date(2025, 6, 15, 12, 0, 10, 0, time.UTC)
	limits := []ratelimit.EffectiveLimit{
		ratelimit.NewGlobalWindowLimit(1, 60),
		ratelimit.NewMonthlyLimit(7, 100),
		ratelimit.NewWindowLimit(7, 100, 60),
	}

	out, err := eval.Evaluate(ctx, limits, now)
	require.NoError(t, err)
	require.True(t, out.Allowed)
	assert.Equal(t, []int64{1, 1, 1}, out.Counts)

	out, err = eval.Evaluate(ctx, limits, now)
	require.NoError(t, err)
	require.False(t, out.Allowed)
	assert.Equal(t, 0, out.FailedIndex, "global ceiling trips first")

	for _, l := range limits {
		key, _ := counterKey(l, now)
		val, err := mr.Get(key)
		require.NoError(t, err)
		assert.Equal(t, "1", val, "denied evaluation must not touch %s", key)
	}
}

func TestScriptEvaluator_FailedIndexSkipsPassingLimits(t *testing.T) {
	client, mr := setupTestRedis(t)
	eval := NewScriptEvaluator(client, newNopLogger())
	ctx := context.Background()

	now := time.Date(2025, 6, 15, 12, 0, 10, 0, time.UTC)
	limits := []ratelimit.EffectiveLimit{
		ratelimit.NewGlobalMonthlyLimit(2),
		ratelimit.NewMonthlyLimit(7, 1),
	}

	out, err := eval.Evaluate(ctx, limits, now)
	require.NoError(t, err)
	require.True(t, out.Allowed)

	out, err = eval.Evaluate(ctx, limits, now)
	require.NoError(t, err)
	require.False(t, out.Allowed)
	assert.Equal(t, 1, out.FailedIndex)
	assert.Equal(t, ratelimit.KindMonthly, limits[out.FailedIndex].Kind())
	assert.Equal(t, int64(1), out.CurrentCount)
	assert.Equal(t, int64(1), out.Ceiling)

	globalKey, _ := counterKey(limits[0], now)
	val, err := mr.Get(globalKey)
	require.NoError(t, err)
	assert.Equal(t, "1", val, "passing global counter must stay untouched on denial")
}

func TestScriptEvaluator_TTLArmsOnFirstWriteOnly(t *testing.T) {
	client, mr := setupTestRedis(t)
	eval := NewScriptEvaluator(client, newNopLogger())
	ctx := context.Background()

	now := time.Date(2025, 6, 15, 12, 0, 10, 0, time.UTC)
	limits := []ratelimit.EffectiveLimit{ratelimit.NewWindowLimit(1, 10, 120)}
	key, _ := counterKey(limits[0], now)

	out, err := eval.Evaluate(ctx, limits, now)
	require.NoError(t, err)
	require.True(t, out.Allowed)
	assert.Equal(t, 120*time.Second, mr.TTL(key))
	assert.Equal(t, int64(120), out.MaxTTLSeconds)

	mr.FastForward(30 * time.Second)
	assert.Equal(t, 90*time.Second, mr.TTL(key))

	out, err = eval.Evaluate(ctx, limits, now)
	require.NoError(t, err)
	require.True(t, out.Allowed)
	assert.Equal(t, []int64{2}, out.Counts)
	assert.Equal(t, 90*time.Second, mr.TTL(key), "second write must not re-arm the TTL")
}

func TestScriptEvaluator_RetryAfterIsResidualTTL(t *testing.T) {
	client, mr := setupTestRedis(t)
	eval := NewScriptEvaluator(client, newNopLogger())
	ctx := context.Background()

	now := time.Date(2025, 6, 15, 12, 0, 10, 0, time.UTC)
	limits := []ratelimit.EffectiveLimit{ratelimit.NewWindowLimit(1, 1, 60)}

	out, err := eval.Evaluate(ctx, limits, now)
	require.NoError(t, err)
	require.True(t, out.Allowed)

	mr.FastForward(10 * time.Second)

	out, err = eval.Evaluate(ctx, limits, now)
	require.NoError(t, err)
	require.False(t, out.Allowed)
	assert.Equal(t, int64(50), out.RetryAfterSeconds)
}

func TestScriptEvaluator_MonthlyBucketTTL(t *testing.T) {
	client, mr := setupTestRedis(t)
	eval := NewScriptEvaluator(client, newNopLogger())
	ctx := context.Background()

	now := time.Date(2025, 6, 15, 12, 34, 56, 0, time.UTC)
	limits := []ratelimit.EffectiveLimit{ratelimit.NewMonthlyLimit(7, 100)}

	out, err := eval.Evaluate(ctx, limits, now)
	require.NoError(t, err)
	require.True(t, out.Allowed)

	val, err := mr.Get("rl:c:7:m:202506")
	require.NoError(t, err)
	assert.Equal(t, "1", val)

	expected := time.Duration(biztime.SecondsUntilNextMonthUTC(now)) * time.Second
	assert.Equal(t, expected, mr.TTL("rl:c:7:m:202506"), "monthly counter dies at the next UTC month boundary")
}

func TestScriptEvaluator_WindowRollsOverAtBoundary(t *testing.T) {
	client, _ := setupTestRedis(t)
	eval := NewScriptEvaluator(client, newNopLogger())
	ctx := context.Background()

	now := time.Date(2025, 6, 15, 12, 0, 10, 0, time.UTC)
	limits := []ratelimit.EffectiveLimit{ratelimit.NewWindowLimit(1, 1, 60)}

	out, err := eval.Evaluate(ctx, limits, now)
	require.NoError(t, err)
	require.True(t, out.Allowed)

	out, err = eval.Evaluate(ctx, limits, now)
	require.NoError(t, err)
	require.False(t, out.Allowed)

	out, err = eval.Evaluate(ctx, limits, now.Add(60*time.Second))
	require.NoError(t, err)
	assert.True(t, out.Allowed, "next bucket starts with a fresh counter")
	assert.Equal(t, []int64{1}, out.Counts)
}

func TestScriptEvaluator_ConcurrentBurstNeverOvershoots(t *testing.T) {
	client, mr := setupTestRedis(t)
	eval := NewScriptEvaluator(client, newNopLogger())
	ctx := context.Background()

	now := time.Date(2025, 6, 15, 12, 0, 10, 0, time.UTC)
	limits := []ratelimit.EffectiveLimit{ratelimit.NewWindowLimit(1, 10, 3600)}

	const burst = 25
	var admitted, denied atomic.Int64
	var wg sync.WaitGroup
	wg.Add(burst)
	for i := 0; i < burst; i++ {
		go func() {
			defer wg.Done()
			out, err := eval.Evaluate(ctx, limits, now)
			if err != nil {
				t.Error(err)
				return
			}
			if out.Allowed {
				admitted.Add(1)
			} else {
				denied.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(10), admitted.Load(), "exactly the ceiling is admitted")
	assert.Equal(t, int64(15), denied.Load())

	key, _ := counterKey(limits[0], now)
	val, err := mr.Get(key)
	require.NoError(t, err)
	assert.Equal(t, "10", val, "counter equals the number of admitted requests")
}

func TestScriptEvaluator_EmptyLimitsAdmits(t *testing.T) {
	client, mr := setupTestRedis(t)
	eval := NewScriptEvaluator(client, newNopLogger())

	out, err := eval.Evaluate(context.Background(), nil, time.Now().UTC())
	require.NoError(t, err)
	assert.True(t, out.Allowed)
	assert.Empty(t, out.Counts)
	assert.Empty(t, mr.Keys(), "nothing may be written without limits")
}

func TestScriptEvaluator_StoreDownFailsWithSentinel(t *testing.T) {
	client, mr := setupTestRedis(t)
	eval := NewScriptEvaluator(client, newNopLogger())

	mr.Close()

	limits := []ratelimit.EffectiveLimit{ratelimit.NewMonthlyLimit(7, 100)}
	_, err := eval.Evaluate(context.Background(), limits, time.Now().UTC())
	require.Error(t, err)
	assert.ErrorIs(t, err, ratelimit.ErrStoreUnavailable)
}

func TestRedisCounterStore_DeleteClientCounters(t *testing.T) {
	client, mr := setupTestRedis(t)
	eval := NewScriptEvaluator(client, newNopLogger())
	store := NewRedisCounterStore(client, newNopLogger())
	ctx := context.Background()

	now := time.Date(2025, 6, 15, 12, 0, 10, 0, time.UTC)
	seed := []ratelimit.EffectiveLimit{
		ratelimit.NewGlobalMonthlyLimit(1000),
		ratelimit.NewMonthlyLimit(7, 100),
		ratelimit.NewMonthlyLimit(8, 100),
		ratelimit.NewWindowLimit(7, 10, 60),
	}
	out, err := eval.Evaluate(ctx, seed, now)
	require.NoError(t, err)
	require.True(t, out.Allowed)

	require.NoError(t, store.DeleteClientCounters(ctx, 7))

	assert.False(t, mr.Exists("rl:c:7:m:202506"))
	assert.False(t, mr.Exists("rl:c:7:w:1749988800"))
	assert.True(t, mr.Exists("rl:c:8:m:202506"), "other clients keep their counters")
	assert.True(t, mr.Exists("rl:g:m:202506"), "global counters are never dropped")
}
