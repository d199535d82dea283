package ratelimit

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ratekeeper/ratekeeper/internal/domain/client"
	"github.com/ratekeeper/ratekeeper/internal/domain/plan"
)

func TestSubscriptionResolver_CacheMissLoadsAndCaches(t *testing.T) {
	h := newServiceHarness(t, testRateLimitConfig())
	ctx := context.Background()
	now := time.Now().UTC()

	resolver := NewSubscriptionResolver(h.planCache, h.clients, h.plans, newNopLogger())

	h.clients.On("GetByID", mock.Anything, uint(7)).Return(mustClient(t, 7, 3), nil).Once()
	h.plans.On("GetByID", mock.Anything, uint(3)).Return(mustPlan(t, 3, "Basic", 1000, 5, 60), nil).Once()

	snap, err := resolver.Resolve(ctx, 7, now)
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, uint(3), snap.ID)
	assert.Equal(t, int64(1000), snap.MonthlyLimit)
	assert.Equal(t, int64(5), snap.WindowLimit)

	cached, err := h.mr.Get("sub:cache:7")
	require.NoError(t, err)
	assert.Contains(t, cached, `"monthlyLimit":1000`)

	// Second resolve is served from the cache; the repositories are not
	// consulted again (the .Once() expectations above would fail otherwise).
	snap2, err := resolver.Resolve(ctx, 7, now)
	require.NoError(t, err)
	require.NotNil(t, snap2)
	assert.Equal(t, snap.ID, snap2.ID)

	h.clients.AssertExpectations(t)
	h.plans.AssertExpectations(t)
}

func TestSubscriptionResolver_ExpiredMarkerShortCircuits(t *testing.T) {
	h := newServiceHarness(t, testRateLimitConfig())
	resolver := NewSubscriptionResolver(h.planCache, h.clients, h.plans, newNopLogger())

	require.NoError(t, h.mr.Set("sub:cache:7", "EXPIRED"))

	snap, err := resolver.Resolve(context.Background(), 7, time.Now().UTC())
	require.NoError(t, err)
	assert.Nil(t, snap)

	h.clients.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestSubscriptionResolver_UnknownClientCachesNegative(t *testing.T) {
	h := newServiceHarness(t, testRateLimitConfig())
	resolver := NewSubscriptionResolver(h.planCache, h.clients, h.plans, newNopLogger())

	h.clients.On("GetByID", mock.Anything, uint(42)).Return(nil, client.ErrClientNotFound).Once()

	snap, err := resolver.Resolve(context.Background(), 42, time.Now().UTC())
	require.NoError(t, err)
	assert.Nil(t, snap)

	val, err := h.mr.Get("sub:cache:42")
	require.NoError(t, err)
	assert.Equal(t, "EXPIRED", val)

	ttl := h.mr.TTL("sub:cache:42")
	assert.Equal(t, 5*time.Minute, ttl)
}

func TestSubscriptionResolver_InactivePlanCachesNegative(t *testing.T) {
	h := newServiceHarness(t, testRateLimitConfig())
	resolver := NewSubscriptionResolver(h.planCache, h.clients, h.plans, newNopLogger())

	p := mustPlan(t, 3, "Basic", 1000, 0, 0)
	p.Deactivate()

	h.clients.On("GetByID", mock.Anything, uint(7)).Return(mustClient(t, 7, 3), nil).Once()
	h.plans.On("GetByID", mock.Anything, uint(3)).Return(p, nil).Once()

	snap, err := resolver.Resolve(context.Background(), 7, time.Now().UTC())
	require.NoError(t, err)
	assert.Nil(t, snap)

	val, err := h.mr.Get("sub:cache:7")
	require.NoError(t, err)
	assert.Equal(t, "EXPIRED", val)
}

func TestSubscriptionResolver_StaleSnapshotIsReplacedByMarker(t *testing.T) {
	h := newServiceHarness(t, testRateLimitConfig())
	resolver := NewSubscriptionResolver(h.planCache, h.clients, h.plans, newNopLogger())

	// A snapshot cached while the plan was still alive, whose expiry has
	// since passed.
	expired := time.Now().UTC().Add(-time.Minute)
	data, err := json.Marshal(plan.Snapshot{
		ID:           3,
		Name:         "Basic",
		MonthlyLimit: 1000,
		Active:       true,
		ExpiresAt:    &expired,
	})
	require.NoError(t, err)
	require.NoError(t, h.mr.Set("sub:cache:7", string(data)))

	snap, err := resolver.Resolve(context.Background(), 7, time.Now().UTC())
	require.NoError(t, err)
	assert.Nil(t, snap)

	val, err := h.mr.Get("sub:cache:7")
	require.NoError(t, err)
	assert.Equal(t, "EXPIRED", val)

	h.clients.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestSubscriptionResolver_DatabaseErrorPropagates(t *testing.T) {
	h := newServiceHarness(t, testRateLimitConfig())
	resolver := NewSubscriptionResolver(h.planCache, h.clients, h.plans, newNopLogger())

	h.clients.On("GetByID", mock.Anything, uint(7)).Return(nil, errors.New("connection refused")).Once()

	snap, err := resolver.Resolve(context.Background(), 7, time.Now().UTC())
	assert.Error(t, err)
	assert.Nil(t, snap)

	// No negative marker: the store gave no verdict.
	assert.False(t, h.mr.Exists("sub:cache:7"))
}

func TestSubscriptionResolver_CacheOutagePropagates(t *testing.T) {
	h := newServiceHarness(t, testRateLimitConfig())
	resolver := NewSubscriptionResolver(h.planCache, h.clients, h.plans, newNopLogger())

	h.mr.Close()

	snap, err := resolver.Resolve(context.Background(), 7, time.Now().UTC())
	assert.Error(t, err)
	assert.Nil(t, snap)
}
