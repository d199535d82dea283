package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ratekeeper/ratekeeper/internal/domain/ratelimit"
	"github.com/ratekeeper/ratekeeper/internal/shared/logger"
)

// admitScript is the whole admission decision as one atomic step. The first
// loop walks every counter read-only and bails at the first ceiling already
// at capacity; the second loop runs only when all passed, increments every
// counter and arms the bucket TTL on first write. Concurrent admissions on
// overlapping keys serialize on the store, so a counter can never overshoot
// its ceiling and a denial never leaves a partial increment behind.
// KEYS[i]     = counter key of limit i
// ARGV[i*2-1] = ceiling of limit i
// ARGV[i*2]   = full-bucket TTL of limit i in seconds
// Returns {0, failedIndex, count, ceiling, retryAfterSeconds} on denial,
// {1, maxTTLSeconds, counts...} on admission.
var admitScript = redis.NewScript(`
for i = 1, #KEYS do
	local ceiling = tonumber(ARGV[i*2-1])
	local count = tonumber(redis.call('GET', KEYS[i]) or '0')
	if count >= ceiling then
		local ttl = redis.call('TTL', KEYS[i])
		if ttl < 0 then
			ttl = tonumber(ARGV[i*2])
		end
		return {0, i, count, ceiling, ttl}
	end
end

local maxttl = 0
local counts = {}
for i = 1, #KEYS do
	counts[i] = redis.call('INCR', KEYS[i])
	if counts[i] == 1 then
		redis.call('EXPIRE', KEYS[i], ARGV[i*2])
	end
	local ttl = tonumber(ARGV[i*2])
	if ttl > maxttl then
		maxttl = ttl
	end
end
return {1, maxttl, unpack(counts)}
`)

// ScriptEvaluator runs admissions against Redis through admitScript. It is
// the only writer of counter keys.
type ScriptEvaluator struct {
	client *redis.Client
	logger logger.Interface
}

// NewScriptEvaluator creates the Redis-backed admission evaluator.
func NewScriptEvaluator(client *redis.Client, logger logger.Interface) ratelimit.Evaluator {
	return &ScriptEvaluator{
		client: client,
		logger: logger,
	}
}

// Evaluate checks and increments every limit in one script call. Store
// errors come back wrapped in ratelimit.ErrStoreUnavailable so the caller
// can fail closed.
func (e *ScriptEvaluator) Evaluate(ctx context.Context, limits []ratelimit.EffectiveLimit, now time.Time) (*ratelimit.Outcome, error) {
	if len(limits) == 0 {
		return &ratelimit.Outcome{Allowed: true}, nil
	}

	keys := make([]string, len(limits))
	argv := make([]interface{}, 0, len(limits)*2)
	for i, l := range limits {
		key, ttl := counterKey(l, now)
		keys[i] = key
		argv = append(argv, l.Limit(), ttl)
	}

	raw, err := admitScript.Run(ctx, e.client, keys, argv...).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ratelimit.ErrStoreUnavailable, err)
	}

	reply, ok := raw.([]interface{})
	if !ok || len(reply) < 2 {
		return nil, fmt.Errorf("%w: unexpected script reply %T", ratelimit.ErrStoreUnavailable, raw)
	}

	if replyInt(reply[0]) == 0 {
		if len(reply) != 5 {
			return nil, fmt.Errorf("%w: malformed denial reply of length %d", ratelimit.ErrStoreUnavailable, len(reply))
		}
		retryAfter := replyInt(reply[4])
		if retryAfter < 1 {
			retryAfter = 1
		}
		return &ratelimit.Outcome{
			Allowed:           false,
			FailedIndex:       int(replyInt(reply[1])) - 1,
			CurrentCount:      replyInt(reply[2]),
			Ceiling:           replyInt(reply[3]),
			RetryAfterSeconds: retryAfter,
		}, nil
	}

	counts := make([]int64, 0, len(reply)-2)
	for _, v := range reply[2:] {
		counts = append(counts, replyInt(v))
	}
	return &ratelimit.Outcome{
		Allowed:       true,
		Counts:        counts,
		MaxTTLSeconds: replyInt(reply[1]),
	}, nil
}

func replyInt(v interface{}) int64 {
	n, _ := v.(int64)
	return n
}
