package ratelimit

import (
	"fmt"
	"time"

	"github.com/ratekeeper/ratekeeper/internal/domain/ratelimit"
	"github.com/ratekeeper/ratekeeper/internal/shared/biztime"
)

// Counter key layout. Client counters share the rl:c:<id>: prefix so a
// subscription change can drop all of them with one SCAN pass.
const (
	clientWindowKeyFmt  = "rl:c:%d:w:%d"
	clientMonthlyKeyFmt = "rl:c:%d:m:%s"
	globalWindowKeyFmt  = "rl:g:w:%d"
	globalMonthlyKeyFmt = "rl:g:m:%s"
)

// windowBucketStart aligns t to the start of its fixed window. Buckets are
// anchored at the Unix epoch, so every node computing the same instant and
// width lands on the same bucket.
func windowBucketStart(t time.Time, windowSeconds int64) int64 {
	return (t.Unix() / windowSeconds) * windowSeconds
}

// counterKey resolves the Redis key and the full-bucket TTL for one limit at
// the given instant. Window counters expire after the window width, monthly
// counters at the next UTC month boundary.
func counterKey(l ratelimit.EffectiveLimit, now time.Time) (key string, ttlSeconds int64) {
	if l.IsCalendarMonth() {
		stamp := biztime.MonthStamp(now)
		ttl := biztime.SecondsUntilNextMonthUTC(now)
		if l.IsGlobal() {
			return fmt.Sprintf(globalMonthlyKeyFmt, stamp), ttl
		}
		return fmt.Sprintf(clientMonthlyKeyFmt, l.ClientID(), stamp), ttl
	}

	bucket := windowBucketStart(now, l.WindowSeconds())
	if l.IsGlobal() {
		return fmt.Sprintf(globalWindowKeyFmt, bucket), l.WindowSeconds()
	}
	return fmt.Sprintf(clientWindowKeyFmt, l.ClientID(), bucket), l.WindowSeconds()
}

// clientCounterPattern matches every live counter of one client.
func clientCounterPattern(clientID uint) string {
	return fmt.Sprintf("rl:c:%d:*", clientID)
}
