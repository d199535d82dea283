// Package biztime provides UTC boundary calculations for counter buckets.
// All bucket math is wall-clock UTC so that buckets align across nodes;
// monotonic clocks must not be substituted here.
package biztime

import "time"

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// StartOfMonthUTC returns the first instant of the month containing t, in UTC.
func StartOfMonthUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// StartOfNextMonthUTC returns the first instant of the month after the one
// containing t, in UTC.
func StartOfNextMonthUTC(t time.Time) time.Time {
	return StartOfMonthUTC(t).AddDate(0, 1, 0)
}

// SecondsUntilNextMonthUTC returns the number of whole seconds from t to the
// first instant of the next UTC month. Used as the TTL of monthly counters so
// they die exactly when their bucket ends.
func SecondsUntilNextMonthUTC(t time.Time) int64 {
	secs := int64(StartOfNextMonthUTC(t).Sub(t.UTC()).Seconds())
	if secs < 1 {
		secs = 1
	}
	return secs
}

// MonthStamp formats t as the calendar year-month bucket identifier (YYYYMM)
// in UTC.
func MonthStamp(t time.Time) string {
	return t.UTC().Format("200601")
}
