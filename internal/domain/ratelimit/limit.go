package ratelimit

import "sort"

// LimitKind tags the three ceiling variants enforced on an admission.
type LimitKind string

const (
	KindGlobal  LimitKind = "GLOBAL"
	KindMonthly LimitKind = "MONTHLY"
	KindWindow  LimitKind = "WINDOW"
)

func (k LimitKind) String() string {
	return string(k)
}

// priority returns the evaluation order of a kind. Global ceilings are
// checked before client ceilings so a system-wide overflow reports as
// GLOBAL even when a client ceiling would also have tripped.
func (k LimitKind) priority() int {
	switch k {
	case KindGlobal:
		return 0
	case KindMonthly:
		return 1
	default:
		return 2
	}
}

// EffectiveLimit is one ceiling materialized for a single admission. It is
// a tagged value: WINDOW and MONTHLY carry the client id, GLOBAL does not;
// WINDOW and windowed GLOBAL carry windowSeconds, the calendar-month
// variants leave it zero.
type EffectiveLimit struct {
	kind          LimitKind
	limit         int64
	windowSeconds int64
	clientID      uint
}

func NewWindowLimit(clientID uint, limit, windowSeconds int64) EffectiveLimit {
	return EffectiveLimit{kind: KindWindow, limit: limit, windowSeconds: windowSeconds, clientID: clientID}
}

func NewMonthlyLimit(clientID uint, limit int64) EffectiveLimit {
	return EffectiveLimit{kind: KindMonthly, limit: limit, clientID: clientID}
}

func NewGlobalWindowLimit(limit, windowSeconds int64) EffectiveLimit {
	return EffectiveLimit{kind: KindGlobal, limit: limit, windowSeconds: windowSeconds}
}

func NewGlobalMonthlyLimit(limit int64) EffectiveLimit {
	return EffectiveLimit{kind: KindGlobal, limit: limit}
}

func (l EffectiveLimit) Kind() LimitKind {
	return l.kind
}

func (l EffectiveLimit) Limit() int64 {
	return l.limit
}

func (l EffectiveLimit) WindowSeconds() int64 {
	return l.windowSeconds
}

func (l EffectiveLimit) ClientID() uint {
	return l.clientID
}

func (l EffectiveLimit) IsGlobal() bool {
	return l.kind == KindGlobal
}

// IsCalendarMonth reports whether the counter lives in a calendar-month
// bucket rather than a fixed window.
func (l EffectiveLimit) IsCalendarMonth() bool {
	return l.kind == KindMonthly || (l.kind == KindGlobal && l.windowSeconds == 0)
}

// Enabled reports whether the ceiling participates in evaluation. A zero
// ceiling means the limit is switched off and must be skipped.
func (l EffectiveLimit) Enabled() bool {
	return l.limit > 0
}

// SortByPriority orders limits GLOBAL, then MONTHLY, then WINDOW. The sort
// is stable so limits of the same kind keep their assembly order.
func SortByPriority(limits []EffectiveLimit) {
	sort.SliceStable(limits, func(i, j int) bool {
		return limits[i].kind.priority() < limits[j].kind.priority()
	})
}
