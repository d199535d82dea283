package ratelimit

import "testing"

func TestSortByPriority(t *testing.T) {
	limits := []EffectiveLimit{
		NewWindowLimit(1, 5, 60),
		NewMonthlyLimit(1, 1000),
		NewGlobalWindowLimit(100, 60),
		NewGlobalMonthlyLimit(50000),
	}

	SortByPriority(limits)

	wantKinds := []LimitKind{KindGlobal, KindGlobal, KindMonthly, KindWindow}
	for i, want := range wantKinds {
		if limits[i].Kind() != want {
			t.Errorf("limits[%d].Kind() = %s, want %s", i, limits[i].Kind(), want)
		}
	}

	// Stable: the windowed global was assembled before the monthly global.
	if limits[0].WindowSeconds() != 60 {
		t.Errorf("limits[0].WindowSeconds() = %d, want 60 (stable order)", limits[0].WindowSeconds())
	}
	if limits[1].WindowSeconds() != 0 {
		t.Errorf("limits[1].WindowSeconds() = %d, want 0 (stable order)", limits[1].WindowSeconds())
	}
}

func TestEffectiveLimitTags(t *testing.T) {
	tests := []struct {
		name            string
		limit           EffectiveLimit
		wantKind        LimitKind
		wantGlobal      bool
		wantMonthBucket bool
		wantClientID    uint
	}{
		{"client window", NewWindowLimit(7, 5, 60), KindWindow, false, false, 7},
		{"client monthly", NewMonthlyLimit(7, 1000), KindMonthly, false, true, 7},
		{"global window", NewGlobalWindowLimit(100, 60), KindGlobal, true, false, 0},
		{"global monthly", NewGlobalMonthlyLimit(50000), KindGlobal, true, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.limit.Kind() != tt.wantKind {
				t.Errorf("Kind() = %s, want %s", tt.limit.Kind(), tt.wantKind)
			}
			if tt.limit.IsGlobal() != tt.wantGlobal {
				t.Errorf("IsGlobal() = %v, want %v", tt.limit.IsGlobal(), tt.wantGlobal)
			}
			if tt.limit.IsCalendarMonth() != tt.wantMonthBucket {
				t.Errorf("IsCalendarMonth() = %v, want %v", tt.limit.IsCalendarMonth(), tt.wantMonthBucket)
			}
			if tt.limit.ClientID() != tt.wantClientID {
				t.Errorf("ClientID() = %d, want %d", tt.limit.ClientID(), tt.wantClientID)
			}
		})
	}
}

func TestEffectiveLimitEnabled(t *testing.T) {
	if !NewMonthlyLimit(1, 100).Enabled() {
		t.Error("positive ceiling should be enabled")
	}
	if NewMonthlyLimit(1, 0).Enabled() {
		t.Error("zero ceiling should be treated as disabled")
	}
}

func TestAllowedResultRemaining(t *testing.T) {
	r := AllowedResult(100, 1, 30)
	if r.Remaining != 99 {
		t.Errorf("Remaining = %d, want 99", r.Remaining)
	}
	if r.Throttle != ThrottleNone {
		t.Errorf("Throttle = %s, want NONE", r.Throttle)
	}

	// Ceiling already consumed: remaining clamps at zero.
	r = AllowedResult(100, 100, 30)
	if r.Remaining != 0 {
		t.Errorf("Remaining = %d, want 0", r.Remaining)
	}
}

func TestDeniedResultGlobalRatio(t *testing.T) {
	r := DeniedResult(NewGlobalWindowLimit(100, 60), 120, 42, ThrottleHard, 0, "limit hit")
	if r.GlobalUsageRatio != 1.2 {
		t.Errorf("GlobalUsageRatio = %v, want 1.2", r.GlobalUsageRatio)
	}
	if r.Remaining != 0 {
		t.Errorf("Remaining = %d, want 0", r.Remaining)
	}
	if r.RetryAfterSeconds != 42 {
		t.Errorf("RetryAfterSeconds = %d, want 42", r.RetryAfterSeconds)
	}

	r = DeniedResult(NewMonthlyLimit(1, 100), 100, 42, ThrottleHard, 0, "limit hit")
	if r.GlobalUsageRatio != 0 {
		t.Errorf("GlobalUsageRatio = %v, want 0 for client limits", r.GlobalUsageRatio)
	}
}
