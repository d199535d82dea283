package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/ratekeeper/ratekeeper/internal/domain/ratelimit"
	"github.com/ratekeeper/ratekeeper/internal/shared/biztime"
	"github.com/ratekeeper/ratekeeper/internal/shared/config"
	"github.com/ratekeeper/ratekeeper/internal/shared/logger"
)

const noSubscriptionReason = "No active subscription. An active subscription plan is required."

// AdmissionService runs the admission pipeline for one request: resolve the
// subscription, assemble the ceilings, evaluate them atomically against the
// counter store, and classify a denial. Exactly one Result is produced per
// call; an error means no decision could be made and the caller must fail
// closed.
type AdmissionService struct {
	resolver   *SubscriptionResolver
	assembler  *LimitAssembler
	evaluator  ratelimit.Evaluator
	classifier *ratelimit.Classifier
	cfg        *config.RateLimitConfig
	metrics    MetricsRecorder
	logger     logger.Interface
	now        func() time.Time
}

func NewAdmissionService(
	resolver *SubscriptionResolver,
	assembler *LimitAssembler,
	evaluator ratelimit.Evaluator,
	cfg *config.RateLimitConfig,
	metrics MetricsRecorder,
	logger logger.Interface,
) *AdmissionService {
	// The soft label is ratio-based, but the cooperative delay behind it
	// only runs when the soft throttling mode is switched on.
	softDelay := time.Duration(0)
	if cfg.SoftEnabled() {
		softDelay = cfg.SoftDelay()
	}

	return &AdmissionService{
		resolver:   resolver,
		assembler:  assembler,
		evaluator:  evaluator,
		classifier: ratelimit.NewClassifier(cfg.GlobalSoftThreshold, cfg.GlobalHardThreshold, softDelay),
		cfg:        cfg,
		metrics:    metrics,
		logger:     logger,
		now:        biztime.NowUTC,
	}
}

// TryConsume decides one admission for the client. On admit every involved
// counter has been incremented by exactly one; on deny none was touched.
func (s *AdmissionService) TryConsume(ctx context.Context, clientID uint) (*ratelimit.Result, error) {
	now := s.now()

	snapshot, err := s.resolver.Resolve(ctx, clientID, now)
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		s.logger.Warnw("admission denied: no active subscription",
			"client_id", clientID)
		s.metrics.RecordDecision(false, "NONE", ratelimit.ThrottleHard.String())
		return ratelimit.NoSubscriptionResult(noSubscriptionReason), nil
	}

	limits, err := s.assembler.Assemble(ctx, clientID, snapshot)
	if err != nil {
		return nil, err
	}
	if len(limits) == 0 {
		s.metrics.RecordDecision(true, "NONE", ratelimit.ThrottleNone.String())
		return ratelimit.AllowedResult(0, 0, 0), nil
	}

	// A caller that already gave up must not consume quota.
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("admission cancelled before evaluation: %w", err)
	}

	start := time.Now()
	outcome, err := s.evaluator.Evaluate(ctx, limits, now)
	s.metrics.ObserveEvaluation(time.Since(start))
	if err != nil {
		return nil, err
	}

	if outcome.Allowed {
		return s.buildAllowed(clientID, limits, outcome), nil
	}
	return s.buildDenied(clientID, limits, outcome), nil
}

// buildAllowed derives the admit decision: the most loaded client ceiling
// feeds the rate-limit response headers, the most loaded global ceiling
// drives the usage threshold events.
func (s *AdmissionService) buildAllowed(clientID uint, limits []ratelimit.EffectiveLimit, outcome *ratelimit.Outcome) *ratelimit.Result {
	repIdx := -1
	var repRemaining int64
	for i, l := range limits {
		if l.IsGlobal() {
			continue
		}
		remaining := l.Limit() - outcome.Counts[i]
		if remaining < 0 {
			remaining = 0
		}
		if repIdx < 0 || remaining < repRemaining {
			repIdx = i
			repRemaining = remaining
		}
	}

	var result *ratelimit.Result
	if repIdx >= 0 {
		result = ratelimit.AllowedResult(limits[repIdx].Limit(), outcome.Counts[repIdx], outcome.MaxTTLSeconds)
	} else {
		result = ratelimit.AllowedResult(0, 0, outcome.MaxTTLSeconds)
	}

	var globalRatio float64
	for i, l := range limits {
		if !l.IsGlobal() {
			continue
		}
		if r := ratelimit.GlobalRatio(outcome.Counts[i], l.Limit()); r > globalRatio {
			globalRatio = r
		}
	}
	if globalRatio > 0 {
		result.GlobalUsageRatio = globalRatio
		s.emitGlobalUsageEvents(globalRatio)
	}

	s.metrics.RecordDecision(true, "NONE", ratelimit.ThrottleNone.String())
	s.logger.Debugw("admission allowed",
		"client_id", clientID,
		"limits", len(limits),
		"global_usage_ratio", globalRatio,
	)

	return result
}

func (s *AdmissionService) buildDenied(clientID uint, limits []ratelimit.EffectiveLimit, outcome *ratelimit.Outcome) *ratelimit.Result {
	failed := limits[outcome.FailedIndex]
	throttle, softDelay := s.classifier.Classify(failed, outcome.CurrentCount)
	result := ratelimit.DeniedResult(failed, outcome.CurrentCount, outcome.RetryAfterSeconds, throttle, softDelay, "")

	if failed.IsGlobal() &&
		result.GlobalUsageRatio >= s.cfg.GlobalFullThreshold &&
		result.GlobalUsageRatio < s.cfg.GlobalHardThreshold {
		s.logger.Warnw("global rate limit at capacity, rejecting requests",
			"usage_pct", fmt.Sprintf("%.0f", result.GlobalUsageRatio*100),
		)
		s.metrics.RecordThresholdEvent("full")
	}

	s.metrics.RecordDecision(false, failed.Kind().String(), throttle.String())
	s.logger.Warnw("admission denied",
		"client_id", clientID,
		"limit_kind", failed.Kind().String(),
		"current", outcome.CurrentCount,
		"ceiling", outcome.Ceiling,
		"throttle", throttle.String(),
		"retry_after_seconds", outcome.RetryAfterSeconds,
	)

	return result
}

// emitGlobalUsageEvents reports threshold crossings observed on admitted
// requests. The full event fires when an admission exactly fills the global
// bucket; the warn event covers the band below it.
func (s *AdmissionService) emitGlobalUsageEvents(ratio float64) {
	switch {
	case ratio >= s.cfg.GlobalFullThreshold:
		s.logger.Warnw("global rate limit reached capacity",
			"usage_pct", fmt.Sprintf("%.0f", ratio*100),
		)
		s.metrics.RecordThresholdEvent("full")
	case ratio >= s.cfg.GlobalWarnThreshold:
		s.logger.Warnw("global rate limit usage nearing capacity",
			"usage_pct", fmt.Sprintf("%.0f", ratio*100),
		)
		s.metrics.RecordThresholdEvent("warn")
	}
}
