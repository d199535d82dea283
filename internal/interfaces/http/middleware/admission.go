package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ratekeeper/ratekeeper/internal/domain/client"
	"github.com/ratekeeper/ratekeeper/internal/domain/ratelimit"
	"github.com/ratekeeper/ratekeeper/internal/shared/biztime"
	"github.com/ratekeeper/ratekeeper/internal/shared/constants"
	"github.com/ratekeeper/ratekeeper/internal/shared/logger"
	"github.com/ratekeeper/ratekeeper/internal/shared/utils"
)

// Admitter decides one admission per request. Implemented by the
// application layer's AdmissionService.
type Admitter interface {
	TryConsume(ctx context.Context, clientID uint) (*ratelimit.Result, error)
}

// AdmissionMiddleware authenticates the API key and gates the request on
// the client's rate limits. Any store outage fails closed with a 503: a
// request that cannot be counted is never admitted.
type AdmissionMiddleware struct {
	clients  client.ClientRepository
	admitter Admitter
	logger   logger.Interface
}

func NewAdmissionMiddleware(clients client.ClientRepository, admitter Admitter, logger logger.Interface) *AdmissionMiddleware {
	return &AdmissionMiddleware{
		clients:  clients,
		admitter: admitter,
		logger:   logger,
	}
}

// Admit returns the gin handler enforcing authentication and admission.
// On success the authenticated client and the admission result are stored
// on the context for the downstream handler.
func (m *AdmissionMiddleware) Admit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		apiKey := c.GetHeader(constants.HeaderAPIKey)
		if apiKey == "" {
			m.reject(c, http.StatusUnauthorized, "Unauthorized", "Missing X-API-Key header")
			return
		}

		cl, err := m.clients.GetByAPIKey(c.Request.Context(), apiKey)
		if err != nil {
			if errors.Is(err, client.ErrClientNotFound) {
				m.reject(c, http.StatusUnauthorized, "Unauthorized", "Invalid API key")
				return
			}
			m.logger.Errorw("client lookup failed",
				"path", c.Request.URL.Path,
				"error", err)
			m.reject(c, http.StatusServiceUnavailable, "Service Unavailable", "An error occurred while processing your request")
			return
		}
		if !cl.Active() {
			m.reject(c, http.StatusForbidden, "Forbidden", "Client is inactive")
			return
		}

		result, err := m.admitter.TryConsume(c.Request.Context(), cl.ID())
		if err != nil {
			m.logger.Errorw("admission decision unavailable, failing closed",
				"client_id", cl.ID(),
				"path", c.Request.URL.Path,
				"error", err)
			m.reject(c, http.StatusServiceUnavailable, "Service Unavailable", "Rate limiting service temporarily unavailable")
			return
		}

		if !result.Allowed {
			m.rejectRateLimited(c, result)
			return
		}

		if result.Ceiling > 0 {
			c.Header(constants.HeaderRateLimitLimit, strconv.FormatInt(result.Ceiling, 10))
			c.Header(constants.HeaderRateLimitRemaining, strconv.FormatInt(result.Remaining, 10))
		}
		c.Set(constants.ContextKeyClient, cl)
		c.Set(constants.ContextKeyAdmission, result)
		c.Next()
	}
}

// reject writes a flat error body. Denials bypass the APIResponse envelope;
// their wire shape is part of the admission contract.
func (m *AdmissionMiddleware) reject(c *gin.Context, status int, errorLabel, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error":     errorLabel,
		"message":   message,
		"timestamp": biztime.NowUTC().Format(time.RFC3339),
		"status":    status,
		"path":      c.Request.URL.Path,
	})
}

// rejectRateLimited serves the 429. A soft throttle sleeps for the suggested
// delay first so cooperative clients are slowed instead of cut off; the
// sleep never outlives the caller's context.
func (m *AdmissionMiddleware) rejectRateLimited(c *gin.Context, result *ratelimit.Result) {
	if result.Throttle == ratelimit.ThrottleSoft && result.SoftDelay > 0 {
		timer := time.NewTimer(result.SoftDelay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-c.Request.Context().Done():
		}
	}

	body := gin.H{
		"error":        "Too Many Requests",
		"throttleType": result.Throttle.String(),
		"timestamp":    biztime.NowUTC().Format(time.RFC3339),
		"status":       http.StatusTooManyRequests,
		"path":         c.Request.URL.Path,
	}

	c.Header(constants.HeaderThrottleType, result.Throttle.String())

	if result.Limit != nil {
		retryFormatted := utils.FormatDuration(result.RetryAfterSeconds)
		c.Header(constants.HeaderRetryAfter, strconv.FormatInt(result.RetryAfterSeconds, 10))
		c.Header(constants.HeaderRateLimitLimit, strconv.FormatInt(result.Ceiling, 10))
		c.Header(constants.HeaderRateLimitRemaining, "0")

		body["limitType"] = result.Limit.Kind().String()
		body["limit"] = result.Ceiling
		body["current"] = result.CurrentCount
		body["retryAfterSeconds"] = result.RetryAfterSeconds
		body["retryAfterFormatted"] = retryFormatted
		body["message"] = fmt.Sprintf("%s exhausted. Limit: %d requests. Retry after %s.",
			limitTypeDescription(result.Limit.Kind()), result.Ceiling, retryFormatted)
	} else {
		// No ceiling was involved: the client simply has no active
		// subscription. There is nothing to retry after.
		body["message"] = result.Reason
	}

	if result.SoftDelay > 0 {
		delayMs := result.SoftDelay.Milliseconds()
		c.Header(constants.HeaderSuggestedDelayMs, strconv.FormatInt(delayMs, 10))
		body["suggestedDelayMs"] = delayMs
	}

	c.AbortWithStatusJSON(http.StatusTooManyRequests, body)
}

func limitTypeDescription(kind ratelimit.LimitKind) string {
	if kind == ratelimit.KindGlobal {
		return "Global system limit"
	}
	return "Your subscription plan limit"
}
