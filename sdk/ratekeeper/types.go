// Package ratekeeper provides a Go SDK for the RateKeeper notification API.
package ratekeeper

import (
	"fmt"
	"time"
)

// NotificationAck is the acknowledgement returned for an accepted
// notification.
type NotificationAck struct {
	Success   bool   `json:"success"`
	ID        string `json:"id"`
	Channel   string `json:"channel"`
	Timestamp string `json:"timestamp"`
	Message   string `json:"message"`

	// RateLimit carries the X-RateLimit-* response headers.
	RateLimit RateLimitInfo `json:"-"`
}

// RateLimitInfo is the quota view the server attaches to admitted requests.
type RateLimitInfo struct {
	Limit     int64
	Remaining int64
}

// RateLimitError is returned when the server answers 429. Its fields mirror
// the denial body; LimitType is empty when the denial carried no ceiling,
// for example when the client has no active subscription.
type RateLimitError struct {
	ThrottleType        string `json:"throttleType"`
	LimitType           string `json:"limitType"`
	Limit               int64  `json:"limit"`
	Current             int64  `json:"current"`
	RetryAfterSeconds   int64  `json:"retryAfterSeconds"`
	RetryAfterFormatted string `json:"retryAfterFormatted"`
	SuggestedDelayMs    int64  `json:"suggestedDelayMs"`
	Message             string `json:"message"`
}

func (e *RateLimitError) Error() string {
	if e.LimitType == "" {
		return fmt.Sprintf("rate limited: %s", e.Message)
	}
	return fmt.Sprintf("rate limited (%s %s): %d/%d, retry after %s",
		e.ThrottleType, e.LimitType, e.Current, e.Limit, e.RetryAfterFormatted)
}

// Soft reports whether the server suggested pacing instead of a hard stop.
func (e *RateLimitError) Soft() bool {
	return e.ThrottleType == "SOFT"
}

// RetryAfter returns the server's retry hint as a duration.
func (e *RateLimitError) RetryAfter() time.Duration {
	return time.Duration(e.RetryAfterSeconds) * time.Second
}

// SuggestedDelay returns the cooperative pacing delay, zero on hard denials.
func (e *RateLimitError) SuggestedDelay() time.Duration {
	return time.Duration(e.SuggestedDelayMs) * time.Millisecond
}

// APIError is returned for any non-429 error status.
type APIError struct {
	StatusCode int
	Type       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status=%d type=%s message=%s", e.StatusCode, e.Type, e.Message)
}

// flatError is the wire shape of admission-gate rejections.
type flatError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// envelopeError is the wire shape of management-surface failures.
type envelopeError struct {
	Success bool `json:"success"`
	Error   *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

type sendRequest struct {
	Recipient string `json:"recipient"`
	Message   string `json:"message"`
}
