package ratekeeper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	headerAPIKey             = "X-API-Key"
	headerRateLimitLimit     = "X-RateLimit-Limit"
	headerRateLimitRemaining = "X-RateLimit-Remaining"
)

// Client is the RateKeeper API client.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Option is a function that configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(client *Client) {
		client.httpClient.Timeout = d
	}
}

// NewClient creates a new RateKeeper API client.
//
// Parameters:
//   - baseURL: The API base URL (e.g., "https://ratekeeper.example.com")
//   - apiKey: The client API key (e.g., "rk_xxx")
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SendSMS submits an SMS notification for delivery.
func (c *Client) SendSMS(ctx context.Context, recipient, message string) (*NotificationAck, error) {
	return c.send(ctx, "sms", recipient, message)
}

// SendEmail submits an email notification for delivery.
func (c *Client) SendEmail(ctx context.Context, recipient, message string) (*NotificationAck, error) {
	return c.send(ctx, "email", recipient, message)
}

func (c *Client) send(ctx context.Context, channel, recipient, message string) (*NotificationAck, error) {
	url := fmt.Sprintf("%s/api/notify/%s", c.baseURL, channel)

	data, err := json.Marshal(sendRequest{Recipient: recipient, Message: message})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set(headerAPIKey, c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		var ack NotificationAck
		if err := json.Unmarshal(respBody, &ack); err != nil {
			return nil, fmt.Errorf("unmarshal response: %w", err)
		}
		ack.RateLimit = rateLimitFromHeaders(resp.Header)
		return &ack, nil

	case resp.StatusCode == http.StatusTooManyRequests:
		rlErr := &RateLimitError{}
		if err := json.Unmarshal(respBody, rlErr); err != nil {
			return nil, fmt.Errorf("unmarshal rate limit response: %w", err)
		}
		return nil, rlErr

	default:
		return nil, apiErrorFrom(resp.StatusCode, respBody)
	}
}

// apiErrorFrom decodes an error body. Gate rejections are flat objects,
// management failures wrap the error in the response envelope; both are
// folded into one APIError.
func apiErrorFrom(statusCode int, body []byte) *APIError {
	var envelope envelopeError
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != nil {
		return &APIError{
			StatusCode: statusCode,
			Type:       envelope.Error.Type,
			Message:    envelope.Error.Message,
		}
	}

	var flat flatError
	if err := json.Unmarshal(body, &flat); err == nil && (flat.Error != "" || flat.Message != "") {
		return &APIError{
			StatusCode: statusCode,
			Type:       flat.Error,
			Message:    flat.Message,
		}
	}

	return &APIError{
		StatusCode: statusCode,
		Message:    string(body),
	}
}

func rateLimitFromHeaders(h http.Header) RateLimitInfo {
	info := RateLimitInfo{}
	if v, err := strconv.ParseInt(h.Get(headerRateLimitLimit), 10, 64); err == nil {
		info.Limit = v
	}
	if v, err := strconv.ParseInt(h.Get(headerRateLimitRemaining), 10, 64); err == nil {
		info.Remaining = v
	}
	return info
}
