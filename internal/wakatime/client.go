package wakatime

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// RetryConfig bounds retries for transient failures. Rate limits and
// network errors are retried; authentication failures are not.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	Multiplier  float64
}

// DefaultRetryConfig retries twice more after the first failure, waiting
// 1s then 2s.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: 1 * time.Second,
		Multiplier:  2.0,
	}
}

// Client is an authenticated client for the WakaTime summaries API.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
	retry   RetryConfig
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL (used by tests).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithRetry overrides the retry policy.
func WithRetry(cfg RetryConfig) Option {
	return func(c *Client) { c.retry = cfg }
}

// NewClient creates a client that authenticates with the given API key.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: "https://wakatime.com/api/v1",
		client:  &http.Client{Timeout: 30 * time.Second},
		retry:   DefaultRetryConfig(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetSummaries fetches the raw summaries for [start, end], both formatted
// as YYYY-MM-DD.
func (c *Client) GetSummaries(ctx context.Context, start, end string) (*Summaries, error) {
	q := url.Values{}
	q.Set("start", start)
	q.Set("end", end)

	var summaries Summaries
	if err := c.getJSON(ctx, "/users/current/summaries?"+q.Encode(), &summaries); err != nil {
		return nil, err
	}
	return &summaries, nil
}

// GetTodayStats returns today's coding stats, zeroed when the API has no
// data yet.
func (c *Client) GetTodayStats(ctx context.Context) (*DayStats, error) {
	return c.GetDateStats(ctx, time.Now().Format("2006-01-02"))
}

// GetDateStats returns the stats for one day.
func (c *Client) GetDateStats(ctx context.Context, date string) (*DayStats, error) {
	summaries, err := c.GetSummaries(ctx, date, date)
	if err != nil {
		return nil, err
	}
	if len(summaries.Data) == 0 {
		return zeroDayStats(date), nil
	}
	day := summaries.Data[0]
	if day.Range.Date == "" {
		day.Range.Date = date
	}
	if day.Languages == nil {
		day.Languages = []Language{}
	}
	return &day, nil
}

// getJSON performs an authenticated GET with bounded retry and decodes the
// response into out.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	var lastErr error
	wait := c.retry.InitialWait

	for attempt := 0; attempt < c.retry.MaxAttempts; attempt++ {
		err := c.doOnce(ctx, path, out)
		if err == nil {
			return nil
		}
		lastErr = err

		if !retryable(err) {
			return err
		}
		if attempt == c.retry.MaxAttempts-1 {
			break
		}

		delay := wait
		var rl *RateLimitError
		if errors.As(err, &rl) && rl.RetryAfter > 0 {
			delay = rl.RetryAfter
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		wait = time.Duration(float64(wait) * c.retry.Multiplier)
	}
	return lastErr
}

func (c *Client) doOnce(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	auth := base64.StdEncoding.EncodeToString([]byte(c.apiKey))
	req.Header.Set("Authorization", "Basic "+auth)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("wakatime request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusOK:
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &APIError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("decode response: %v", err)}
		}
		return nil
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusTooManyRequests:
		return &RateLimitError{RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"))}
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}
}

// retryable reports whether an error is worth retrying: rate limits,
// network failures and server errors are; auth and context errors are not.
func retryable(err error) bool {
	if errors.Is(err, ErrUnauthorized) {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500
	}
	return true
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 0
	}
	secs, err := strconv.Atoi(header)
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
