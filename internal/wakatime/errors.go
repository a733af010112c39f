package wakatime

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnauthorized indicates the API key was rejected (401). Never retried.
var ErrUnauthorized = errors.New("wakatime: api key rejected")

// RateLimitError indicates the API throttled the request (429). Retried
// with backoff until attempts are exhausted, then surfaced.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("wakatime: rate limited (retry after %s)", e.RetryAfter)
	}
	return "wakatime: rate limited"
}

// APIError is any other non-success response from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("wakatime: HTTP %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("wakatime: HTTP %d", e.StatusCode)
}
