package wakatime

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fastRetry keeps retry tests quick.
func fastRetry() RetryConfig {
	return RetryConfig{MaxAttempts: 3, InitialWait: time.Millisecond, Multiplier: 2.0}
}

func TestGetDateStats(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users/current/summaries", r.URL.Path)
		require.Equal(t, "2026-08-20", r.URL.Query().Get("start"))
		require.Equal(t, "2026-08-20", r.URL.Query().Get("end"))

		wantAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("key"))
		require.Equal(t, wantAuth, r.Header.Get("Authorization"))

		_, _ = w.Write([]byte(`{"data":[{
			"grand_total":{"text":"3 hrs 10 mins","total_seconds":11400},
			"languages":[{"name":"Go","text":"2 hrs","total_seconds":7200,"percent":63.2}],
			"range":{"date":"2026-08-20"}
		}]}`))
	}))
	defer server.Close()

	c := NewClient("key", WithBaseURL(server.URL))
	stats, err := c.GetDateStats(context.Background(), "2026-08-20")
	require.NoError(t, err)

	assert.Equal(t, "3 hrs 10 mins", stats.GrandTotal.Text)
	assert.Equal(t, 11400.0, stats.GrandTotal.TotalSeconds)
	require.Len(t, stats.Languages, 1)
	assert.Equal(t, "Go", stats.Languages[0].Name)
	assert.Equal(t, "2026-08-20", stats.Range.Date)
}

func TestGetDateStatsEmptyRangeIsZeroed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer server.Close()

	c := NewClient("key", WithBaseURL(server.URL))
	stats, err := c.GetDateStats(context.Background(), "2026-08-21")
	require.NoError(t, err)

	assert.Equal(t, 0.0, stats.GrandTotal.TotalSeconds)
	assert.Equal(t, "0 secs", stats.GrandTotal.Text)
	assert.Empty(t, stats.Languages)
	assert.Equal(t, "2026-08-21", stats.Range.Date)
}

func TestUnauthorizedIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	c := NewClient("bad", WithBaseURL(server.URL), WithRetry(fastRetry()))
	_, err := c.GetSummaries(context.Background(), "2026-08-01", "2026-08-07")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, int32(1), calls.Load())
}

func TestRateLimitIsRetriedThenSurfaced(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	c := NewClient("key", WithBaseURL(server.URL), WithRetry(fastRetry()))
	_, err := c.GetSummaries(context.Background(), "2026-08-01", "2026-08-07")
	require.Error(t, err)

	var rl *RateLimitError
	assert.ErrorAs(t, err, &rl)
	assert.Equal(t, int32(3), calls.Load())
}

func TestRateLimitRecoversAfterRetry(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer server.Close()

	c := NewClient("key", WithBaseURL(server.URL), WithRetry(fastRetry()))
	summaries, err := c.GetSummaries(context.Background(), "2026-08-01", "2026-08-07")
	require.NoError(t, err)
	assert.Empty(t, summaries.Data)
	assert.Equal(t, int32(2), calls.Load())
}

func TestServerErrorIsRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "flaky", http.StatusBadGateway)
	}))
	defer server.Close()

	c := NewClient("key", WithBaseURL(server.URL), WithRetry(fastRetry()))
	_, err := c.GetSummaries(context.Background(), "2026-08-01", "2026-08-07")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClientErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	defer server.Close()

	c := NewClient("key", WithBaseURL(server.URL), WithRetry(fastRetry()))
	_, err := c.GetSummaries(context.Background(), "bad", "dates")
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestParseRetryAfter(t *testing.T) {
	tests := []struct {
		header string
		want   time.Duration
	}{
		{"", 0},
		{"5", 5 * time.Second},
		{"not-a-number", 0},
		{"-3", 0},
	}

	for _, tt := range tests {
		if got := parseRetryAfter(tt.header); got != tt.want {
			t.Errorf("parseRetryAfter(%q) = %v, want %v", tt.header, got, tt.want)
		}
	}
}
