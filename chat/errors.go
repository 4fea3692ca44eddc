package chat

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrNoMessages is returned when Complete is called without messages.
	ErrNoMessages = errors.New("chat: no messages")

	// ErrEmptyResponse is returned when the API answers without choices.
	ErrEmptyResponse = errors.New("chat: empty response: no choices")
)

// StatusError is a non-2xx answer from the API.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("chat API error (status %d): %s", e.StatusCode, e.Body)
}

// RateLimitError indicates the API returned HTTP 429.
type RateLimitError struct {
	Err        error
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *RateLimitError) Unwrap() error {
	return e.Err
}

// NewRateLimitError creates a RateLimitError. A non-positive retryAfter
// defaults to 60s.
func NewRateLimitError(err error, retryAfter time.Duration) *RateLimitError {
	if retryAfter <= 0 {
		retryAfter = 60 * time.Second
	}
	return &RateLimitError{Err: err, RetryAfter: retryAfter}
}

// ParseRetryAfter parses a Retry-After header given either as seconds or as
// an HTTP date relative to now. Returns 0 if the value is empty or invalid.
func ParseRetryAfter(val string, now time.Time) time.Duration {
	val = strings.TrimSpace(val)
	if val == "" {
		return 0
	}
	if secs, err := strconv.Atoi(val); err == nil {
		if secs < 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(val); err == nil {
		if d := t.Sub(now); d > 0 {
			return d
		}
	}
	return 0
}
