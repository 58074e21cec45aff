package api

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"
)

// RetryConfig configures retry behavior for failed HTTP requests.
type RetryConfig struct {
	// MaxRetries is the maximum number of retry attempts after the first
	// request. Zero disables retries.
	MaxRetries int
	// BaseDelay is the initial delay between retry attempts.
	BaseDelay time.Duration
	// MaxDelay is the maximum delay between retry attempts, applied after
	// jitter.
	MaxDelay time.Duration
	// Multiplier is the factor by which the delay increases per attempt.
	Multiplier float64
	// Jitter is the randomization factor (0.0 to 1.0) added on top of the
	// exponential delay to prevent synchronized retry bursts.
	Jitter float64
}

// DefaultRetryConfig returns the default retry configuration.
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxRetries: 3,
		BaseDelay:  time.Second,
		MaxDelay:   30 * time.Second,
		Multiplier: 2.0,
		Jitter:     0.1,
	}
}

// ShouldRetry reports whether a failed attempt should be retried.
// Rate-limit errors are always retried while budget remains; the permanent
// 4xx kinds (validation, authentication, not-found, conflict) never are;
// server, connection and timeout failures are retried while budget remains.
func (r *RetryConfig) ShouldRetry(attempt int, err error) bool {
	if attempt >= r.MaxRetries {
		return false
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Kind.Retryable()
}

// Delay computes the backoff before retry attempt (0-indexed). The delay is
// base*multiplier^attempt plus up to Jitter of that value, capped at
// MaxDelay after jitter is applied.
func (r *RetryConfig) Delay(attempt int) time.Duration {
	delay := float64(r.BaseDelay) * math.Pow(r.Multiplier, float64(attempt))

	if r.Jitter > 0 {
		delay += rand.Float64() * r.Jitter * delay
	}
	if delay > float64(r.MaxDelay) {
		delay = float64(r.MaxDelay)
	}

	return time.Duration(delay)
}

// Wait sleeps for the attempt's backoff delay, honoring context cancellation.
func (r *RetryConfig) Wait(ctx context.Context, attempt int) error {
	timer := time.NewTimer(r.Delay(attempt))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
