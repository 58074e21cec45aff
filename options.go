package fiscaldocs

import (
	"log/slog"
	"net/http"
	"time"
)

// clientConfig holds configuration for the client.
type clientConfig struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	retry      *RetryConfig
	logger     *slog.Logger
	metrics    Metrics
}

// waitConfig holds configuration for waiting on an async operation.
type waitConfig struct {
	timeout       time.Duration
	initialDelay  time.Duration
	maxDelay      time.Duration
	backoffFactor float64
	maxAttempts   int
	onPoll        func(attempt int, invoice *ServiceInvoice)
}

// Option configures the client.
type Option func(*clientConfig)

// WaitOption configures the polling phase of an async operation such as
// invoice issuance or cancellation.
type WaitOption func(*waitConfig)

// WithBaseURL sets the API base URL.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithTimeout sets the per-attempt request timeout.
// Default: 30 seconds.
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithRetryConfig sets the retry policy for transient failures.
func WithRetryConfig(cfg *RetryConfig) Option {
	return func(c *clientConfig) {
		c.retry = cfg
	}
}

// WithRetries sets the maximum number of retries, keeping the default
// backoff schedule.
func WithRetries(count int) Option {
	return func(c *clientConfig) {
		if c.retry == nil {
			c.retry = DefaultRetryConfig()
		}
		c.retry.MaxRetries = count
	}
}

// WithLogger sets the logger for debug output. By default all output is
// discarded.
func WithLogger(logger *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}

// WithMetrics sets the metrics collector. See NewPrometheusMetrics.
func WithMetrics(m Metrics) Option {
	return func(c *clientConfig) {
		c.metrics = m
	}
}

// WithWaitTimeout sets the overall wall-clock budget for polling.
// Default: 3 minutes.
func WithWaitTimeout(timeout time.Duration) WaitOption {
	return func(c *waitConfig) {
		c.timeout = timeout
	}
}

// WithPollInitialDelay sets the delay before the second poll.
// Default: 2 seconds.
func WithPollInitialDelay(delay time.Duration) WaitOption {
	return func(c *waitConfig) {
		c.initialDelay = delay
	}
}

// WithPollMaxDelay caps the growing delay between polls.
// Default: 30 seconds.
func WithPollMaxDelay(delay time.Duration) WaitOption {
	return func(c *waitConfig) {
		c.maxDelay = delay
	}
}

// WithPollBackoffFactor sets the factor by which the poll delay grows.
// Default: 1.5.
func WithPollBackoffFactor(factor float64) WaitOption {
	return func(c *waitConfig) {
		c.backoffFactor = factor
	}
}

// WithPollMaxAttempts bounds the number of status fetches.
// Default: 60.
func WithPollMaxAttempts(attempts int) WaitOption {
	return func(c *waitConfig) {
		c.maxAttempts = attempts
	}
}

// WithPollProgress sets a callback fired after every poll cycle with the
// attempt number and the current invoice state. The callback must not
// block; a panicking callback does not abort polling.
func WithPollProgress(fn func(attempt int, invoice *ServiceInvoice)) WaitOption {
	return func(c *waitConfig) {
		c.onPoll = fn
	}
}
