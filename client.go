package fiscaldocs

import (
	"github.com/fiscaldocs/client-go/internal/api"
)

const defaultBaseURL = "https://api.fiscaldocs.io"

// Re-exported transport types so callers never import internal packages.
type (
	// RetryConfig configures retry behavior for failed HTTP requests.
	RetryConfig = api.RetryConfig

	// Metrics receives instrumentation events from the transport and the
	// polling flows.
	Metrics = api.Metrics
)

// DefaultRetryConfig returns the default retry configuration.
func DefaultRetryConfig() *RetryConfig {
	return api.DefaultRetryConfig()
}

// Client is the fiscal-document API client. Its configuration is read-only
// after New; a Client is safe for concurrent use.
type Client struct {
	api *api.Client
}

// New creates a new client with the given API key.
func New(apiKey string, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		baseURL: defaultBaseURL,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	apiClient, err := api.NewClient(api.Config{
		BaseURL:    cfg.baseURL,
		APIKey:     apiKey,
		HTTPClient: cfg.httpClient,
		Timeout:    cfg.timeout,
		Retry:      cfg.retry,
		Logger:     cfg.logger,
		Metrics:    cfg.metrics,
	})
	if err != nil {
		return nil, err
	}

	return &Client{api: apiClient}, nil
}
