package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"time"
)

// Default transport configuration values.
const (
	DefaultTimeout = 30 * time.Second
)

// FormPayload is a pre-encoded request body, typically a multipart form for
// certificate uploads. It is sent as-is with its own Content-Type; the
// transport never overrides it.
type FormPayload struct {
	Body        []byte
	ContentType string
}

// Config holds the API client configuration. It is read-only after NewClient.
type Config struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	// Timeout is the per-attempt wall-clock budget. Zero means DefaultTimeout.
	Timeout time.Duration
	// Retry is the retry policy. Nil means DefaultRetryConfig.
	Retry *RetryConfig
	// Logger receives debug output. Nil means discard.
	Logger *slog.Logger
	// Metrics receives instrumentation events. Nil means discard.
	Metrics Metrics
}

// Client is the HTTP API client. It executes single requests with timeout
// enforcement, classifies every failure, and retries transient ones.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	timeout    time.Duration
	retry      *RetryConfig
	logger     *slog.Logger
	metrics    Metrics
}

// NewClient creates a new API client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, &Error{Kind: KindConfiguration, Message: "API key is required"}
	}
	if cfg.BaseURL == "" {
		return nil, &Error{Kind: KindConfiguration, Message: "base URL is required"}
	}

	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: cfg.HTTPClient,
		timeout:    cfg.Timeout,
		retry:      cfg.Retry,
		logger:     cfg.Logger,
		metrics:    cfg.Metrics,
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	if c.retry == nil {
		c.retry = DefaultRetryConfig()
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if c.metrics == nil {
		c.metrics = nopMetrics{}
	}

	return c, nil
}

// Retry returns the client's retry policy.
func (c *Client) Retry() *RetryConfig { return c.retry }

// Logger returns the client's logger.
func (c *Client) Logger() *slog.Logger { return c.logger }

// Metrics returns the client's metrics collector.
func (c *Client) Metrics() Metrics { return c.metrics }

// response is a parsed HTTP response owned by the call that produced it.
type response struct {
	status      int
	header      http.Header
	contentType string
	body        []byte
}

// Do executes a request and decodes a JSON response into out (which may be
// nil for empty responses). A non-JSON body with a decode target is an
// error carrying the raw text. A 202 response with a Location header is
// not an error: it yields an *Accepted sentinel and a nil out. Every
// failure is classified; no raw transport error escapes.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) (*Accepted, error) {
	resp, accepted, err := c.execute(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	if accepted != nil {
		return accepted, nil
	}

	if out != nil && len(resp.body) > 0 {
		if !isJSONContentType(resp.contentType) {
			return nil, &Error{
				Kind:       KindServer,
				Message:    fmt.Sprintf("unexpected content type %q", resp.contentType),
				StatusCode: resp.status,
				Body:       resp.body,
			}
		}
		if err := json.Unmarshal(resp.body, out); err != nil {
			return nil, &Error{
				Kind:       KindServer,
				Message:    "failed to decode response body",
				StatusCode: resp.status,
				Body:       resp.body,
				Err:        err,
			}
		}
	}
	return nil, nil
}

// isJSONContentType reports whether a response body should be decoded as
// JSON. A missing Content-Type is treated as JSON since that is the only
// body shape Do handles; downloads go through Download.
func isJSONContentType(contentType string) bool {
	if contentType == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

// Download executes a request and returns the raw body with its content
// type. PDF and XML responses come back as the server sent them; anything
// else is returned as-is for the caller to interpret as text.
func (c *Client) Download(ctx context.Context, method, path string) ([]byte, string, error) {
	resp, accepted, err := c.execute(ctx, method, path, nil)
	if err != nil {
		return nil, "", err
	}
	if accepted != nil {
		return nil, "", &Error{
			Kind:       KindInvoiceProcessing,
			Message:    "resource is still processing",
			StatusCode: http.StatusAccepted,
		}
	}
	return resp.body, resp.contentType, nil
}

// execute runs the retry loop around single attempts. It returns either a
// successful 2xx response, the 202 sentinel, or the last classified error.
func (c *Client) execute(ctx context.Context, method, path string, body any) (*response, *Accepted, error) {
	payload, contentType, err := buildBody(body)
	if err != nil {
		return nil, nil, err
	}

	var lastErr error
	for attempt := 0; ; attempt++ {
		resp, attemptErr := c.attempt(ctx, method, path, payload, contentType)
		if attemptErr == nil {
			if resp.status == http.StatusAccepted {
				acc, accErr := acceptedSentinel(resp)
				return nil, acc, accErr
			}
			if resp.status >= 200 && resp.status < 300 {
				return resp, nil, nil
			}
			attemptErr = Classify(resp.status, resp.header, resp.body)
		}

		lastErr = attemptErr
		if !c.retry.ShouldRetry(attempt, attemptErr) {
			return nil, nil, lastErr
		}

		c.metrics.IncRetry(method)
		c.logger.Debug("retrying request",
			"method", method,
			"path", path,
			"attempt", attempt+1,
			"error", attemptErr)

		if waitErr := c.retry.Wait(ctx, attempt); waitErr != nil {
			return nil, nil, lastErr
		}
	}
}

// attempt performs exactly one HTTP round trip under the per-attempt
// timeout and reads the body fully.
func (c *Client) attempt(ctx context.Context, method, path string, payload []byte, contentType string) (*response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, &Error{Kind: KindConfiguration, Message: fmt.Sprintf("failed to build request: %v", err), Err: err}
	}

	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ObserveRequest(method, 0, time.Since(start))
		return nil, ClassifyTransport(err, c.timeout)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	c.metrics.ObserveRequest(method, resp.StatusCode, time.Since(start))
	if err != nil {
		return nil, ClassifyTransport(err, c.timeout)
	}

	return &response{
		status:      resp.StatusCode,
		header:      resp.Header,
		contentType: resp.Header.Get("Content-Type"),
		body:        data,
	}, nil
}

// buildBody shapes the outgoing request body. No payload means no body; a
// *FormPayload passes through untouched with its own Content-Type; any
// other value is JSON-serialized.
func buildBody(body any) ([]byte, string, error) {
	switch b := body.(type) {
	case nil:
		return nil, "", nil
	case *FormPayload:
		return b.Body, b.ContentType, nil
	default:
		data, err := json.Marshal(body)
		if err != nil {
			return nil, "", &Error{
				Kind:    KindConfiguration,
				Message: "failed to marshal request body",
				Err:     err,
			}
		}
		return data, "application/json", nil
	}
}
