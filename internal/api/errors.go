package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"
)

// Sentinel errors for errors.Is() checks. Every failure surfaced by the
// client matches exactly one of these.
var (
	// ErrValidation indicates the server rejected the request body (HTTP 400).
	ErrValidation = errors.New("validation failed")

	// ErrAuthentication indicates the API key is invalid or expired (HTTP 401).
	ErrAuthentication = errors.New("invalid or expired API key")

	// ErrNotFound indicates the requested resource does not exist (HTTP 404).
	ErrNotFound = errors.New("resource not found")

	// ErrConflict indicates the request conflicts with existing state (HTTP 409).
	ErrConflict = errors.New("resource conflict")

	// ErrRateLimited indicates the API rate limit has been exceeded (HTTP 429).
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrServer indicates a server-side failure (HTTP 5xx).
	ErrServer = errors.New("server error")

	// ErrConnection indicates a network-level failure reaching the API.
	ErrConnection = errors.New("connection error")

	// ErrTimeout indicates a request exceeded its deadline.
	ErrTimeout = errors.New("request timed out")

	// ErrConfiguration indicates the client is misconfigured.
	ErrConfiguration = errors.New("invalid client configuration")

	// ErrInvoiceProcessing indicates the remote side reported a processing
	// failure for a long-running operation.
	ErrInvoiceProcessing = errors.New("invoice processing failed")

	// ErrPollingTimeout indicates polling for an async operation gave up
	// before a terminal status was observed. The remote operation may still
	// complete after the client stops waiting.
	ErrPollingTimeout = errors.New("polling timed out")
)

// Kind classifies a failure into one of a closed set of categories.
type Kind string

const (
	KindValidation        Kind = "validation"
	KindAuthentication    Kind = "authentication"
	KindNotFound          Kind = "not_found"
	KindConflict          Kind = "conflict"
	KindRateLimit         Kind = "rate_limit"
	KindServer            Kind = "server"
	KindConnection        Kind = "connection"
	KindTimeout           Kind = "timeout"
	KindConfiguration     Kind = "configuration"
	KindInvoiceProcessing Kind = "invoice_processing"
	KindPollingTimeout    Kind = "polling_timeout"
)

// sentinel returns the sentinel error matched by this kind.
func (k Kind) sentinel() error {
	switch k {
	case KindValidation:
		return ErrValidation
	case KindAuthentication:
		return ErrAuthentication
	case KindNotFound:
		return ErrNotFound
	case KindConflict:
		return ErrConflict
	case KindRateLimit:
		return ErrRateLimited
	case KindServer:
		return ErrServer
	case KindConnection:
		return ErrConnection
	case KindTimeout:
		return ErrTimeout
	case KindConfiguration:
		return ErrConfiguration
	case KindInvoiceProcessing:
		return ErrInvoiceProcessing
	case KindPollingTimeout:
		return ErrPollingTimeout
	}
	return nil
}

// Retryable reports whether a failure of this kind may succeed on retry.
// Rate-limit responses are always retryable while budget remains; the
// permanent 4xx kinds never are.
func (k Kind) Retryable() bool {
	switch k {
	case KindRateLimit, KindServer, KindConnection, KindTimeout:
		return true
	default:
		return false
	}
}

// Error is the single error type surfaced by the client. Every failure
// crossing the transport boundary is one of the Kind values above; no raw
// transport error escapes unclassified.
type Error struct {
	Kind       Kind
	Message    string
	StatusCode int           // original HTTP status, 0 for network failures
	RetryAfter time.Duration // Retry-After hint for rate-limit errors, 0 if absent
	Body       []byte        // raw response body, nil for network failures
	Attempts   int           // poll attempts performed, for polling timeouts
	Elapsed    time.Duration // time spent polling, for polling timeouts
	Err        error         // underlying cause, if any
}

func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (HTTP %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *Error) Is(target error) bool {
	return target == e.Kind.sentinel()
}

// Classify maps a non-2xx HTTP response onto the error taxonomy. It is pure:
// only the status, headers and body bytes are consulted.
func Classify(statusCode int, header http.Header, body []byte) *Error {
	e := &Error{
		Message:    extractMessage(statusCode, body),
		StatusCode: statusCode,
		Body:       body,
	}

	switch statusCode {
	case http.StatusBadRequest:
		e.Kind = KindValidation
	case http.StatusUnauthorized:
		e.Kind = KindAuthentication
	case http.StatusNotFound:
		e.Kind = KindNotFound
	case http.StatusConflict:
		e.Kind = KindConflict
	case http.StatusTooManyRequests:
		e.Kind = KindRateLimit
		e.RetryAfter = parseRetryAfter(header)
	default:
		// 5xx and any unrecognized status; the raw status is preserved.
		e.Kind = KindServer
	}

	return e
}

// ClassifyTransport maps a network-level failure onto the taxonomy. A
// deadline expiry (our own cancellation timer firing) becomes Timeout;
// everything else the net stack produces becomes Connection.
func ClassifyTransport(err error, timeout time.Duration) *Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{
			Kind:    KindTimeout,
			Message: fmt.Sprintf("request timed out after %v", timeout),
			Err:     err,
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &Error{
			Kind:    KindTimeout,
			Message: fmt.Sprintf("request timed out after %v", timeout),
			Err:     err,
		}
	}

	return &Error{
		Kind:    KindConnection,
		Message: "network error",
		Err:     err,
	}
}

// extractMessage pulls a human-readable message from a structured error
// body. Preference order: message, error, detail, details. Falls back to
// "HTTP <status> error" when the body carries none of them.
func extractMessage(statusCode int, body []byte) string {
	if len(body) > 0 {
		var payload struct {
			Message string          `json:"message"`
			Error   string          `json:"error"`
			Detail  string          `json:"detail"`
			Details json.RawMessage `json:"details"`
		}
		if err := json.Unmarshal(body, &payload); err == nil {
			switch {
			case payload.Message != "":
				return payload.Message
			case payload.Error != "":
				return payload.Error
			case payload.Detail != "":
				return payload.Detail
			case len(payload.Details) > 0:
				var s string
				if err := json.Unmarshal(payload.Details, &s); err == nil && s != "" {
					return s
				}
				return string(payload.Details)
			}
		}
	}
	return fmt.Sprintf("HTTP %d error", statusCode)
}

// parseRetryAfter reads a Retry-After header given in seconds. HTTP-date
// values are ignored; the backoff schedule applies instead.
func parseRetryAfter(header http.Header) time.Duration {
	v := header.Get("Retry-After")
	if v == "" {
		return 0
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
