package fiscaldocs

import (
	"github.com/fiscaldocs/client-go/internal/api"
)

// Error is the single error type surfaced by the SDK. Every failure is one
// of the Kind values below; no raw transport error escapes unclassified.
// Callers can switch on Kind or use errors.Is with the sentinels.
type Error = api.Error

// Kind classifies a failure into one of a closed set of categories.
type Kind = api.Kind

// Error kinds.
const (
	KindValidation        = api.KindValidation
	KindAuthentication    = api.KindAuthentication
	KindNotFound          = api.KindNotFound
	KindConflict          = api.KindConflict
	KindRateLimit         = api.KindRateLimit
	KindServer            = api.KindServer
	KindConnection        = api.KindConnection
	KindTimeout           = api.KindTimeout
	KindConfiguration     = api.KindConfiguration
	KindInvoiceProcessing = api.KindInvoiceProcessing
	KindPollingTimeout    = api.KindPollingTimeout
)

// Sentinel errors for errors.Is() checks.
var (
	// ErrValidation indicates the server rejected the request body (HTTP 400).
	ErrValidation = api.ErrValidation

	// ErrAuthentication indicates the API key is invalid or expired (HTTP 401).
	ErrAuthentication = api.ErrAuthentication

	// ErrNotFound indicates the requested resource does not exist (HTTP 404).
	ErrNotFound = api.ErrNotFound

	// ErrConflict indicates the request conflicts with existing state (HTTP 409).
	ErrConflict = api.ErrConflict

	// ErrRateLimited indicates the API rate limit has been exceeded (HTTP 429).
	ErrRateLimited = api.ErrRateLimited

	// ErrServer indicates a server-side failure (HTTP 5xx).
	ErrServer = api.ErrServer

	// ErrConnection indicates a network-level failure reaching the API.
	ErrConnection = api.ErrConnection

	// ErrTimeout indicates a request exceeded its deadline.
	ErrTimeout = api.ErrTimeout

	// ErrConfiguration indicates the client is misconfigured.
	ErrConfiguration = api.ErrConfiguration

	// ErrInvoiceProcessing indicates the remote side reported a processing
	// failure for a long-running operation.
	ErrInvoiceProcessing = api.ErrInvoiceProcessing

	// ErrPollingTimeout indicates polling gave up before a terminal status
	// was observed. The remote operation may still complete after the
	// client stops waiting; treat this as "unknown", not "failed".
	ErrPollingTimeout = api.ErrPollingTimeout
)
