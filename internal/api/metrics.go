package api

import "time"

// Metrics receives instrumentation events from the transport and the
// polling flows. Implementations must be safe for concurrent use.
type Metrics interface {
	// ObserveRequest records a completed HTTP attempt.
	ObserveRequest(method string, statusCode int, duration time.Duration)
	// IncRetry records a retried attempt.
	IncRetry(method string)
	// IncPoll records one polling cycle of an async operation.
	IncPoll(operation string)
}

// nopMetrics is the default collector; it discards everything.
type nopMetrics struct{}

func (nopMetrics) ObserveRequest(string, int, time.Duration) {}
func (nopMetrics) IncRetry(string)                           {}
func (nopMetrics) IncPoll(string)                            {}
