// Package api implements the HTTP transport for the fiscal-document API:
// request execution with per-attempt timeouts, content-type driven response
// parsing, classification of every failure into a closed error taxonomy,
// and retry of transient failures with exponential backoff and jitter.
package api
