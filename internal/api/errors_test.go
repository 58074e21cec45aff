package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"
)

func TestClassify_StatusKinds(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		kind       Kind
		sentinel   error
	}{
		{"bad request", 400, KindValidation, ErrValidation},
		{"unauthorized", 401, KindAuthentication, ErrAuthentication},
		{"not found", 404, KindNotFound, ErrNotFound},
		{"conflict", 409, KindConflict, ErrConflict},
		{"rate limited", 429, KindRateLimit, ErrRateLimited},
		{"internal error", 500, KindServer, ErrServer},
		{"bad gateway", 502, KindServer, ErrServer},
		{"unclassified 418", 418, KindServer, ErrServer},
		{"unclassified 451", 451, KindServer, ErrServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Classify(tt.statusCode, http.Header{}, nil)
			if err.Kind != tt.kind {
				t.Errorf("Kind = %s, want %s", err.Kind, tt.kind)
			}
			if err.StatusCode != tt.statusCode {
				t.Errorf("StatusCode = %d, want %d", err.StatusCode, tt.statusCode)
			}
			if !errors.Is(err, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false, want true", err, tt.sentinel)
			}
		})
	}
}

func TestClassify_MessageExtraction(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"message field", `{"message":"invalid borrower"}`, "invalid borrower"},
		{"error field", `{"error":"broken"}`, "broken"},
		{"detail field", `{"detail":"missing tax number"}`, "missing tax number"},
		{"details string field", `{"details":"bad address"}`, "bad address"},
		{"message wins over error", `{"message":"first","error":"second"}`, "first"},
		{"error wins over detail", `{"error":"second","detail":"third"}`, "second"},
		{"empty body", ``, "HTTP 400 error"},
		{"non-json body", `<html>oops</html>`, "HTTP 400 error"},
		{"json without known fields", `{"code":42}`, "HTTP 400 error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Classify(400, http.Header{}, []byte(tt.body))
			if err.Message != tt.want {
				t.Errorf("Message = %q, want %q", err.Message, tt.want)
			}
		})
	}
}

func TestClassify_RetryAfter(t *testing.T) {
	header := http.Header{}
	header.Set("Retry-After", "2")

	err := Classify(429, header, nil)
	if err.RetryAfter != 2*time.Second {
		t.Errorf("RetryAfter = %v, want 2s", err.RetryAfter)
	}

	err = Classify(429, http.Header{}, nil)
	if err.RetryAfter != 0 {
		t.Errorf("RetryAfter = %v, want 0 when header absent", err.RetryAfter)
	}

	header = http.Header{}
	header.Set("Retry-After", "Wed, 21 Oct 2026 07:28:00 GMT")
	err = Classify(429, header, nil)
	if err.RetryAfter != 0 {
		t.Errorf("RetryAfter = %v, want 0 for HTTP-date values", err.RetryAfter)
	}
}

func TestClassify_PreservesBody(t *testing.T) {
	body := []byte(`{"message":"nope","field":"borrower"}`)
	err := Classify(400, http.Header{}, body)
	if string(err.Body) != string(body) {
		t.Errorf("Body = %q, want %q", err.Body, body)
	}
}

func TestClassifyTransport_DeadlineIsTimeout(t *testing.T) {
	err := ClassifyTransport(context.DeadlineExceeded, 5*time.Second)
	if err.Kind != KindTimeout {
		t.Errorf("Kind = %s, want %s", err.Kind, KindTimeout)
	}
	if !errors.Is(err, ErrTimeout) {
		t.Error("expected errors.Is(err, ErrTimeout)")
	}
	if got := err.Error(); !strings.Contains(got, "5s") {
		t.Errorf("message %q should name the configured timeout", got)
	}
}

type fakeNetErr struct{ timeout bool }

func (e *fakeNetErr) Error() string   { return "fake net error" }
func (e *fakeNetErr) Timeout() bool   { return e.timeout }
func (e *fakeNetErr) Temporary() bool { return false }

func TestClassifyTransport_NetTimeout(t *testing.T) {
	var _ net.Error = &fakeNetErr{}

	err := ClassifyTransport(&fakeNetErr{timeout: true}, time.Second)
	if err.Kind != KindTimeout {
		t.Errorf("Kind = %s, want %s", err.Kind, KindTimeout)
	}
}

func TestClassifyTransport_ConnectionRefused(t *testing.T) {
	err := ClassifyTransport(errors.New("dial tcp: connection refused"), time.Second)
	if err.Kind != KindConnection {
		t.Errorf("Kind = %s, want %s", err.Kind, KindConnection)
	}
	if !errors.Is(err, ErrConnection) {
		t.Error("expected errors.Is(err, ErrConnection)")
	}
}

func TestKind_Retryable(t *testing.T) {
	retryable := []Kind{KindRateLimit, KindServer, KindConnection, KindTimeout}
	for _, k := range retryable {
		if !k.Retryable() {
			t.Errorf("%s.Retryable() = false, want true", k)
		}
	}

	permanent := []Kind{
		KindValidation, KindAuthentication, KindNotFound, KindConflict,
		KindConfiguration, KindInvoiceProcessing, KindPollingTimeout,
	}
	for _, k := range permanent {
		if k.Retryable() {
			t.Errorf("%s.Retryable() = true, want false", k)
		}
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &Error{Kind: KindConnection, Message: "network error", Err: cause}
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to reach the cause")
	}
}
