package fiscaldocs

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
)

func TestIssueInvoiceBatch_ResultsInInputOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req InvoiceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		// Echo the external id so each result is attributable.
		writeInvoice(w, http.StatusCreated, ServiceInvoice{
			ID:     req.ExternalID,
			Status: InvoiceStatusIssued,
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	reqs := []InvoiceRequest{
		{ExternalID: "a"},
		{ExternalID: "b"},
		{ExternalID: "c"},
	}
	results := client.IssueInvoiceBatch(context.Background(), "c1", reqs, 2)

	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}
	for i, want := range []string{"a", "b", "c"} {
		r := results[i]
		if r.Index != i || r.Err != nil || r.Invoice == nil || r.Invoice.ID != want {
			t.Errorf("results[%d] = %+v, want invoice %q", i, r, want)
		}
	}
}

func TestIssueInvoiceBatch_OneFailureDoesNotStopOthers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req InvoiceRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.ExternalID == "bad" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		writeInvoice(w, http.StatusCreated, ServiceInvoice{ID: req.ExternalID, Status: InvoiceStatusIssued})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	reqs := []InvoiceRequest{
		{ExternalID: "good1"},
		{ExternalID: "bad"},
		{ExternalID: "good2"},
	}
	results := client.IssueInvoiceBatch(context.Background(), "c1", reqs, 3)

	if results[0].Err != nil || results[2].Err != nil {
		t.Errorf("good submissions failed: %+v", results)
	}
	if !errors.Is(results[1].Err, ErrValidation) {
		t.Errorf("results[1].Err = %v, want ErrValidation", results[1].Err)
	}
}

func TestIssueInvoiceBatch_BoundedConcurrency(t *testing.T) {
	var inFlight, peak atomic.Int32
	var mu sync.Mutex

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := inFlight.Add(1)
		mu.Lock()
		if n > peak.Load() {
			peak.Store(n)
		}
		mu.Unlock()
		defer inFlight.Add(-1)

		writeInvoice(w, http.StatusCreated, ServiceInvoice{ID: "x", Status: InvoiceStatusIssued})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	reqs := make([]InvoiceRequest, 12)
	client.IssueInvoiceBatch(context.Background(), "c1", reqs, 2)

	if got := peak.Load(); got > 2 {
		t.Errorf("peak in-flight = %d, want <= 2", got)
	}
}

func TestIssueInvoiceBatch_DefaultConcurrency(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeInvoice(w, http.StatusCreated, ServiceInvoice{ID: "x", Status: InvoiceStatusIssued})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	results := client.IssueInvoiceBatch(context.Background(), "c1", make([]InvoiceRequest, 3), 0)
	for i, r := range results {
		if r.Err != nil {
			t.Errorf("results[%d].Err = %v", i, r.Err)
		}
	}
}
