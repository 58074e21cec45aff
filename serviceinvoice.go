package fiscaldocs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fiscaldocs/client-go/internal/api"
	"github.com/fiscaldocs/client-go/internal/polling"
)

// Re-exported invoice types.
type (
	// InvoiceStatus is the lifecycle status of a service invoice.
	InvoiceStatus = api.InvoiceStatus

	// InvoiceRequest is the body of a service invoice issuance request.
	InvoiceRequest = api.InvoiceRequest

	// ServiceInvoice is a service invoice record.
	ServiceInvoice = api.ServiceInvoice

	// InvoiceList is a page of service invoices.
	InvoiceList = api.InvoiceList

	// Borrower is the service recipient on an invoice.
	Borrower = api.Borrower
)

// Invoice status values.
const (
	InvoiceStatusNone         = api.InvoiceStatusNone
	InvoiceStatusCreated      = api.InvoiceStatusCreated
	InvoiceStatusIssued       = api.InvoiceStatusIssued
	InvoiceStatusCancelled    = api.InvoiceStatusCancelled
	InvoiceStatusError        = api.InvoiceStatusError
	InvoiceStatusIssueFailed  = api.InvoiceStatusIssueFailed
	InvoiceStatusCancelFailed = api.InvoiceStatusCancelFailed

	InvoiceStatusWaitingCalculateTax = api.InvoiceStatusWaitingCalculateTax
	InvoiceStatusWaitingDefineRps    = api.InvoiceStatusWaitingDefineRps
	InvoiceStatusWaitingSend         = api.InvoiceStatusWaitingSend
	InvoiceStatusWaitingSendCancel   = api.InvoiceStatusWaitingSendCancel
	InvoiceStatusWaitingReturn       = api.InvoiceStatusWaitingReturn
	InvoiceStatusWaitingDownload     = api.InvoiceStatusWaitingDownload
)

// invoiceCollection is the path segment the Location header of an accepted
// submission is parsed against.
const invoiceCollection = "serviceinvoices"

// timeRound keeps elapsed durations in error messages readable.
const timeRound = 10 * time.Millisecond

// IssueInvoice submits a service invoice and waits for issuance to finish.
//
// When the server issues synchronously (201) the invoice is returned
// directly with no further HTTP calls. When the submission is accepted for
// out-of-band processing (202 + Location), IssueInvoice polls the created
// resource until it reaches Issued, a failure status, or the wait budget
// runs out. A polling timeout means the outcome is unknown: the server may
// still issue the invoice after this call returns.
func (c *Client) IssueInvoice(ctx context.Context, companyID string, req InvoiceRequest, opts ...WaitOption) (*ServiceInvoice, error) {
	invoice, accepted, err := c.api.CreateInvoice(ctx, companyID, req)
	if err != nil {
		return nil, err
	}
	if accepted == nil {
		return invoice, nil
	}

	invoiceID, err := api.ParseLocationID(accepted.Location, invoiceCollection)
	if err != nil {
		return nil, err
	}

	return c.waitForInvoice(ctx, companyID, invoiceID, "issue",
		func(s InvoiceStatus) bool { return s == InvoiceStatusIssued },
		func(s InvoiceStatus) bool { return s == InvoiceStatusIssueFailed || s == InvoiceStatusError },
		opts)
}

// CancelInvoice requests cancellation of an issued invoice and waits for
// the cancellation to finish. Like issuance, cancellation may be processed
// out-of-band; the same polling rules apply.
func (c *Client) CancelInvoice(ctx context.Context, companyID, invoiceID string, opts ...WaitOption) (*ServiceInvoice, error) {
	invoice, accepted, err := c.api.CancelInvoice(ctx, companyID, invoiceID)
	if err != nil {
		return nil, err
	}
	if accepted == nil {
		return invoice, nil
	}

	id, err := api.ParseLocationID(accepted.Location, invoiceCollection)
	if err != nil {
		return nil, err
	}

	return c.waitForInvoice(ctx, companyID, id, "cancel",
		func(s InvoiceStatus) bool { return s == InvoiceStatusCancelled },
		func(s InvoiceStatus) bool { return s == InvoiceStatusCancelFailed || s == InvoiceStatusError },
		opts)
}

// GetInvoice retrieves a service invoice by id.
func (c *Client) GetInvoice(ctx context.Context, companyID, invoiceID string) (*ServiceInvoice, error) {
	return c.api.GetInvoice(ctx, companyID, invoiceID)
}

// ListInvoices lists service invoices for a company. pageCount and
// pageIndex may be zero to accept the server defaults.
func (c *Client) ListInvoices(ctx context.Context, companyID string, pageCount, pageIndex int) (*InvoiceList, error) {
	return c.api.ListInvoices(ctx, companyID, pageCount, pageIndex)
}

// DownloadInvoicePDF downloads the invoice's PDF rendering.
func (c *Client) DownloadInvoicePDF(ctx context.Context, companyID, invoiceID string) ([]byte, error) {
	return c.api.GetInvoicePDF(ctx, companyID, invoiceID)
}

// DownloadInvoiceXML downloads the invoice's signed XML document.
func (c *Client) DownloadInvoiceXML(ctx context.Context, companyID, invoiceID string) ([]byte, error) {
	return c.api.GetInvoiceXML(ctx, companyID, invoiceID)
}

// SendInvoiceEmail asks the server to email the invoice to the borrower.
func (c *Client) SendInvoiceEmail(ctx context.Context, companyID, invoiceID string) error {
	return c.api.SendInvoiceEmail(ctx, companyID, invoiceID)
}

// waitForInvoice polls the invoice until done or failed per the given
// status predicates and maps the poll outcome onto the error taxonomy.
func (c *Client) waitForInvoice(ctx context.Context, companyID, invoiceID, operation string, done, failed func(InvoiceStatus) bool, opts []WaitOption) (*ServiceInvoice, error) {
	cfg := &waitConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	logger := c.api.Logger()
	metrics := c.api.Metrics()

	result := polling.Wait(ctx, polling.Spec[*ServiceInvoice]{
		Fetch: func(ctx context.Context) (*ServiceInvoice, error) {
			return c.api.GetInvoice(ctx, companyID, invoiceID)
		},
		Done:   func(inv *ServiceInvoice) bool { return done(inv.Status) },
		Failed: func(inv *ServiceInvoice) bool { return failed(inv.Status) },
		OnPoll: func(attempt int, inv *ServiceInvoice) {
			metrics.IncPoll(operation)
			logger.Debug("polled invoice",
				"operation", operation,
				"invoice_id", invoiceID,
				"attempt", attempt,
				"status", inv.Status)
			if cfg.onPoll != nil {
				cfg.onPoll(attempt, inv)
			}
		},
		InitialDelay:  cfg.initialDelay,
		MaxDelay:      cfg.maxDelay,
		BackoffFactor: cfg.backoffFactor,
		Timeout:       cfg.timeout,
		MaxAttempts:   cfg.maxAttempts,
	})

	switch result.Outcome {
	case polling.OutcomeCompleted:
		return result.Value, nil

	case polling.OutcomeFailed:
		if result.Err != nil {
			var apiErr *Error
			if errors.As(result.Err, &apiErr) {
				return nil, apiErr
			}
			// Caller cancellation mid-poll; still classified.
			return nil, &Error{
				Kind:     KindTimeout,
				Message:  fmt.Sprintf("invoice %s gave up after %d polls over %v", operation, result.Attempts, result.Elapsed.Round(timeRound)),
				Attempts: result.Attempts,
				Elapsed:  result.Elapsed,
				Err:      result.Err,
			}
		}
		return nil, &Error{
			Kind: KindInvoiceProcessing,
			Message: fmt.Sprintf("invoice %s failed with status %s: %s",
				operation, result.Value.Status, flowMessage(result.Value)),
			Attempts: result.Attempts,
			Elapsed:  result.Elapsed,
		}

	default:
		// Unknown, possibly still processing on the server side.
		return nil, &Error{
			Kind: KindPollingTimeout,
			Message: fmt.Sprintf("invoice %s still pending after %d polls over %v; the operation may still complete",
				operation, result.Attempts, result.Elapsed.Round(timeRound)),
			Attempts: result.Attempts,
			Elapsed:  result.Elapsed,
		}
	}
}

func flowMessage(inv *ServiceInvoice) string {
	if inv.FlowMessage != "" {
		return inv.FlowMessage
	}
	return "no flow message reported"
}
