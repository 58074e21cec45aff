package fiscaldocs

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// DefaultBatchConcurrency bounds how many issuances run at once when the
// caller does not choose.
const DefaultBatchConcurrency = 4

// BatchResult is the outcome of one submission in a batch. Exactly one of
// Invoice and Err is set.
type BatchResult struct {
	Index   int
	Invoice *ServiceInvoice
	Err     error
}

// IssueInvoiceBatch submits several invoices for the same company, at most
// concurrency at a time. Each submission runs its own independent
// submit-then-poll sequence; one failing does not stop the others. Results
// are returned in input order.
//
// Ordering between submissions is not guaranteed, only that each
// submission polls strictly after its own submit.
func (c *Client) IssueInvoiceBatch(ctx context.Context, companyID string, reqs []InvoiceRequest, concurrency int, opts ...WaitOption) []BatchResult {
	if concurrency <= 0 {
		concurrency = DefaultBatchConcurrency
	}

	results := make([]BatchResult, len(reqs))

	var g errgroup.Group
	g.SetLimit(concurrency)

	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			invoice, err := c.IssueInvoice(ctx, companyID, req, opts...)
			results[i] = BatchResult{Index: i, Invoice: invoice, Err: err}
			return nil
		})
	}

	// Goroutines report per-item errors through results, never through the
	// group.
	_ = g.Wait()

	return results
}
