// Package fiscaldocs provides a Go client SDK for a fiscal-document API:
// company records, service invoice issuance and cancellation, digital
// certificate uploads, webhooks, and registration lookups.
//
// Invoice issuance is asynchronous on the server side: a submission either
// returns the issued invoice immediately or is accepted for out-of-band
// processing, in which case the client polls until a terminal status is
// reached. Transient transport failures are retried with exponential
// backoff; every error surfaced by the SDK is classified into a fixed set
// of kinds checkable with errors.Is.
//
// Basic usage:
//
//	client, err := fiscaldocs.New("your-api-key")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	invoice, err := client.IssueInvoice(ctx, companyID, fiscaldocs.InvoiceRequest{
//	    Borrower:        fiscaldocs.Borrower{Name: "ACME Ltda", FederalTaxNumber: 191},
//	    CityServiceCode: "2690",
//	    Description:     "Consulting services",
//	    ServicesAmount:  1500,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Issued invoice:", invoice.Number)
package fiscaldocs
