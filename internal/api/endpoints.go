package api

import (
	"context"
	"fmt"
	"net/url"
)

// Wire envelopes used by the company endpoints. The API nests both single
// records and collections under a "companies" key.
type companyEnvelope struct {
	Company Company `json:"companies"`
}

type companyListEnvelope struct {
	Companies []Company `json:"companies"`
}

// InvoiceList is a page of service invoices.
type InvoiceList struct {
	TotalResults int              `json:"totalResults"`
	TotalPages   int              `json:"totalPages"`
	PageIndex    int              `json:"pageIndex"`
	Invoices     []ServiceInvoice `json:"serviceInvoices"`
}

// ListCompanies lists all companies for the account.
func (c *Client) ListCompanies(ctx context.Context) ([]Company, error) {
	var result companyListEnvelope
	if _, err := c.Do(ctx, "GET", "/v1/companies", nil, &result); err != nil {
		return nil, err
	}
	return result.Companies, nil
}

// GetCompany retrieves a company by id.
func (c *Client) GetCompany(ctx context.Context, companyID string) (*Company, error) {
	path := fmt.Sprintf("/v1/companies/%s", url.PathEscape(companyID))
	var result companyEnvelope
	if _, err := c.Do(ctx, "GET", path, nil, &result); err != nil {
		return nil, err
	}
	return &result.Company, nil
}

// CreateCompany registers a new company.
func (c *Client) CreateCompany(ctx context.Context, company Company) (*Company, error) {
	var result companyEnvelope
	if _, err := c.Do(ctx, "POST", "/v1/companies", companyEnvelope{Company: company}, &result); err != nil {
		return nil, err
	}
	return &result.Company, nil
}

// UpdateCompany updates an existing company.
func (c *Client) UpdateCompany(ctx context.Context, companyID string, company Company) (*Company, error) {
	path := fmt.Sprintf("/v1/companies/%s", url.PathEscape(companyID))
	var result companyEnvelope
	if _, err := c.Do(ctx, "PUT", path, companyEnvelope{Company: company}, &result); err != nil {
		return nil, err
	}
	return &result.Company, nil
}

// DeleteCompany deletes a company.
func (c *Client) DeleteCompany(ctx context.Context, companyID string) error {
	path := fmt.Sprintf("/v1/companies/%s", url.PathEscape(companyID))
	_, err := c.Do(ctx, "DELETE", path, nil, nil)
	return err
}

// UploadCertificate uploads a company's digital certificate as a multipart
// form (certificate bytes plus password field). The form's own Content-Type
// is preserved; the certificate contents are opaque to the client.
func (c *Client) UploadCertificate(ctx context.Context, companyID string, form *FormPayload) error {
	path := fmt.Sprintf("/v1/companies/%s/certificates", url.PathEscape(companyID))
	_, err := c.Do(ctx, "POST", path, form, nil)
	return err
}

// CreateInvoice submits a service invoice for issuance. The server either
// issues synchronously (201 with the invoice body) or enqueues the request
// (202 with a Location header), in which case the returned *Accepted is
// non-nil and the invoice is nil.
func (c *Client) CreateInvoice(ctx context.Context, companyID string, req InvoiceRequest) (*ServiceInvoice, *Accepted, error) {
	path := fmt.Sprintf("/v1/companies/%s/serviceinvoices", url.PathEscape(companyID))
	var result ServiceInvoice
	accepted, err := c.Do(ctx, "POST", path, req, &result)
	if err != nil {
		return nil, nil, err
	}
	if accepted != nil {
		return nil, accepted, nil
	}
	return &result, nil, nil
}

// GetInvoice retrieves a service invoice by id.
func (c *Client) GetInvoice(ctx context.Context, companyID, invoiceID string) (*ServiceInvoice, error) {
	path := fmt.Sprintf("/v1/companies/%s/serviceinvoices/%s",
		url.PathEscape(companyID), url.PathEscape(invoiceID))
	var result ServiceInvoice
	if _, err := c.Do(ctx, "GET", path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListInvoices lists service invoices for a company, paged.
func (c *Client) ListInvoices(ctx context.Context, companyID string, pageCount, pageIndex int) (*InvoiceList, error) {
	q := url.Values{}
	if pageCount > 0 {
		q.Set("pageCount", fmt.Sprint(pageCount))
	}
	if pageIndex > 0 {
		q.Set("pageIndex", fmt.Sprint(pageIndex))
	}
	path := fmt.Sprintf("/v1/companies/%s/serviceinvoices", url.PathEscape(companyID))
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var result InvoiceList
	if _, err := c.Do(ctx, "GET", path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CancelInvoice requests cancellation of an issued invoice. Like issuance,
// cancellation may be processed out-of-band (202 + Location).
func (c *Client) CancelInvoice(ctx context.Context, companyID, invoiceID string) (*ServiceInvoice, *Accepted, error) {
	path := fmt.Sprintf("/v1/companies/%s/serviceinvoices/%s",
		url.PathEscape(companyID), url.PathEscape(invoiceID))
	var result ServiceInvoice
	accepted, err := c.Do(ctx, "DELETE", path, nil, &result)
	if err != nil {
		return nil, nil, err
	}
	if accepted != nil {
		return nil, accepted, nil
	}
	return &result, nil, nil
}

// SendInvoiceEmail asks the server to email the invoice to the borrower.
func (c *Client) SendInvoiceEmail(ctx context.Context, companyID, invoiceID string) error {
	path := fmt.Sprintf("/v1/companies/%s/serviceinvoices/%s/sendemail",
		url.PathEscape(companyID), url.PathEscape(invoiceID))
	_, err := c.Do(ctx, "PUT", path, nil, nil)
	return err
}

// GetInvoicePDF downloads the invoice's PDF rendering.
func (c *Client) GetInvoicePDF(ctx context.Context, companyID, invoiceID string) ([]byte, error) {
	path := fmt.Sprintf("/v1/companies/%s/serviceinvoices/%s/pdf",
		url.PathEscape(companyID), url.PathEscape(invoiceID))
	data, _, err := c.Download(ctx, "GET", path)
	return data, err
}

// GetInvoiceXML downloads the invoice's signed XML document.
func (c *Client) GetInvoiceXML(ctx context.Context, companyID, invoiceID string) ([]byte, error) {
	path := fmt.Sprintf("/v1/companies/%s/serviceinvoices/%s/xml",
		url.PathEscape(companyID), url.PathEscape(invoiceID))
	data, _, err := c.Download(ctx, "GET", path)
	return data, err
}

// ListWebhooks lists webhook subscriptions.
func (c *Client) ListWebhooks(ctx context.Context) ([]Webhook, error) {
	var result struct {
		Hooks []Webhook `json:"hooks"`
	}
	if _, err := c.Do(ctx, "GET", "/v1/hooks", nil, &result); err != nil {
		return nil, err
	}
	return result.Hooks, nil
}

// GetWebhook retrieves a webhook subscription by id.
func (c *Client) GetWebhook(ctx context.Context, webhookID string) (*Webhook, error) {
	path := fmt.Sprintf("/v1/hooks/%s", url.PathEscape(webhookID))
	var result Webhook
	if _, err := c.Do(ctx, "GET", path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateWebhook registers a webhook subscription.
func (c *Client) CreateWebhook(ctx context.Context, hook Webhook) (*Webhook, error) {
	var result Webhook
	if _, err := c.Do(ctx, "POST", "/v1/hooks", hook, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteWebhook removes a webhook subscription.
func (c *Client) DeleteWebhook(ctx context.Context, webhookID string) error {
	path := fmt.Sprintf("/v1/hooks/%s", url.PathEscape(webhookID))
	_, err := c.Do(ctx, "DELETE", path, nil, nil)
	return err
}

// GetAddress looks up an address by postal code.
func (c *Client) GetAddress(ctx context.Context, postalCode string) (*Address, error) {
	path := fmt.Sprintf("/v2/addresses/%s", url.PathEscape(postalCode))
	var result Address
	if _, err := c.Do(ctx, "GET", path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetLegalEntity looks up company registration data by CNPJ.
func (c *Client) GetLegalEntity(ctx context.Context, cnpj string) (*LegalEntity, error) {
	path := fmt.Sprintf("/v2/legalentities/basicinfo/%s", url.PathEscape(cnpj))
	var result LegalEntity
	if _, err := c.Do(ctx, "GET", path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetNaturalPerson looks up personal registration data by CPF.
func (c *Client) GetNaturalPerson(ctx context.Context, cpf string) (*NaturalPerson, error) {
	path := fmt.Sprintf("/v2/naturalpeople/status/%s", url.PathEscape(cpf))
	var result NaturalPerson
	if _, err := c.Do(ctx, "GET", path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
