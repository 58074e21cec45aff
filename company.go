package fiscaldocs

import (
	"bytes"
	"context"
	"mime/multipart"

	"github.com/fiscaldocs/client-go/internal/api"
)

// Re-exported company types.
type (
	// Company is a company record.
	Company = api.Company

	// CertificateInfo is the metadata the server reports for a company's
	// digital certificate.
	CertificateInfo = api.CertificateInfo

	// Address is a Brazilian postal address.
	Address = api.Address

	// City identifies a municipality by IBGE code.
	City = api.City
)

// ListCompanies lists all companies for the account.
func (c *Client) ListCompanies(ctx context.Context) ([]Company, error) {
	return c.api.ListCompanies(ctx)
}

// GetCompany retrieves a company by id.
func (c *Client) GetCompany(ctx context.Context, companyID string) (*Company, error) {
	return c.api.GetCompany(ctx, companyID)
}

// CreateCompany registers a new company.
func (c *Client) CreateCompany(ctx context.Context, company Company) (*Company, error) {
	return c.api.CreateCompany(ctx, company)
}

// UpdateCompany updates an existing company.
func (c *Client) UpdateCompany(ctx context.Context, companyID string, company Company) (*Company, error) {
	return c.api.UpdateCompany(ctx, companyID, company)
}

// DeleteCompany deletes a company.
func (c *Client) DeleteCompany(ctx context.Context, companyID string) error {
	return c.api.DeleteCompany(ctx, companyID)
}

// UploadCertificate uploads a company's digital certificate (PKCS#12
// bytes) and its password. The certificate is opaque to the SDK: it is
// sent as a multipart form and parsed server-side. Certificate metadata
// appears on the Company record once the server has processed it.
func (c *Client) UploadCertificate(ctx context.Context, companyID string, certificate []byte, password string) error {
	form, err := certificateForm(certificate, password)
	if err != nil {
		return err
	}
	return c.api.UploadCertificate(ctx, companyID, form)
}

// certificateForm builds the multipart body for a certificate upload. The
// multipart writer's own Content-Type (with boundary) travels with the
// payload; the transport never overrides it.
func certificateForm(certificate []byte, password string) (*api.FormPayload, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", "certificate.pfx")
	if err != nil {
		return nil, &Error{Kind: KindConfiguration, Message: "failed to build certificate form", Err: err}
	}
	if _, err := part.Write(certificate); err != nil {
		return nil, &Error{Kind: KindConfiguration, Message: "failed to build certificate form", Err: err}
	}
	if err := w.WriteField("password", password); err != nil {
		return nil, &Error{Kind: KindConfiguration, Message: "failed to build certificate form", Err: err}
	}
	if err := w.Close(); err != nil {
		return nil, &Error{Kind: KindConfiguration, Message: "failed to build certificate form", Err: err}
	}

	return &api.FormPayload{
		Body:        buf.Bytes(),
		ContentType: w.FormDataContentType(),
	}, nil
}
