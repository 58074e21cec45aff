package api

import "time"

// InvoiceStatus is the lifecycle status of a service invoice as reported by
// the API. Issued, Cancelled, IssueFailed, CancelFailed and Error are
// terminal; the Waiting* values are intermediate processing states.
type InvoiceStatus string

const (
	InvoiceStatusNone                InvoiceStatus = "None"
	InvoiceStatusCreated             InvoiceStatus = "Created"
	InvoiceStatusIssued              InvoiceStatus = "Issued"
	InvoiceStatusCancelled           InvoiceStatus = "Cancelled"
	InvoiceStatusError               InvoiceStatus = "Error"
	InvoiceStatusIssueFailed         InvoiceStatus = "IssueFailed"
	InvoiceStatusCancelFailed        InvoiceStatus = "CancelFailed"
	InvoiceStatusWaitingCalculateTax InvoiceStatus = "WaitingCalculateTaxes"
	InvoiceStatusWaitingDefineRps    InvoiceStatus = "WaitingDefineRpsNumber"
	InvoiceStatusWaitingSend         InvoiceStatus = "WaitingSend"
	InvoiceStatusWaitingSendCancel   InvoiceStatus = "WaitingSendCancel"
	InvoiceStatusWaitingReturn       InvoiceStatus = "WaitingReturn"
	InvoiceStatusWaitingDownload     InvoiceStatus = "WaitingDownload"
)

// City identifies a Brazilian municipality by IBGE code.
type City struct {
	Code string `json:"code,omitempty"`
	Name string `json:"name,omitempty"`
}

// Address is a Brazilian postal address.
type Address struct {
	Country               string `json:"country,omitempty"`
	PostalCode            string `json:"postalCode,omitempty"`
	Street                string `json:"street,omitempty"`
	Number                string `json:"number,omitempty"`
	AdditionalInformation string `json:"additionalInformation,omitempty"`
	District              string `json:"district,omitempty"`
	City                  City   `json:"city,omitempty"`
	State                 string `json:"state,omitempty"`
}

// Borrower is the service recipient on an invoice.
type Borrower struct {
	Name               string  `json:"name"`
	Email              string  `json:"email,omitempty"`
	FederalTaxNumber   int64   `json:"federalTaxNumber,omitempty"`
	MunicipalTaxNumber string  `json:"municipalTaxNumber,omitempty"`
	Address            Address `json:"address,omitempty"`
}

// InvoiceRequest is the body of a service invoice issuance request.
type InvoiceRequest struct {
	Borrower        Borrower `json:"borrower"`
	CityServiceCode string   `json:"cityServiceCode"`
	Description     string   `json:"description"`
	ServicesAmount  float64  `json:"servicesAmount"`
	RpsSerialNumber string   `json:"rpsSerialNumber,omitempty"`
	IssuedOn        string   `json:"issuedOn,omitempty"`
	ExternalID      string   `json:"externalId,omitempty"`
}

// ServiceInvoice is a service invoice record.
type ServiceInvoice struct {
	ID              string        `json:"id"`
	Status          InvoiceStatus `json:"status"`
	FlowStatus      string        `json:"flowStatus,omitempty"`
	FlowMessage     string        `json:"flowMessage,omitempty"`
	Number          int64         `json:"number,omitempty"`
	RpsNumber       int64         `json:"rpsNumber,omitempty"`
	Borrower        Borrower      `json:"borrower,omitempty"`
	CityServiceCode string        `json:"cityServiceCode,omitempty"`
	Description     string        `json:"description,omitempty"`
	ServicesAmount  float64       `json:"servicesAmount,omitempty"`
	TaxesAmount     float64       `json:"taxesAmount,omitempty"`
	IssuedOn        time.Time     `json:"issuedOn,omitzero"`
	CreatedOn       time.Time     `json:"createdOn,omitzero"`
	ModifiedOn      time.Time     `json:"modifiedOn,omitzero"`
}

// CertificateInfo describes the digital certificate registered for a
// company. The certificate itself is opaque to this client; only metadata
// reported by the server is exposed.
type CertificateInfo struct {
	Thumbprint string    `json:"thumbprint,omitempty"`
	ExpiresOn  time.Time `json:"expiresOn,omitzero"`
	ModifiedOn time.Time `json:"modifiedOn,omitzero"`
	Status     string    `json:"status,omitempty"`
}

// Company is a company record.
type Company struct {
	ID                 string           `json:"id"`
	Name               string           `json:"name"`
	TradeName          string           `json:"tradeName,omitempty"`
	FederalTaxNumber   int64            `json:"federalTaxNumber"`
	MunicipalTaxNumber string           `json:"municipalTaxNumber,omitempty"`
	Email              string           `json:"email,omitempty"`
	Address            Address          `json:"address,omitempty"`
	TaxRegime          string           `json:"taxRegime,omitempty"`
	SpecialTaxRegime   string           `json:"specialTaxRegime,omitempty"`
	LegalNature        string           `json:"legalNature,omitempty"`
	FiscalStatus       string           `json:"fiscalStatus,omitempty"`
	Certificate        *CertificateInfo `json:"certificate,omitempty"`
	CreatedOn          time.Time        `json:"createdOn,omitzero"`
	ModifiedOn         time.Time        `json:"modifiedOn,omitzero"`
}

// Webhook is a webhook subscription record.
type Webhook struct {
	ID          string   `json:"id"`
	URL         string   `json:"url"`
	ContentType string   `json:"contentType,omitempty"`
	Secret      string   `json:"secret,omitempty"`
	Events      []string `json:"events,omitempty"`
	Status      string   `json:"status,omitempty"`
}

// LegalEntity is the registration data returned by a CNPJ lookup.
type LegalEntity struct {
	Name             string    `json:"name"`
	TradeName        string    `json:"tradeName,omitempty"`
	FederalTaxNumber int64     `json:"federalTaxNumber"`
	TaxRegime        string    `json:"taxRegime,omitempty"`
	LegalNature      string    `json:"legalNature,omitempty"`
	Address          Address   `json:"address,omitempty"`
	OpenedOn         time.Time `json:"openedOn,omitzero"`
	Status           string    `json:"status,omitempty"`
}

// NaturalPerson is the registration data returned by a CPF lookup.
type NaturalPerson struct {
	Name             string    `json:"name"`
	FederalTaxNumber int64     `json:"federalTaxNumber"`
	BirthOn          time.Time `json:"birthOn,omitzero"`
	Status           string    `json:"status,omitempty"`
}
