package fiscaldocs

import (
	"context"

	"github.com/fiscaldocs/client-go/internal/api"
)

// Re-exported lookup types.
type (
	// LegalEntity is the registration data returned by a CNPJ lookup.
	LegalEntity = api.LegalEntity

	// NaturalPerson is the registration data returned by a CPF lookup.
	NaturalPerson = api.NaturalPerson
)

// GetAddress looks up an address by postal code. The number is passed as
// given; no local format validation is performed.
func (c *Client) GetAddress(ctx context.Context, postalCode string) (*Address, error) {
	return c.api.GetAddress(ctx, postalCode)
}

// GetLegalEntity looks up company registration data by CNPJ.
func (c *Client) GetLegalEntity(ctx context.Context, cnpj string) (*LegalEntity, error) {
	return c.api.GetLegalEntity(ctx, cnpj)
}

// GetNaturalPerson looks up personal registration data by CPF.
func (c *Client) GetNaturalPerson(ctx context.Context, cpf string) (*NaturalPerson, error) {
	return c.api.GetNaturalPerson(ctx, cpf)
}
