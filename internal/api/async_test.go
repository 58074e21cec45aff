package api

import (
	"errors"
	"testing"
)

func TestParseLocationID(t *testing.T) {
	tests := []struct {
		name     string
		location string
		want     string
	}{
		{
			"absolute URL",
			"https://api.example.com/v1/companies/abc/serviceinvoices/inv123",
			"inv123",
		},
		{
			"relative path",
			"/v1/companies/abc/serviceinvoices/inv123",
			"inv123",
		},
		{
			"trailing slash",
			"/v1/companies/abc/serviceinvoices/inv123/",
			"inv123",
		},
		{
			"query string ignored",
			"/v1/companies/abc/serviceinvoices/inv123?expand=true",
			"inv123",
		},
		{
			"case-insensitive collection match",
			"/v1/companies/abc/ServiceInvoices/inv123",
			"inv123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLocationID(tt.location, "serviceinvoices")
			if err != nil {
				t.Fatalf("ParseLocationID() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseLocationID() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseLocationID_Unparseable(t *testing.T) {
	tests := []struct {
		name     string
		location string
	}{
		{"empty location", ""},
		{"collection absent", "/v1/companies/abc"},
		{"collection is last segment", "/v1/companies/abc/serviceinvoices"},
		{"collection with trailing slash only", "/v1/companies/abc/serviceinvoices/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLocationID(tt.location, "serviceinvoices")
			if err == nil {
				t.Fatal("expected error for unparseable Location")
			}
			var apiErr *Error
			if !errors.As(err, &apiErr) || apiErr.Kind != KindInvoiceProcessing {
				t.Errorf("error = %v, want invoice_processing kind", err)
			}
		})
	}
}
