package fiscaldocs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestUploadCertificate_MultipartForm(t *testing.T) {
	certBytes := []byte{0x30, 0x82, 0x01, 0x0a} // PKCS#12 DER prefix, opaque to the client

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if got := r.URL.Path; got != "/v1/companies/c1/certificates" {
			t.Errorf("path = %s", got)
		}

		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("ParseMultipartForm() error = %v", err)
		}
		if got := r.FormValue("password"); got != "s3cret" {
			t.Errorf("password = %q, want s3cret", got)
		}

		file, _, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("FormFile() error = %v", err)
		}
		defer file.Close()
		data, _ := io.ReadAll(file)
		if string(data) != string(certBytes) {
			t.Errorf("file bytes = %x, want %x", data, certBytes)
		}

		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	if err := client.UploadCertificate(context.Background(), "c1", certBytes, "s3cret"); err != nil {
		t.Fatalf("UploadCertificate() error = %v", err)
	}
}

func TestGetCompany_Envelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"companies":{"id":"c1","name":"ACME Ltda","federalTaxNumber":191}}`)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	company, err := client.GetCompany(context.Background(), "c1")
	if err != nil {
		t.Fatalf("GetCompany() error = %v", err)
	}
	if company.ID != "c1" || company.Name != "ACME Ltda" || company.FederalTaxNumber != 191 {
		t.Errorf("company = %+v", company)
	}
}

func TestListCompanies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"companies":[{"id":"c1"},{"id":"c2"}]}`)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	companies, err := client.ListCompanies(context.Background())
	if err != nil {
		t.Fatalf("ListCompanies() error = %v", err)
	}
	if len(companies) != 2 {
		t.Errorf("len = %d, want 2", len(companies))
	}
}

func TestCreateCompany_SendsEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var envelope map[string]Company
		if err := json.NewDecoder(r.Body).Decode(&envelope); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if envelope["companies"].Name != "ACME Ltda" {
			t.Errorf("request envelope = %+v", envelope)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"companies":{"id":"c1","name":"ACME Ltda"}}`)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	company, err := client.CreateCompany(context.Background(), Company{Name: "ACME Ltda"})
	if err != nil {
		t.Fatalf("CreateCompany() error = %v", err)
	}
	if company.ID != "c1" {
		t.Errorf("company = %+v", company)
	}
}
