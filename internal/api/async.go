package api

import (
	"fmt"
	"net/http"
	"strings"
)

// Accepted is the sentinel result for a 202 response. The server accepted
// the request but processes it out-of-band; Location points at the resource
// to poll for completion.
type Accepted struct {
	StatusCode int
	Status     string
	Location   string
}

// acceptedSentinel turns a 202 response into the Accepted sentinel. A 202
// without a Location header violates the API contract and is surfaced as a
// processing error rather than silently accepted.
func acceptedSentinel(resp *response) (*Accepted, error) {
	location := resp.header.Get("Location")
	if location == "" {
		return nil, &Error{
			Kind:       KindInvoiceProcessing,
			Message:    "accepted response is missing the Location header",
			StatusCode: http.StatusAccepted,
			Body:       resp.body,
		}
	}
	return &Accepted{
		StatusCode: http.StatusAccepted,
		Status:     "pending",
		Location:   location,
	}, nil
}

// ParseLocationID extracts the resource identifier that follows the given
// collection segment in a Location URL, e.g. the id after "serviceinvoices"
// in ".../companies/x/serviceinvoices/abc123". An unparseable Location is a
// contract violation and yields a processing error, never an empty id.
func ParseLocationID(location, collection string) (string, error) {
	trimmed := location
	if i := strings.IndexAny(trimmed, "?#"); i >= 0 {
		trimmed = trimmed[:i]
	}

	segments := strings.Split(strings.Trim(trimmed, "/"), "/")
	for i, seg := range segments {
		if strings.EqualFold(seg, collection) && i+1 < len(segments) && segments[i+1] != "" {
			return segments[i+1], nil
		}
	}

	return "", &Error{
		Kind:    KindInvoiceProcessing,
		Message: fmt.Sprintf("could not derive %s id from Location %q", collection, location),
	}
}
