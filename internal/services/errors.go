// internal/services/errors.go
package services

import "errors"

var (
	// ErrMissingIdentifier is returned when a lookup is requested without a public identifier.
	ErrMissingIdentifier = errors.New("missing identifier")
	// ErrRecordNotFound means the public view holds no row for the identifier.
	ErrRecordNotFound = errors.New("product not found")
	// ErrLookupFailed covers every other lookup failure (database, malformed row).
	ErrLookupFailed = errors.New("product lookup failed")
	// ErrDocumentUnavailable means the requested document was never issued for the product.
	ErrDocumentUnavailable = errors.New("document not available")
	// ErrDocumentFetchFailed means the document could not be streamed to the client.
	ErrDocumentFetchFailed = errors.New("document fetch failed")
)
