package domain

import "context"

// Extractor turns an uploaded document into a well record.
type Extractor interface {
	// Extract returns the record described by doc. Errors wrap one of
	// ErrMissingCredential, ErrExtractionFailed or ErrMalformedResponse.
	Extract(ctx context.Context, doc Document) (WellRecord, error)

	// Source names the extractor in logs, metrics and published headers.
	Source() string
}
