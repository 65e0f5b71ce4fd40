package domain

import "errors"

var (
	// ErrMissingCredential means no extraction API key is configured.
	ErrMissingCredential = errors.New("extraction API key not configured")

	// ErrExtractionFailed covers transport failures and empty model output.
	ErrExtractionFailed = errors.New("document extraction failed")

	// ErrMalformedResponse means the model output is not a decodable well record.
	ErrMalformedResponse = errors.New("invalid extraction response")

	// ErrInvalidRecord means a decoded record breaks a well data invariant.
	ErrInvalidRecord = errors.New("invalid well record")

	// ErrDuplicateWell means a record with the same name is already stored.
	ErrDuplicateWell = errors.New("well already exists")

	// ErrUnsupportedMedia means the upload is not a PDF.
	ErrUnsupportedMedia = errors.New("unsupported media type")

	// ErrWellNotFound means no record has the requested name.
	ErrWellNotFound = errors.New("well not found")
)
