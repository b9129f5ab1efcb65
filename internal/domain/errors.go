package domain

import "errors"

// Domain errors. The auth and PDF-source messages are client-facing and keep
// their presentation casing.
var (
	ErrMissingAPIKey   = errors.New("API key is missing")
	ErrInvalidAPIKey   = errors.New("Invalid API key")
	ErrNoPDFSource     = errors.New("Either a PDF URL or file upload must be provided")
	ErrEmptyInputs     = errors.New("inputs cannot be empty")
	ErrNoMessages      = errors.New("messages cannot be empty")
	ErrExamplesNoModel = errors.New("examples require a response_schema")
)
