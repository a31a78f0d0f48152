package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")

	// ErrSchemaMismatch means a declared column or key is absent from the
	// actual header or record. The whole batch is untrustworthy.
	ErrSchemaMismatch = errors.New("schema mismatch")

	// ErrMalformedRow means an input row cannot be parsed (too few columns,
	// continuation without an open record, ...).
	ErrMalformedRow = errors.New("malformed row")

	// ErrTransport means a download or API call failed after all retries.
	ErrTransport = errors.New("transport failure")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// TransportError is returned by the network collaborators once every attempt
// of the retry schedule has failed. It matches ErrTransport and the last
// underlying error.
type TransportError struct {
	URL      string
	Attempts int
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure: %s after %d attempts: %v", e.URL, e.Attempts, e.Err)
}

func (e *TransportError) Unwrap() []error { return []error{ErrTransport, e.Err} }

// SchemaError reports which declared key could not be resolved.
func SchemaError(key, where string) error {
	return fmt.Errorf("%w: key %q absent from %s", ErrSchemaMismatch, key, where)
}
