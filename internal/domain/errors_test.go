package domain

import (
	"errors"
	"io"
	"testing"
)

func TestValidationError_SingleField(t *testing.T) {
	t.Parallel()

	err := NewValidationError("source", "required")

	if got := err.Error(); got != "validation: source: required" {
		t.Fatalf("unexpected Error(): %q", got)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatal("errors.Is(err, ErrValidation) = false")
	}
}

func TestValidationError_MultipleFields(t *testing.T) {
	t.Parallel()

	err := NewValidationErrors([]FieldError{
		{Field: "source", Message: "required"},
		{Field: "source_record_id", Message: "required"},
	})

	if got := err.Error(); got != "validation: 2 errors" {
		t.Fatalf("unexpected Error(): %q", got)
	}
	if len(err.Errors) != 2 {
		t.Fatalf("expected 2 field errors, got %d", len(err.Errors))
	}
}

func TestTransportError_Unwrap(t *testing.T) {
	t.Parallel()

	err := error(&TransportError{URL: "https://example.org/x", Attempts: 4, Err: io.ErrUnexpectedEOF})

	if !errors.Is(err, ErrTransport) {
		t.Error("errors.Is(err, ErrTransport) = false")
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Error("errors.Is(err, io.ErrUnexpectedEOF) = false")
	}
	want := "transport failure: https://example.org/x after 4 attempts: unexpected EOF"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestSchemaError(t *testing.T) {
	t.Parallel()

	err := SchemaError("panel", "record")
	if !errors.Is(err, ErrSchemaMismatch) {
		t.Fatal("SchemaError should wrap ErrSchemaMismatch")
	}
	if err.Error() != `schema mismatch: key "panel" absent from record` {
		t.Errorf("unexpected Error(): %q", err.Error())
	}
}

func TestSentinelErrors_AreDistinct(t *testing.T) {
	t.Parallel()

	sentinels := []error{
		ErrNotFound, ErrAlreadyExists, ErrValidation,
		ErrSchemaMismatch, ErrMalformedRow, ErrTransport,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel errors %d and %d should not match", i, j)
			}
		}
	}
}
