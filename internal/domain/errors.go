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
	ErrConflict      = errors.New("conflict")

	// ErrUnknownSeed marks a seed name missing from the catalog.
	ErrUnknownSeed = errors.New("unknown seed")
	// ErrImport marks a store failure while importing a seed.
	ErrImport = errors.New("import failed")
	// ErrStoreFetch marks a failed lookup on the phrasebook paths.
	ErrStoreFetch = errors.New("store fetch failed")
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

// UnknownSeedError is returned when a seed name is not in the catalog.
// It is a configuration error and is never retried.
type UnknownSeedError struct {
	Name string
}

func (e *UnknownSeedError) Error() string {
	return fmt.Sprintf("unknown seed %q", e.Name)
}

func (e *UnknownSeedError) Unwrap() error { return ErrUnknownSeed }

// ImportError wraps a store failure that aborted a seed import.
// Both ErrImport and the underlying cause match with errors.Is.
type ImportError struct {
	Seed string
	Err  error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("import seed %q: %v", e.Seed, e.Err)
}

func (e *ImportError) Unwrap() []error { return []error{ErrImport, e.Err} }

// StoreFetchError wraps a failed phrasebook lookup.
type StoreFetchError struct {
	Op  string
	Err error
}

func (e *StoreFetchError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreFetchError) Unwrap() []error { return []error{ErrStoreFetch, e.Err} }
