// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Storage errors.
	ErrNotFound           = errors.New("record not found")
	ErrStorageUnavailable = errors.New("storage unavailable")

	// Reconciliation errors.
	ErrNoSelection  = errors.New("no record selected")
	ErrNotConfirmed = errors.New("operation not confirmed")
	ErrValidation   = errors.New("validation failed")

	// Configuration errors.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ValidationError reports a single violated input rule. The operation that
// produced it persisted nothing.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a validation error for a single field.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// UserMessage converts any error escaping an operation into the message the
// presentation layer should surface. Errors never propagate past this
// boundary unexplained.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr.Error()
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return "The selected record no longer exists. Refresh and try again."
	case errors.Is(err, ErrNoSelection):
		return "Select a record first."
	case errors.Is(err, ErrNotConfirmed):
		return "Operation cancelled."
	case errors.Is(err, ErrStorageUnavailable):
		return "Could not write the ledger file. Close any program that has it open and try again."
	default:
		return fmt.Sprintf("An error occurred: %v", err)
	}
}
