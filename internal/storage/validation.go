// Package storage provides the file-backed persistence layer for service
// records. The backing file is a spreadsheet: it is both the durable store
// and the artifact users open directly.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pavanTkumar/watch-price-app/internal/model"
)

// Validation errors.
var (
	ErrNilContext    = errors.New("context cannot be nil")
	ErrEmptyString   = errors.New("string parameter cannot be empty")
	ErrNilParameter  = errors.New("parameter cannot be nil")
	ErrInvalidRecord = errors.New("invalid record")
	ErrInvalidLayout = errors.New("invalid store layout")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateRecord validates a single record before it is persisted.
func validateRecord(r *model.ServiceRecord) error {
	if r == nil {
		return fmt.Errorf("%w: record", ErrNilParameter)
	}
	if strings.TrimSpace(r.Brand) == "" {
		return fmt.Errorf("%w: brand is empty", ErrInvalidRecord)
	}
	if !r.Price.IsPositive() {
		return fmt.Errorf("%w: price %s is not positive", ErrInvalidRecord, r.Price)
	}
	return nil
}
