// Package service defines the interfaces between the reconciliation engine
// and the persistence layer.
package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pavanTkumar/watch-price-app/internal/model"
)

// Fields holds the mutable fields of a record for an in-place update.
// CreatedAt is deliberately absent: it is immutable once assigned.
type Fields struct {
	Brand       string
	Category    string
	ServiceType model.ServiceType
	Price       decimal.Decimal
}

// Store defines the contract for the durable record store. Every mutating
// call persists before returning; there is no write-behind buffering and no
// handle held open between calls.
type Store interface {
	// All returns a snapshot of every record in file order.
	All(ctx context.Context) ([]model.ServiceRecord, error)

	// Append persists a new record at the end of the table, assigning it a
	// surrogate ID if it has none.
	Append(ctx context.Context, record *model.ServiceRecord) error

	// Update rewrites the fields of the record with the given ID, leaving
	// its creation timestamp untouched. Returns common.ErrNotFound if the
	// ID is stale.
	Update(ctx context.Context, id string, fields Fields) error

	// Remove deletes the record with the given ID. Returns
	// common.ErrNotFound if absent.
	Remove(ctx context.Context, id string) error

	// FindByKey locates a record by its (brand, created_at) natural key,
	// first match in file order. Returns nil if nothing matches.
	FindByKey(ctx context.Context, brand string, createdAt time.Time) (*model.ServiceRecord, error)

	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)
}
