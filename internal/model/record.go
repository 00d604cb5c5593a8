// Package model defines the core domain types for the watch price ledger.
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateLayout is the minute-precision format records are stored with.
const DateLayout = "2006-01-02 15:04"

// ServiceRecord represents a single watch-service transaction.
type ServiceRecord struct {
	CreatedAt   time.Time
	ID          string // surrogate identifier, assigned at load or creation, never persisted
	Brand       string
	Category    string
	ServiceType ServiceType
	Price       decimal.Decimal
}

// NewID returns a fresh surrogate identifier for a record.
func NewID() string {
	return uuid.NewString()
}

// MatchesKey reports whether the record matches the (brand, created_at)
// natural key. Brand comparison is case-insensitive; timestamps compare at
// minute precision, which is all the store retains.
func (r *ServiceRecord) MatchesKey(brand string, createdAt time.Time) bool {
	if !strings.EqualFold(strings.TrimSpace(brand), r.Brand) {
		return false
	}
	return r.CreatedAt.Truncate(time.Minute).Equal(createdAt.Truncate(time.Minute))
}

// SameBrand reports whether the record's brand equals the given brand,
// ignoring case and surrounding whitespace.
func (r *ServiceRecord) SameBrand(brand string) bool {
	return strings.EqualFold(strings.TrimSpace(brand), r.Brand)
}

// DateAdded renders the creation timestamp in the stored format.
func (r *ServiceRecord) DateAdded() string {
	return r.CreatedAt.Format(DateLayout)
}
