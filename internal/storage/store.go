package storage

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/pavanTkumar/watch-price-app/internal/model"
	"github.com/pavanTkumar/watch-price-app/internal/service"
)

// Layout selects how records are arranged in the backing file.
type Layout int

const (
	// LayoutExtended stores all records in one table with category and
	// service type columns.
	LayoutExtended Layout = iota
	// LayoutSimple stores one table per price-band category, each holding
	// only brand, price and date.
	LayoutSimple
)

// Column headers for the two layouts.
var (
	extendedHeader = []string{"Brand", "Price", "Category", "Service Type", "Date Added"}
	simpleHeader   = []string{"Brand", "Price", "Date Added"}
)

// Open creates or opens a record store at path, choosing the backend by
// file extension. Workbook files support both layouts; CSV files hold a
// single table and therefore only the extended layout.
func Open(path string, layout Layout) (service.Store, error) {
	if err := validateString(path, "path"); err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		if layout == LayoutSimple {
			return nil, fmt.Errorf("%w: the simple layout needs one table per category; use a workbook file", ErrInvalidLayout)
		}
		return NewCSVStore(path)
	default:
		return NewWorkbookStore(path, layout)
	}
}

// stampRecord prepares a record for its first persist: assigns a surrogate
// ID if missing and normalizes the creation time to the stored precision.
// Times are kept in UTC, the zone parseStoredDate yields, so records appended
// and reloaded within one process compare equal under the natural key.
func stampRecord(r *model.ServiceRecord) {
	if r.ID == "" {
		r.ID = model.NewID()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	r.CreatedAt = r.CreatedAt.UTC().Truncate(time.Minute)
	r.Brand = strings.TrimSpace(r.Brand)
}

// findIndex locates a record by surrogate ID, or -1.
func findIndex(records []model.ServiceRecord, id string) int {
	for i := range records {
		if records[i].ID == id {
			return i
		}
	}
	return -1
}

// applyFields rewrites a record's mutable fields in place. The creation
// timestamp is never touched.
func applyFields(r *model.ServiceRecord, fields service.Fields) {
	r.Brand = strings.TrimSpace(fields.Brand)
	r.Price = fields.Price
	r.Category = fields.Category
	r.ServiceType = fields.ServiceType
}

// snapshot returns a defensive copy of the record slice.
func snapshot(records []model.ServiceRecord) []model.ServiceRecord {
	out := make([]model.ServiceRecord, len(records))
	copy(out, records)
	return out
}

// parseStoredDate reads a stored date cell. Malformed files are opened
// as-is, so an unparseable date yields a zero time rather than an error.
func parseStoredDate(s string) time.Time {
	t, err := time.Parse(model.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}
	}
	return t
}
