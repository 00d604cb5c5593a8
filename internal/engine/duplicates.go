package engine

import (
	"github.com/pavanTkumar/watch-price-app/internal/model"
)

// findDuplicate scans records for a conflicting (brand, service type) pair.
// Brand comparison is case-insensitive, service type is exact. excludeID
// skips the record under edit so it never flags itself. The first match is
// returned; any one duplicate is enough to warrant a warning.
//
// The check is advisory: callers may proceed past it with explicit
// confirmation.
func findDuplicate(records []model.ServiceRecord, brand string, serviceType model.ServiceType, excludeID string) *model.ServiceRecord {
	for i := range records {
		if excludeID != "" && records[i].ID == excludeID {
			continue
		}
		if records[i].SameBrand(brand) && records[i].ServiceType == serviceType {
			return &records[i]
		}
	}
	return nil
}
