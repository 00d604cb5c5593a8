package category

import (
	"sort"
	"strings"
	"sync"

	"github.com/pavanTkumar/watch-price-app/internal/model"
)

// defaultLabels returns the built-in category set for a service type.
// Unknown service types start empty.
func defaultLabels(st model.ServiceType) []string {
	switch st {
	case model.ServiceFiveYearBattery, model.ServiceLifetimeBattery:
		return []string{"Category 1", "Category 2", "Category 3", "Category 4", "Category 5"}
	case model.ServiceBandAdjustment:
		return []string{"Basic", "Mid-Range", "High-End"}
	case model.ServiceOverhaul:
		return []string{"Basic Service", "Full Service", "Complete Restoration"}
	default:
		return nil
	}
}

// Registry owns the mapping from service type to its category labels.
// Custom labels live only for the session; they are re-derived from stored
// records when a ledger is opened.
type Registry struct {
	custom map[model.ServiceType][]string
	mu     sync.RWMutex
}

// NewRegistry creates a registry holding only the built-in label sets.
func NewRegistry() *Registry {
	return &Registry{
		custom: make(map[model.ServiceType][]string),
	}
}

// Labels returns the category labels for a service type: the built-in set
// merged with session customs, deduplicated and sorted lexicographically.
// The returned slice is a copy.
func (r *Registry) Labels(st model.ServiceType) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	var labels []string
	for _, l := range defaultLabels(st) {
		if _, ok := seen[l]; !ok {
			seen[l] = struct{}{}
			labels = append(labels, l)
		}
	}
	for _, l := range r.custom[st] {
		if _, ok := seen[l]; !ok {
			seen[l] = struct{}{}
			labels = append(labels, l)
		}
	}

	sort.Strings(labels)
	return labels
}

// Contains reports whether label is currently valid for the service type.
func (r *Registry) Contains(st model.ServiceType, label string) bool {
	for _, l := range r.Labels(st) {
		if l == label {
			return true
		}
	}
	return false
}

// Add registers a custom label for a service type. Empty labels and labels
// already present are ignored.
func (r *Registry) Add(st model.ServiceType, label string) {
	label = strings.TrimSpace(label)
	if label == "" || r.Contains(st, label) {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.custom[st] = append(r.custom[st], label)
}

// MergeRecords re-derives session customs from stored records, so labels
// used in an existing ledger survive a restart.
func (r *Registry) MergeRecords(records []model.ServiceRecord) {
	for _, rec := range records {
		if rec.Category != "" {
			r.Add(rec.ServiceType, rec.Category)
		}
	}
}
