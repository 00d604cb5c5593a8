package category

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/pavanTkumar/watch-price-app/internal/model"
)

func TestRegistry_DefaultLabels(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		name        string
		serviceType model.ServiceType
		want        []string
	}{
		{
			name:        "battery services share the numbered set",
			serviceType: model.ServiceFiveYearBattery,
			want:        []string{"Category 1", "Category 2", "Category 3", "Category 4", "Category 5"},
		},
		{
			name:        "lifetime battery",
			serviceType: model.ServiceLifetimeBattery,
			want:        []string{"Category 1", "Category 2", "Category 3", "Category 4", "Category 5"},
		},
		{
			name:        "band adjustment",
			serviceType: model.ServiceBandAdjustment,
			want:        []string{"Basic", "High-End", "Mid-Range"},
		},
		{
			name:        "overhaul",
			serviceType: model.ServiceOverhaul,
			want:        []string{"Basic Service", "Complete Restoration", "Full Service"},
		},
		{
			name:        "unknown service type starts empty",
			serviceType: model.ServiceType("Engraving"),
			want:        nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Labels(tt.serviceType))
		})
	}
}

func TestRegistry_Add(t *testing.T) {
	r := NewRegistry()

	r.Add(model.ServiceOverhaul, "Antique Restoration")
	assert.Equal(t,
		[]string{"Antique Restoration", "Basic Service", "Complete Restoration", "Full Service"},
		r.Labels(model.ServiceOverhaul))

	// Duplicates and blanks are ignored.
	r.Add(model.ServiceOverhaul, "Antique Restoration")
	r.Add(model.ServiceOverhaul, "  ")
	assert.Len(t, r.Labels(model.ServiceOverhaul), 4)

	// Customs are scoped to their service type.
	assert.NotContains(t, r.Labels(model.ServiceBandAdjustment), "Antique Restoration")
	assert.True(t, r.Contains(model.ServiceOverhaul, "Antique Restoration"))
}

func TestRegistry_MergeRecords(t *testing.T) {
	r := NewRegistry()

	records := []model.ServiceRecord{
		{
			Brand:       "Seiko",
			Price:       decimal.RequireFromString("50.00"),
			Category:    "Quartz Special",
			ServiceType: model.ServiceFiveYearBattery,
			CreatedAt:   time.Now(),
		},
		{
			Brand:       "Casio",
			Price:       decimal.RequireFromString("20.00"),
			Category:    "Category 5",
			ServiceType: model.ServiceFiveYearBattery,
			CreatedAt:   time.Now(),
		},
	}

	r.MergeRecords(records)

	labels := r.Labels(model.ServiceFiveYearBattery)
	assert.Contains(t, labels, "Quartz Special")
	// The default label from the second record is not duplicated.
	assert.Len(t, labels, 6)
}
