package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestServiceRecord_MatchesKey(t *testing.T) {
	rec := ServiceRecord{
		Brand:     "Seiko",
		Price:     decimal.RequireFromString("50.00"),
		CreatedAt: time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC),
	}

	tests := []struct {
		createdAt time.Time
		name      string
		brand     string
		want      bool
	}{
		{
			name:      "exact match",
			brand:     "Seiko",
			createdAt: rec.CreatedAt,
			want:      true,
		},
		{
			name:      "brand matching is case-insensitive",
			brand:     "SEIKO",
			createdAt: rec.CreatedAt,
			want:      true,
		},
		{
			name:      "seconds are ignored",
			brand:     "Seiko",
			createdAt: rec.CreatedAt.Add(45 * time.Second),
			want:      true,
		},
		{
			name:      "different minute",
			brand:     "Seiko",
			createdAt: rec.CreatedAt.Add(time.Minute),
			want:      false,
		},
		{
			name:      "different brand",
			brand:     "Casio",
			createdAt: rec.CreatedAt,
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rec.MatchesKey(tt.brand, tt.createdAt))
		})
	}
}

func TestServiceRecord_DateAdded(t *testing.T) {
	rec := ServiceRecord{CreatedAt: time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)}
	assert.Equal(t, "2024-03-01 10:30", rec.DateAdded())
}

func TestParseServiceType(t *testing.T) {
	tests := []struct {
		in   string
		want ServiceType
	}{
		{in: "5 Year Battery", want: ServiceFiveYearBattery},
		{in: "5 year battery", want: ServiceFiveYearBattery},
		{in: " Overhaul ", want: ServiceOverhaul},
		{in: "Engraving", want: ServiceType("Engraving")},
		{in: "", want: ServiceTypeNone},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseServiceType(tt.in))
		})
	}
}

func TestNewID_Unique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id := NewID()
		_, dup := seen[id]
		assert.False(t, dup)
		seen[id] = struct{}{}
	}
}
