package category

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBandForPrice(t *testing.T) {
	tests := []struct {
		price string
		want  int
	}{
		// Exact boundaries and one cent past each.
		{price: "48.95", want: 5},
		{price: "48.96", want: 4},
		{price: "68.95", want: 4},
		{price: "68.96", want: 3},
		{price: "124.95", want: 3},
		{price: "124.96", want: 2},
		{price: "168.00", want: 2},
		{price: "168.01", want: 1},
		// Interior points.
		{price: "0.01", want: 5},
		{price: "45.00", want: 5},
		{price: "500.00", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.price, func(t *testing.T) {
			got := BandForPrice(decimal.RequireFromString(tt.price))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBandForPrice_Deterministic(t *testing.T) {
	price := decimal.RequireFromString("68.95")
	first := BandForPrice(price)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, BandForPrice(price))
	}
}

func TestLabelForPrice(t *testing.T) {
	assert.Equal(t, "Category 5", LabelForPrice(decimal.RequireFromString("45.00")))
	assert.Equal(t, "Category 1", LabelForPrice(decimal.RequireFromString("500.00")))
}
