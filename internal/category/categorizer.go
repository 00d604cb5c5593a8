// Package category implements price-band categorization and the
// service-type-scoped category label sets.
package category

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// priceBand is one row of the fixed pricing table.
type priceBand struct {
	ceiling decimal.Decimal
	band    int
}

// Bands are evaluated least-price-first; the first ceiling that holds wins.
var priceBands = []priceBand{
	{ceiling: decimal.RequireFromString("48.95"), band: 5},
	{ceiling: decimal.RequireFromString("68.95"), band: 4},
	{ceiling: decimal.RequireFromString("124.95"), band: 3},
	{ceiling: decimal.RequireFromString("168.00"), band: 2},
}

// BandForPrice maps a price to its category band. It is pure and total:
// the same price always yields the same band, and every price above the
// last ceiling falls into band 1.
func BandForPrice(price decimal.Decimal) int {
	for _, pb := range priceBands {
		if price.LessThanOrEqual(pb.ceiling) {
			return pb.band
		}
	}
	return 1
}

// LabelForPrice renders the band as the stored category label.
func LabelForPrice(price decimal.Decimal) string {
	return fmt.Sprintf("Category %d", BandForPrice(price))
}
