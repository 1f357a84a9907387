package domain

const basisPointScale = 10000

// PricingConfig holds the authoritative pricing parameters. Both the cart
// summary display and the order submission read from the same values.
// All amounts are in paise.
type PricingConfig struct {
	FreeShippingThreshold int64
	FlatShippingFee       int64
	TaxRateBasisPoints    int64
}

// DefaultPricingConfig returns the storefront defaults: free shipping at
// ₹1000, a flat ₹100 fee below that, and a 5% tax rate.
func DefaultPricingConfig() PricingConfig {
	return PricingConfig{
		FreeShippingThreshold: 100_000,
		FlatShippingFee:       10_000,
		TaxRateBasisPoints:    500,
	}
}

// Totals holds the derived order amounts. Never persisted as a source of
// truth; recomputed from the cart contents on every read.
type Totals struct {
	Subtotal    int64 `json:"subtotal"`
	ShippingFee int64 `json:"shipping_fee"`
	Tax         int64 `json:"tax"`
	GrandTotal  int64 `json:"grand_total"`
}

// Quote derives totals from the given cart lines. An empty cart quotes zero
// across the board; a non-empty cart always carries the shipping fee below
// the threshold, even when every line is priced at zero. Tax is rounded
// half-up to the paise, applied once.
func (c PricingConfig) Quote(lines []CartLine) Totals {
	if len(lines) == 0 {
		return Totals{}
	}

	var subtotal int64
	for _, line := range lines {
		subtotal += line.UnitPrice * int64(line.Quantity)
	}

	var shipping int64
	if subtotal < c.FreeShippingThreshold {
		shipping = c.FlatShippingFee
	}

	tax := (subtotal*c.TaxRateBasisPoints + basisPointScale/2) / basisPointScale

	return Totals{
		Subtotal:    subtotal,
		ShippingFee: shipping,
		Tax:         tax,
		GrandTotal:  subtotal + shipping + tax,
	}
}
