package pricing

import "math"

// Flat delivery fee and tax rate applied at checkout. These are the platform
// contract values; restaurants cannot override them.
const (
	DeliveryFee = 2.99
	TaxRate     = 0.08
)

// Line is one priced cart or order line
type Line struct {
	Price    float64
	Quantity int
}

// Totals is the full checkout breakdown
type Totals struct {
	Subtotal    float64 `json:"subtotal"`
	DeliveryFee float64 `json:"delivery_fee"`
	Tax         float64 `json:"tax"`
	Total       float64 `json:"total"`
}

// ComputeTotals derives the checkout breakdown from line items. Pure: an empty
// slice yields zero subtotal and tax and a fee-only total (callers block
// checkout on empty carts before ever getting here).
func ComputeTotals(lines []Line) Totals {
	var subtotal float64
	for _, l := range lines {
		subtotal += l.Price * float64(l.Quantity)
	}
	tax := subtotal * TaxRate
	return Totals{
		Subtotal:    subtotal,
		DeliveryFee: DeliveryFee,
		Tax:         tax,
		Total:       subtotal + DeliveryFee + tax,
	}
}

// RoundCents rounds to two decimals. Applied at the response edge only;
// intermediate math stays unrounded.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// Rounded returns a copy of t with every field rounded to cents
func (t Totals) Rounded() Totals {
	return Totals{
		Subtotal:    RoundCents(t.Subtotal),
		DeliveryFee: RoundCents(t.DeliveryFee),
		Tax:         RoundCents(t.Tax),
		Total:       RoundCents(t.Total),
	}
}
