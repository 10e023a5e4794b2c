package pricing

import "ventas-backoffice/models"

// DefaultTaxRate is the IGV rate used to derive the tax-exclusive subtotal
// from a tax-inclusive total. Overridable via TAX_RATE (see config).
const DefaultTaxRate = 0.18

// LineTotal calculates quantity × unit price. Lines carry no per-line tax
// split, so the same figure serves as both subtotal and total.
func LineTotal(quantity, unitPrice float64) float64 {
	return quantity * unitPrice
}

// OrderTotal sums the line totals of the given lines. Order totals are always
// recomputed from the lines being persisted, never taken from a client-sent
// aggregate field.
func OrderTotal(lines []models.OrderLine) float64 {
	var total float64
	for _, line := range lines {
		total += LineTotal(line.Quantity, line.UnitPrice)
	}
	return total
}

// TaxSplit is the tax-exclusive view of a tax-inclusive total.
type TaxSplit struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
}

// SplitTax derives subtotal = total / (1 + rate) and tax = total − subtotal.
// The formula is fixed: displayed figures must keep matching historical ones.
func SplitTax(total, rate float64) TaxSplit {
	subtotal := total / (1 + rate)
	return TaxSplit{
		Subtotal: subtotal,
		Tax:      total - subtotal,
	}
}
