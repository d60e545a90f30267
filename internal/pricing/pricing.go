package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/maisonthread/storefront-backend/pkg/config"
	"github.com/maisonthread/storefront-backend/pkg/db/models"
)

const basisPointsDenominator = 10000

// Line is one priced cart or order row.
type Line struct {
	UnitPriceCents int
	Quantity       int
}

// Totals holds the checkout money breakdown in integer cents.
type Totals struct {
	SubtotalCents   int
	TaxCents        int
	ShippingCents   int
	GrandTotalCents int
}

// EffectiveUnitPriceCents returns the sale price when a valid markdown is
// present, otherwise the list price.
func EffectiveUnitPriceCents(p models.Product) int {
	if p.OnSale() {
		return *p.SalePriceCents
	}
	return p.PriceCents
}

// LineTotalCents multiplies the effective unit price by the quantity.
func LineTotalCents(p models.Product, qty int) int {
	if qty <= 0 {
		return 0
	}
	return EffectiveUnitPriceCents(p) * qty
}

// Calculator derives order totals from configured tax and shipping rates.
type Calculator struct {
	taxRateBasisPoints int
	flatShippingCents  int
}

// NewCalculator builds a calculator from commerce configuration.
func NewCalculator(cfg config.CommerceConfig) Calculator {
	return Calculator{
		taxRateBasisPoints: cfg.TaxRateBasisPoints,
		flatShippingCents:  cfg.FlatShippingCents,
	}
}

// ComputeTotals sums the lines and applies tax and shipping. Tax is computed
// on the subtotal with decimal math and rounded half up to whole cents.
func (c Calculator) ComputeTotals(lines []Line) Totals {
	subtotal := 0
	for _, line := range lines {
		if line.Quantity <= 0 {
			continue
		}
		subtotal += line.UnitPriceCents * line.Quantity
	}

	tax := c.TaxCents(subtotal)
	shipping := c.flatShippingCents
	if shipping < 0 {
		shipping = 0
	}

	return Totals{
		SubtotalCents:   subtotal,
		TaxCents:        tax,
		ShippingCents:   shipping,
		GrandTotalCents: subtotal + tax + shipping,
	}
}

// TaxCents applies the configured rate to the given subtotal.
func (c Calculator) TaxCents(subtotalCents int) int {
	if subtotalCents <= 0 || c.taxRateBasisPoints <= 0 {
		return 0
	}
	tax := decimal.NewFromInt(int64(subtotalCents)).
		Mul(decimal.NewFromInt(int64(c.taxRateBasisPoints))).
		Div(decimal.NewFromInt(basisPointsDenominator)).
		Round(0)
	return int(tax.IntPart())
}
