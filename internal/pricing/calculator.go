package pricing

import "github.com/shopspring/decimal"

// CommissionRate is the platform fee charged on the services subtotal.
var CommissionRate = decimal.RequireFromString("0.15")

const currencyPlaces = 2

// LineItem is the priced view of one ServiceDraft.
type LineItem struct {
	ServiceName string          `json:"service_name"`
	BasePrice   decimal.Decimal `json:"base_price"`
	AddOns      decimal.Decimal `json:"add_ons"`
	Discounts   decimal.Decimal `json:"discounts"`
	Total       decimal.Decimal `json:"total"`
}

// Totals captures the folded line item amounts.
type Totals struct {
	Subtotal       decimal.Decimal
	TotalDiscounts decimal.Decimal
}

// Calculator prices drafts with a fixed commission rate.
type Calculator struct {
	rate decimal.Decimal
}

var defaultCalculator = Calculator{rate: CommissionRate}

// NewCalculator returns a Calculator charging the provided commission rate.
// A negative rate falls back to CommissionRate.
func NewCalculator(rate decimal.Decimal) Calculator {
	if rate.IsNegative() {
		return defaultCalculator
	}
	return Calculator{rate: rate}
}

// Default returns the Calculator charging CommissionRate.
func Default() Calculator {
	return defaultCalculator
}

// Rate returns the commission rate the calculator applies.
func (c Calculator) Rate() decimal.Decimal {
	return c.rate
}

// PriceItem converts a draft into its line item. A line item total never goes
// below zero, so a large discount cannot subsidize other services.
func PriceItem(draft ServiceDraft) LineItem {
	base := draft.Pricing.TotalPrice
	addOns := draft.AddOns()
	discounts := draft.Discounts()

	total := base.Add(addOns).Sub(discounts)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return LineItem{
		ServiceName: draft.ServiceName,
		BasePrice:   base,
		AddOns:      addOns,
		Discounts:   discounts,
		Total:       total,
	}
}

// SumTotals folds line items into the snapshot subtotal and discount total.
// Discounts are already netted out of each item total.
func SumTotals(items []LineItem) Totals {
	totals := Totals{Subtotal: decimal.Zero, TotalDiscounts: decimal.Zero}
	for _, item := range items {
		totals.Subtotal = totals.Subtotal.Add(item.Total)
		totals.TotalDiscounts = totals.TotalDiscounts.Add(item.Discounts)
	}
	return totals
}

// SumTips adds up the tips across drafts.
func SumTips(drafts []ServiceDraft) decimal.Decimal {
	tips := decimal.Zero
	for _, draft := range drafts {
		tips = tips.Add(draft.Tip())
	}
	return tips
}

// ComputeCommission applies CommissionRate to the subtotal.
func ComputeCommission(subtotal decimal.Decimal) decimal.Decimal {
	return defaultCalculator.Commission(subtotal)
}

// Commission rounds subtotal x rate once, half away from zero, to cents.
// Tips must never reach this function.
func (c Calculator) Commission(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(c.rate).Round(currencyPlaces)
}

// ComputeGrandTotal is the amount charged: subtotal + tips + commission, unrounded.
func ComputeGrandTotal(subtotal, totalTips, commission decimal.Decimal) decimal.Decimal {
	return subtotal.Add(totalTips).Add(commission)
}
