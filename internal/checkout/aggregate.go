package checkout

import (
	"github.com/shopspring/decimal"

	"github.com/servicenest/checkout-engine/internal/pricing"
)

// Snapshot is the priced aggregate of every draft being checked out together.
// It is recomputed on demand and never persisted.
type Snapshot struct {
	Services       []pricing.ServiceDraft `json:"services"`
	LineItems      []pricing.LineItem     `json:"line_items"`
	Subtotal       decimal.Decimal        `json:"subtotal"`
	TotalDiscounts decimal.Decimal        `json:"total_discounts"`
	TotalTips      decimal.Decimal        `json:"total_tips"`
	Commission     decimal.Decimal        `json:"commission"`
	GrandTotal     decimal.Decimal        `json:"grand_total"`
}

// Engine aggregates drafts using a pricing calculator.
type Engine struct {
	calc pricing.Calculator
}

// NewEngine returns an Engine pricing with calc.
func NewEngine(calc pricing.Calculator) Engine {
	return Engine{calc: calc}
}

// AggregatePayments combines the pending drafts with the current draft using
// the default commission rate.
func AggregatePayments(pending []pricing.ServiceDraft, current pricing.ServiceDraft) Snapshot {
	return Engine{calc: pricing.Default()}.Aggregate(pending, current)
}

// Aggregate prices pending followed by current. Inputs are never mutated and
// the result depends only on the arguments.
func (e Engine) Aggregate(pending []pricing.ServiceDraft, current pricing.ServiceDraft) Snapshot {
	services := make([]pricing.ServiceDraft, 0, len(pending)+1)
	services = append(services, pending...)
	services = append(services, current)

	items := make([]pricing.LineItem, len(services))
	for i, draft := range services {
		items[i] = pricing.PriceItem(draft)
	}

	totals := pricing.SumTotals(items)
	tips := pricing.SumTips(services)
	commission := e.calc.Commission(totals.Subtotal)

	return Snapshot{
		Services:       services,
		LineItems:      items,
		Subtotal:       totals.Subtotal,
		TotalDiscounts: totals.TotalDiscounts,
		TotalTips:      tips,
		Commission:     commission,
		GrandTotal:     pricing.ComputeGrandTotal(totals.Subtotal, tips, commission),
	}
}
