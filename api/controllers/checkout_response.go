package controllers

import (
	"time"

	"github.com/shopspring/decimal"

	checkoutsvc "github.com/servicenest/checkout-engine/internal/checkout"
	"github.com/servicenest/checkout-engine/internal/pricing"
)

// Amounts leave the API as fixed two-decimal strings.
const moneyPlaces = 2

type snapshotResponse struct {
	Services       []draftResponse    `json:"services"`
	LineItems      []lineItemResponse `json:"line_items"`
	Subtotal       string             `json:"subtotal"`
	TotalDiscounts string             `json:"total_discounts"`
	TotalTips      string             `json:"total_tips"`
	Commission     string             `json:"commission"`
	GrandTotal     string             `json:"grand_total"`
}

type draftResponse struct {
	ServiceID      string               `json:"service_id"`
	ServiceName    string               `json:"service_name"`
	Pricing        draftPricingResponse `json:"pricing"`
	AddOnsTotal    *string              `json:"add_ons_total,omitempty"`
	DiscountsTotal *string              `json:"discounts_total,omitempty"`
	TipAmount      *string              `json:"tip_amount,omitempty"`
	Timestamp      time.Time            `json:"timestamp"`
}

type draftPricingResponse struct {
	TotalPrice string `json:"total_price"`
}

type lineItemResponse struct {
	ServiceName string `json:"service_name"`
	BasePrice   string `json:"base_price"`
	AddOns      string `json:"add_ons"`
	Discounts   string `json:"discounts"`
	Total       string `json:"total"`
}

func newSnapshotResponse(snapshot checkoutsvc.Snapshot) snapshotResponse {
	services := make([]draftResponse, 0, len(snapshot.Services))
	for _, draft := range snapshot.Services {
		services = append(services, newDraftResponse(draft))
	}
	items := make([]lineItemResponse, 0, len(snapshot.LineItems))
	for _, item := range snapshot.LineItems {
		items = append(items, lineItemResponse{
			ServiceName: item.ServiceName,
			BasePrice:   money(item.BasePrice),
			AddOns:      money(item.AddOns),
			Discounts:   money(item.Discounts),
			Total:       money(item.Total),
		})
	}
	return snapshotResponse{
		Services:       services,
		LineItems:      items,
		Subtotal:       money(snapshot.Subtotal),
		TotalDiscounts: money(snapshot.TotalDiscounts),
		TotalTips:      money(snapshot.TotalTips),
		Commission:     money(snapshot.Commission),
		GrandTotal:     money(snapshot.GrandTotal),
	}
}

func newDraftResponse(draft pricing.ServiceDraft) draftResponse {
	return draftResponse{
		ServiceID:      draft.ServiceID,
		ServiceName:    draft.ServiceName,
		Pricing:        draftPricingResponse{TotalPrice: money(draft.Pricing.TotalPrice)},
		AddOnsTotal:    optionalMoney(draft.AddOnsTotal),
		DiscountsTotal: optionalMoney(draft.DiscountsTotal),
		TipAmount:      optionalMoney(draft.TipAmount),
		Timestamp:      draft.Timestamp,
	}
}

func money(amount decimal.Decimal) string {
	return amount.StringFixed(moneyPlaces)
}

func optionalMoney(amount *decimal.Decimal) *string {
	if amount == nil {
		return nil
	}
	value := money(*amount)
	return &value
}
