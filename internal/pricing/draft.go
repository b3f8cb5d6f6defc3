package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote is the base amount for a draft's selected scope, either duration x
// rate or a flat quote from the provider.
type Quote struct {
	TotalPrice decimal.Decimal `json:"total_price"`
}

// ServiceDraft is one queued or in-progress booking. Optional amounts are nil
// when the booking flow never set them.
type ServiceDraft struct {
	ServiceID      string           `json:"service_id"`
	ServiceName    string           `json:"service_name"`
	Pricing        Quote            `json:"pricing"`
	AddOnsTotal    *decimal.Decimal `json:"add_ons_total,omitempty"`
	DiscountsTotal *decimal.Decimal `json:"discounts_total,omitempty"`
	TipAmount      *decimal.Decimal `json:"tip_amount,omitempty"`
	Timestamp      time.Time        `json:"timestamp"`
}

// AddOns returns the add-ons total, treating a missing or negative value as zero.
func (d ServiceDraft) AddOns() decimal.Decimal {
	return nonNegative(d.AddOnsTotal)
}

// Discounts returns the discounts total, treating a missing or negative value as zero.
func (d ServiceDraft) Discounts() decimal.Decimal {
	return nonNegative(d.DiscountsTotal)
}

// Tip returns the tip, treating a missing or negative value as zero.
func (d ServiceDraft) Tip() decimal.Decimal {
	return nonNegative(d.TipAmount)
}

// Amount is a convenience for building optional draft amounts.
func Amount(value string) *decimal.Decimal {
	d := decimal.RequireFromString(value)
	return &d
}

func nonNegative(value *decimal.Decimal) decimal.Decimal {
	if value == nil || value.IsNegative() {
		return decimal.Zero
	}
	return *value
}
