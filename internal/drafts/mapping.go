package drafts

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/servicenest/checkout-engine/internal/pricing"
	"github.com/servicenest/checkout-engine/pkg/db/models"
	"github.com/servicenest/checkout-engine/pkg/enums"
)

func toModel(checkoutID uuid.UUID, status enums.DraftStatus, draft pricing.ServiceDraft) models.ServiceDraft {
	return models.ServiceDraft{
		ID:             uuid.New(),
		CheckoutID:     checkoutID,
		Status:         status,
		ServiceID:      draft.ServiceID,
		ServiceName:    draft.ServiceName,
		TotalPrice:     draft.Pricing.TotalPrice,
		AddOnsTotal:    toNull(draft.AddOnsTotal),
		DiscountsTotal: toNull(draft.DiscountsTotal),
		TipAmount:      toNull(draft.TipAmount),
		DraftedAt:      draft.Timestamp.UTC(),
	}
}

func fromModel(m models.ServiceDraft) pricing.ServiceDraft {
	return pricing.ServiceDraft{
		ServiceID:      m.ServiceID,
		ServiceName:    m.ServiceName,
		Pricing:        pricing.Quote{TotalPrice: m.TotalPrice},
		AddOnsTotal:    fromNull(m.AddOnsTotal),
		DiscountsTotal: fromNull(m.DiscountsTotal),
		TipAmount:      fromNull(m.TipAmount),
		Timestamp:      m.DraftedAt,
	}
}

func toNull(value *decimal.Decimal) decimal.NullDecimal {
	if value == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*value)
}

func fromNull(value decimal.NullDecimal) *decimal.Decimal {
	if !value.Valid {
		return nil
	}
	d := value.Decimal
	return &d
}
