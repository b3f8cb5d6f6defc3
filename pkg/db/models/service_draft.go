package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/servicenest/checkout-engine/pkg/enums"
)

// ServiceDraft persists one booking draft attached to a checkout.
type ServiceDraft struct {
	ID             uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	CheckoutID     uuid.UUID           `gorm:"column:checkout_id;type:uuid;not null;index"`
	Status         enums.DraftStatus   `gorm:"column:status;not null"`
	Position       int                 `gorm:"column:position;not null;default:0"`
	ServiceID      string              `gorm:"column:service_id;not null"`
	ServiceName    string              `gorm:"column:service_name;not null"`
	TotalPrice     decimal.Decimal     `gorm:"column:total_price;type:numeric(12,2);not null"`
	AddOnsTotal    decimal.NullDecimal `gorm:"column:add_ons_total;type:numeric(12,2)"`
	DiscountsTotal decimal.NullDecimal `gorm:"column:discounts_total;type:numeric(12,2)"`
	TipAmount      decimal.NullDecimal `gorm:"column:tip_amount;type:numeric(12,2)"`
	DraftedAt      time.Time           `gorm:"column:drafted_at;not null"`
	CreatedAt      time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the table used by GORM.
func (ServiceDraft) TableName() string {
	return "service_drafts"
}
