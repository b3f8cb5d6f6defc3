package drafts

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/servicenest/checkout-engine/internal/pricing"
	"github.com/servicenest/checkout-engine/pkg/db"
	"github.com/servicenest/checkout-engine/pkg/db/models"
	"github.com/servicenest/checkout-engine/pkg/enums"
)

const currentDraftIndex = "ux_service_drafts_current"

// ErrCurrentDraftConflict is returned when a concurrent writer stored a
// current draft for the same checkout first.
var ErrCurrentDraftConflict = errors.New("current draft changed concurrently")

// Repository stores the drafts attached to a checkout: any number of pending
// drafts plus at most one current draft.
type Repository interface {
	ListPending(ctx context.Context, checkoutID uuid.UUID) ([]pricing.ServiceDraft, error)
	FindCurrent(ctx context.Context, checkoutID uuid.UUID) (*pricing.ServiceDraft, error)
	QueuePending(ctx context.Context, checkoutID uuid.UUID, draft pricing.ServiceDraft) error
	ReplaceCurrent(ctx context.Context, checkoutID uuid.UUID, draft pricing.ServiceDraft) error
	PromoteCurrent(ctx context.Context, checkoutID uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository constructs a draft repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return r.db
	}
	return r.db.WithContext(ctx)
}

// ListPending returns pending drafts in the order they were queued.
func (r *repository) ListPending(ctx context.Context, checkoutID uuid.UUID) ([]pricing.ServiceDraft, error) {
	var rows []models.ServiceDraft
	err := r.conn(ctx).
		Where("checkout_id = ? AND status = ?", checkoutID, enums.DraftStatusPending).
		Order("position ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]pricing.ServiceDraft, 0, len(rows))
	for _, row := range rows {
		out = append(out, fromModel(row))
	}
	return out, nil
}

// FindCurrent returns gorm.ErrRecordNotFound when the checkout has no current draft.
func (r *repository) FindCurrent(ctx context.Context, checkoutID uuid.UUID) (*pricing.ServiceDraft, error) {
	var row models.ServiceDraft
	err := r.conn(ctx).
		Where("checkout_id = ? AND status = ?", checkoutID, enums.DraftStatusCurrent).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	draft := fromModel(row)
	return &draft, nil
}

// QueuePending appends a draft after the existing pending drafts.
func (r *repository) QueuePending(ctx context.Context, checkoutID uuid.UUID, draft pricing.ServiceDraft) error {
	return r.conn(ctx).Transaction(func(tx *gorm.DB) error {
		position, err := nextPosition(tx, checkoutID)
		if err != nil {
			return err
		}
		row := toModel(checkoutID, enums.DraftStatusPending, draft)
		row.Position = position
		return tx.Create(&row).Error
	})
}

// ReplaceCurrent swaps the current draft for the provided one.
func (r *repository) ReplaceCurrent(ctx context.Context, checkoutID uuid.UUID, draft pricing.ServiceDraft) error {
	return r.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("checkout_id = ? AND status = ?", checkoutID, enums.DraftStatusCurrent).
			Delete(&models.ServiceDraft{}).Error; err != nil {
			return err
		}
		row := toModel(checkoutID, enums.DraftStatusCurrent, draft)
		if err := tx.Create(&row).Error; err != nil {
			if db.IsUniqueViolation(err, currentDraftIndex) {
				return ErrCurrentDraftConflict
			}
			return err
		}
		return nil
	})
}

// PromoteCurrent moves the current draft to the end of the pending queue,
// leaving the checkout without a current draft.
func (r *repository) PromoteCurrent(ctx context.Context, checkoutID uuid.UUID) error {
	return r.conn(ctx).Transaction(func(tx *gorm.DB) error {
		var row models.ServiceDraft
		if err := tx.
			Where("checkout_id = ? AND status = ?", checkoutID, enums.DraftStatusCurrent).
			Take(&row).Error; err != nil {
			return err
		}
		position, err := nextPosition(tx, checkoutID)
		if err != nil {
			return err
		}
		result := tx.Model(&models.ServiceDraft{}).
			Where("id = ?", row.ID).
			Updates(map[string]any{"status": enums.DraftStatusPending, "position": position})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errors.New("current draft vanished during promotion")
		}
		return nil
	})
}

func nextPosition(tx *gorm.DB, checkoutID uuid.UUID) (int, error) {
	var maxPosition int
	err := tx.Model(&models.ServiceDraft{}).
		Where("checkout_id = ? AND status = ?", checkoutID, enums.DraftStatusPending).
		Select("COALESCE(MAX(position), 0)").
		Scan(&maxPosition).Error
	if err != nil {
		return 0, err
	}
	return maxPosition + 1, nil
}
