package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/servicenest/checkout-engine/internal/drafts"
	"github.com/servicenest/checkout-engine/internal/pricing"
	pkgerrors "github.com/servicenest/checkout-engine/pkg/errors"
	"github.com/servicenest/checkout-engine/pkg/logger"
)

const (
	sourceQuote    = "quote"
	sourceCheckout = "checkout"
)

type draftStore interface {
	ListPending(ctx context.Context, checkoutID uuid.UUID) ([]pricing.ServiceDraft, error)
	FindCurrent(ctx context.Context, checkoutID uuid.UUID) (*pricing.ServiceDraft, error)
	QueuePending(ctx context.Context, checkoutID uuid.UUID, draft pricing.ServiceDraft) error
	ReplaceCurrent(ctx context.Context, checkoutID uuid.UUID, draft pricing.ServiceDraft) error
	PromoteCurrent(ctx context.Context, checkoutID uuid.UUID) error
}

type snapshotObserver interface {
	ObserveSnapshot(source string, grandTotal float64)
}

// Service computes checkout snapshots for request-supplied or stored drafts.
type Service interface {
	Quote(ctx context.Context, input QuoteInput) Snapshot
	Snapshot(ctx context.Context, checkoutID uuid.UUID) (Snapshot, error)
	QueueDraft(ctx context.Context, checkoutID uuid.UUID, draft pricing.ServiceDraft) error
	SetCurrentDraft(ctx context.Context, checkoutID uuid.UUID, draft pricing.ServiceDraft) error
	QueueCurrentDraft(ctx context.Context, checkoutID uuid.UUID) error
}

// QuoteInput carries drafts that were not loaded from the draft store.
type QuoteInput struct {
	Pending []pricing.ServiceDraft
	Current pricing.ServiceDraft
}

// ServiceParams wires the checkout service dependencies.
type ServiceParams struct {
	Drafts     draftStore
	Calculator *pricing.Calculator
	Metrics    snapshotObserver
	Logger     *logger.Logger
}

type service struct {
	drafts  draftStore
	engine  Engine
	metrics snapshotObserver
	logg    *logger.Logger
}

// NewService builds the checkout service.
func NewService(params ServiceParams) (Service, error) {
	if params.Drafts == nil {
		return nil, fmt.Errorf("draft store required")
	}
	calc := pricing.Default()
	if params.Calculator != nil {
		calc = *params.Calculator
	}
	return &service{
		drafts:  params.Drafts,
		engine:  NewEngine(calc),
		metrics: params.Metrics,
		logg:    params.Logger,
	}, nil
}

func (s *service) Quote(ctx context.Context, input QuoteInput) Snapshot {
	snapshot := s.engine.Aggregate(input.Pending, input.Current)
	s.observe(ctx, sourceQuote, snapshot)
	return snapshot
}

func (s *service) Snapshot(ctx context.Context, checkoutID uuid.UUID) (Snapshot, error) {
	if checkoutID == uuid.Nil {
		return Snapshot{}, pkgerrors.New(pkgerrors.CodeValidation, "checkout id required")
	}

	current, err := s.drafts.FindCurrent(ctx, checkoutID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Snapshot{}, pkgerrors.New(pkgerrors.CodeNotFound, "checkout has no current draft")
		}
		return Snapshot{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load current draft")
	}

	pending, err := s.drafts.ListPending(ctx, checkoutID)
	if err != nil {
		return Snapshot{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load pending drafts")
	}

	snapshot := s.engine.Aggregate(pending, *current)
	if s.logg != nil {
		ctx = s.logg.WithCheckoutID(ctx, checkoutID.String())
	}
	s.observe(ctx, sourceCheckout, snapshot)
	return snapshot, nil
}

func (s *service) QueueDraft(ctx context.Context, checkoutID uuid.UUID, draft pricing.ServiceDraft) error {
	if checkoutID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "checkout id required")
	}
	if err := s.drafts.QueuePending(ctx, checkoutID, draft); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "queue draft")
	}
	return nil
}

func (s *service) SetCurrentDraft(ctx context.Context, checkoutID uuid.UUID, draft pricing.ServiceDraft) error {
	if checkoutID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "checkout id required")
	}
	if err := s.drafts.ReplaceCurrent(ctx, checkoutID, draft); err != nil {
		if errors.Is(err, drafts.ErrCurrentDraftConflict) {
			return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "current draft was replaced by another request")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "replace current draft")
	}
	return nil
}

func (s *service) QueueCurrentDraft(ctx context.Context, checkoutID uuid.UUID) error {
	if checkoutID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "checkout id required")
	}
	if err := s.drafts.PromoteCurrent(ctx, checkoutID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "checkout has no current draft to queue")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "queue current draft")
	}
	return nil
}

func (s *service) observe(ctx context.Context, source string, snapshot Snapshot) {
	if s.metrics != nil {
		s.metrics.ObserveSnapshot(source, snapshot.GrandTotal.InexactFloat64())
	}
	if s.logg == nil {
		return
	}
	ctx = s.logg.WithFields(ctx, map[string]any{
		"source":      source,
		"services":    len(snapshot.Services),
		"subtotal":    snapshot.Subtotal.StringFixed(2),
		"commission":  snapshot.Commission.StringFixed(2),
		"grand_total": snapshot.GrandTotal.StringFixed(2),
	})
	s.logg.Debug(ctx, "checkout.snapshot_computed")
}
