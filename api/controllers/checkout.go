package controllers

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/servicenest/checkout-engine/api/responses"
	"github.com/servicenest/checkout-engine/api/validators"
	checkoutsvc "github.com/servicenest/checkout-engine/internal/checkout"
	"github.com/servicenest/checkout-engine/internal/pricing"
	pkgerrors "github.com/servicenest/checkout-engine/pkg/errors"
	"github.com/servicenest/checkout-engine/pkg/logger"
)

const checkoutIDParam = "checkoutID"

type quotePayload struct {
	TotalPrice decimal.Decimal `json:"total_price" validate:"gte=0,money"`
}

// draftPayload is a draft written to the draft store, which needs the
// service identified.
type draftPayload struct {
	ServiceID      string           `json:"service_id" validate:"required,max=64"`
	ServiceName    string           `json:"service_name" validate:"required,max=200"`
	Pricing        quotePayload     `json:"pricing"`
	AddOnsTotal    *decimal.Decimal `json:"add_ons_total,omitempty" validate:"omitempty,gte=0,money"`
	DiscountsTotal *decimal.Decimal `json:"discounts_total,omitempty" validate:"omitempty,gte=0,money"`
	TipAmount      *decimal.Decimal `json:"tip_amount,omitempty" validate:"omitempty,gte=0,money"`
	Timestamp      *time.Time       `json:"timestamp,omitempty"`
}

// quoteDraftPayload is a draft priced on the fly. The booking may still be
// incomplete, so the service fields are optional.
type quoteDraftPayload struct {
	ServiceID      string           `json:"service_id" validate:"max=64"`
	ServiceName    string           `json:"service_name" validate:"max=200"`
	Pricing        quotePayload     `json:"pricing"`
	AddOnsTotal    *decimal.Decimal `json:"add_ons_total,omitempty" validate:"omitempty,gte=0,money"`
	DiscountsTotal *decimal.Decimal `json:"discounts_total,omitempty" validate:"omitempty,gte=0,money"`
	TipAmount      *decimal.Decimal `json:"tip_amount,omitempty" validate:"omitempty,gte=0,money"`
	Timestamp      *time.Time       `json:"timestamp,omitempty"`
}

func (p quoteDraftPayload) toDraft() pricing.ServiceDraft {
	return draftPayload(p).toDraft()
}

func (p draftPayload) toDraft() pricing.ServiceDraft {
	draft := pricing.ServiceDraft{
		ServiceID:      validators.SanitizeString(p.ServiceID, 64),
		ServiceName:    validators.SanitizeString(p.ServiceName, 200),
		Pricing:        pricing.Quote{TotalPrice: p.Pricing.TotalPrice},
		AddOnsTotal:    p.AddOnsTotal,
		DiscountsTotal: p.DiscountsTotal,
		TipAmount:      p.TipAmount,
	}
	if p.Timestamp != nil {
		draft.Timestamp = p.Timestamp.UTC()
	} else {
		draft.Timestamp = time.Now().UTC()
	}
	return draft
}

type checkoutQuoteRequest struct {
	PendingDrafts []quoteDraftPayload `json:"pending_drafts" validate:"omitempty,max=50,dive"`
	CurrentDraft  quoteDraftPayload   `json:"current_draft"`
}

// CheckoutQuote prices drafts supplied in the request body without touching the draft store.
func CheckoutQuote(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var payload checkoutQuoteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		pending := make([]pricing.ServiceDraft, 0, len(payload.PendingDrafts))
		for _, draft := range payload.PendingDrafts {
			pending = append(pending, draft.toDraft())
		}
		snapshot := svc.Quote(r.Context(), checkoutsvc.QuoteInput{
			Pending: pending,
			Current: payload.CurrentDraft.toDraft(),
		})
		responses.WriteSuccess(w, newSnapshotResponse(snapshot))
	}
}

// CheckoutSnapshot aggregates the stored pending drafts and current draft of a checkout.
func CheckoutSnapshot(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}
		checkoutID, err := validators.ParseUUIDParam(r, checkoutIDParam)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snapshot, err := svc.Snapshot(r.Context(), checkoutID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newSnapshotResponse(snapshot))
	}
}

// CheckoutQueueDraft appends a pending draft to a checkout.
func CheckoutQueueDraft(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}
		checkoutID, err := validators.ParseUUIDParam(r, checkoutIDParam)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload draftPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		draft := payload.toDraft()
		if err := svc.QueueDraft(r.Context(), checkoutID, draft); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newDraftResponse(draft))
	}
}

// CheckoutSetCurrentDraft replaces the draft the customer is still editing.
func CheckoutSetCurrentDraft(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}
		checkoutID, err := validators.ParseUUIDParam(r, checkoutIDParam)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload draftPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		draft := payload.toDraft()
		if err := svc.SetCurrentDraft(r.Context(), checkoutID, draft); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newDraftResponse(draft))
	}
}

// CheckoutQueueCurrentDraft moves the current draft to the end of the pending queue
// so the customer can book another service.
func CheckoutQueueCurrentDraft(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}
		checkoutID, err := validators.ParseUUIDParam(r, checkoutIDParam)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.QueueCurrentDraft(r.Context(), checkoutID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}
