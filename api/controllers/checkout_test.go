package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	checkoutsvc "github.com/servicenest/checkout-engine/internal/checkout"
	"github.com/servicenest/checkout-engine/internal/pricing"
	pkgerrors "github.com/servicenest/checkout-engine/pkg/errors"
)

type stubCheckoutService struct {
	snapshot   checkoutsvc.Snapshot
	err        error
	queued     []pricing.ServiceDraft
	current    []pricing.ServiceDraft
	checkoutID uuid.UUID
	promoted   int
}

func (s *stubCheckoutService) Quote(_ context.Context, input checkoutsvc.QuoteInput) checkoutsvc.Snapshot {
	return checkoutsvc.AggregatePayments(input.Pending, input.Current)
}

func (s *stubCheckoutService) Snapshot(_ context.Context, checkoutID uuid.UUID) (checkoutsvc.Snapshot, error) {
	s.checkoutID = checkoutID
	return s.snapshot, s.err
}

func (s *stubCheckoutService) QueueDraft(_ context.Context, checkoutID uuid.UUID, draft pricing.ServiceDraft) error {
	s.checkoutID = checkoutID
	s.queued = append(s.queued, draft)
	return s.err
}

func (s *stubCheckoutService) SetCurrentDraft(_ context.Context, checkoutID uuid.UUID, draft pricing.ServiceDraft) error {
	s.checkoutID = checkoutID
	s.current = append(s.current, draft)
	return s.err
}

func (s *stubCheckoutService) QueueCurrentDraft(_ context.Context, checkoutID uuid.UUID) error {
	s.checkoutID = checkoutID
	s.promoted++
	return s.err
}

type snapshotBody struct {
	LineItems []struct {
		ServiceName string          `json:"service_name"`
		Total       decimal.Decimal `json:"total"`
	} `json:"line_items"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	TotalDiscounts decimal.Decimal `json:"total_discounts"`
	TotalTips      decimal.Decimal `json:"total_tips"`
	Commission     decimal.Decimal `json:"commission"`
	GrandTotal     decimal.Decimal `json:"grand_total"`
}

func TestCheckoutQuoteAggregatesDrafts(t *testing.T) {
	t.Parallel()

	body := `{
		"pending_drafts": [
			{"service_id": "svc-a", "service_name": "Deep clean", "pricing": {"total_price": "200.00"}}
		],
		"current_draft": {
			"service_id": "svc-b", "service_name": "Garden tidy",
			"pricing": {"total_price": 300},
			"add_ons_total": "50.00", "discounts_total": "100.00", "tip_amount": "50.00"
		}
	}`
	resp := httptest.NewRecorder()
	CheckoutQuote(&stubCheckoutService{}, nil).ServeHTTP(resp, newJSONRequest(http.MethodPost, "/api/v1/checkout/quote", body, nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	var snapshot snapshotBody
	decodeData(t, resp, &snapshot)

	if len(snapshot.LineItems) != 2 || snapshot.LineItems[1].ServiceName != "Garden tidy" {
		t.Fatalf("unexpected line items %+v", snapshot.LineItems)
	}
	checks := map[string]struct {
		got  decimal.Decimal
		want string
	}{
		"subtotal":    {snapshot.Subtotal, "450"},
		"discounts":   {snapshot.TotalDiscounts, "100"},
		"tips":        {snapshot.TotalTips, "50"},
		"commission":  {snapshot.Commission, "67.50"},
		"grand total": {snapshot.GrandTotal, "567.50"},
	}
	for label, c := range checks {
		if !c.got.Equal(decimal.RequireFromString(c.want)) {
			t.Fatalf("expected %s %s, got %s", label, c.want, c.got)
		}
	}
}

func TestCheckoutQuoteRejectsInvalidDrafts(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		body  string
		field string
	}{
		"negative price": {
			body:  `{"current_draft": {"service_id": "x", "service_name": "y", "pricing": {"total_price": "-1"}}}`,
			field: "current_draft.pricing.total_price",
		},
		"negative tip": {
			body:  `{"current_draft": {"service_id": "x", "service_name": "y", "pricing": {"total_price": "1"}, "tip_amount": "-5"}}`,
			field: "current_draft.tip_amount",
		},
		"sub-cent price": {
			body:  `{"current_draft": {"pricing": {"total_price": "10.005"}}}`,
			field: "current_draft.pricing.total_price",
		},
		"sub-cent tip": {
			body:  `{"current_draft": {"pricing": {"total_price": "10"}, "tip_amount": "0.001"}}`,
			field: "current_draft.tip_amount",
		},
		"price too large": {
			body:  `{"current_draft": {"pricing": {"total_price": "10000000000"}}}`,
			field: "current_draft.pricing.total_price",
		},
		"pending add-ons too precise": {
			body:  `{"pending_drafts": [{"pricing": {"total_price": "5"}, "add_ons_total": "1.999"}], "current_draft": {"pricing": {"total_price": "0"}}}`,
			field: "pending_drafts[0].add_ons_total",
		},
	}
	for name, tc := range cases {
		resp := httptest.NewRecorder()
		CheckoutQuote(&stubCheckoutService{}, nil).ServeHTTP(resp, newJSONRequest(http.MethodPost, "/api/v1/checkout/quote", tc.body, nil))
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400 got %d", name, resp.Code)
		}
		body := decodeError(t, resp)
		if _, ok := body.Error.Details[tc.field]; !ok {
			t.Fatalf("%s: expected detail for %s, got %v", name, tc.field, body.Error.Details)
		}
	}
}

func TestCheckoutQuoteDegradesIncompleteDraftToZero(t *testing.T) {
	t.Parallel()

	body := `{"current_draft": {"service_id": "", "service_name": "", "pricing": {"total_price": "0"}}}`
	resp := httptest.NewRecorder()
	CheckoutQuote(&stubCheckoutService{}, nil).ServeHTTP(resp, newJSONRequest(http.MethodPost, "/api/v1/checkout/quote", body, nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}

	var snapshot snapshotBody
	decodeData(t, resp, &snapshot)
	if len(snapshot.LineItems) != 1 || !snapshot.LineItems[0].Total.IsZero() {
		t.Fatalf("expected one zero line item, got %+v", snapshot.LineItems)
	}
	for label, amount := range map[string]decimal.Decimal{
		"subtotal":    snapshot.Subtotal,
		"discounts":   snapshot.TotalDiscounts,
		"tips":        snapshot.TotalTips,
		"commission":  snapshot.Commission,
		"grand total": snapshot.GrandTotal,
	} {
		if !amount.IsZero() {
			t.Fatalf("expected zero %s, got %s", label, amount)
		}
	}
	if !strings.Contains(resp.Body.String(), `"grand_total":"0.00"`) {
		t.Fatalf("expected fixed zero grand total: %s", resp.Body.String())
	}
}

func TestCheckoutQuoteAcceptsCentAmounts(t *testing.T) {
	t.Parallel()

	body := `{"current_draft": {"pricing": {"total_price": "9999999999.99"}, "tip_amount": "10.500"}}`
	resp := httptest.NewRecorder()
	CheckoutQuote(&stubCheckoutService{}, nil).ServeHTTP(resp, newJSONRequest(http.MethodPost, "/api/v1/checkout/quote", body, nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestCheckoutQuoteFormatsAmountsWithTwoDecimals(t *testing.T) {
	t.Parallel()

	body := `{"current_draft": {"service_id": "svc", "service_name": "Lawn mow", "pricing": {"total_price": "10"}, "tip_amount": "2.5"}}`
	resp := httptest.NewRecorder()
	CheckoutQuote(&stubCheckoutService{}, nil).ServeHTTP(resp, newJSONRequest(http.MethodPost, "/api/v1/checkout/quote", body, nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	for _, want := range []string{
		`"subtotal":"10.00"`,
		`"total_discounts":"0.00"`,
		`"total_tips":"2.50"`,
		`"commission":"1.50"`,
		`"grand_total":"14.00"`,
		`"total":"10.00"`,
		`"tip_amount":"2.50"`,
	} {
		if !strings.Contains(resp.Body.String(), want) {
			t.Fatalf("expected %s in body: %s", want, resp.Body.String())
		}
	}
}

func TestCheckoutDraftWriteRequiresServiceAndCents(t *testing.T) {
	t.Parallel()

	params := map[string]string{"checkoutID": uuid.NewString()}
	cases := map[string]struct {
		body  string
		field string
	}{
		"missing service": {
			body:  `{"pricing": {"total_price": "10"}}`,
			field: "service_id",
		},
		"sub-cent price": {
			body:  `{"service_id": "svc", "service_name": "Lawn mow", "pricing": {"total_price": "10.005"}}`,
			field: "pricing.total_price",
		},
	}
	for name, tc := range cases {
		svc := &stubCheckoutService{}
		resp := httptest.NewRecorder()
		CheckoutSetCurrentDraft(svc, nil).ServeHTTP(resp, newJSONRequest(http.MethodPut, "/", tc.body, params))
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400 got %d", name, resp.Code)
		}
		if _, ok := decodeError(t, resp).Error.Details[tc.field]; !ok {
			t.Fatalf("%s: expected detail for %s", name, tc.field)
		}
		if len(svc.current) != 0 {
			t.Fatalf("%s: expected nothing stored", name)
		}
	}
}

func TestCheckoutQuoteRejectsUnknownFields(t *testing.T) {
	t.Parallel()
	resp := httptest.NewRecorder()
	body := `{"current_draft": {"service_id": "x", "service_name": "y", "pricing": {"total_price": "1"}}, "coupon": "FREE"}`
	CheckoutQuote(&stubCheckoutService{}, nil).ServeHTTP(resp, newJSONRequest(http.MethodPost, "/api/v1/checkout/quote", body, nil))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCheckoutSnapshotMapsErrors(t *testing.T) {
	t.Parallel()

	checkoutID := uuid.New()
	svc := &stubCheckoutService{err: pkgerrors.New(pkgerrors.CodeNotFound, "checkout has no current draft")}
	resp := httptest.NewRecorder()
	req := newJSONRequest(http.MethodGet, "/api/v1/checkouts/"+checkoutID.String()+"/snapshot", "", map[string]string{"checkoutID": checkoutID.String()})
	CheckoutSnapshot(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
	if svc.checkoutID != checkoutID {
		t.Fatalf("expected checkout id passed through")
	}

	resp = httptest.NewRecorder()
	req = newJSONRequest(http.MethodGet, "/api/v1/checkouts/nope/snapshot", "", map[string]string{"checkoutID": "nope"})
	CheckoutSnapshot(svc, nil).ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed id got %d", resp.Code)
	}
}

func TestCheckoutSnapshotSuccess(t *testing.T) {
	t.Parallel()

	current := pricing.ServiceDraft{ServiceID: "b", ServiceName: "Boiler service", Pricing: pricing.Quote{TotalPrice: decimal.NewFromInt(100)}}
	svc := &stubCheckoutService{snapshot: checkoutsvc.AggregatePayments(nil, current)}
	checkoutID := uuid.New()
	resp := httptest.NewRecorder()
	req := newJSONRequest(http.MethodGet, "/", "", map[string]string{"checkoutID": checkoutID.String()})
	CheckoutSnapshot(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var snapshot snapshotBody
	decodeData(t, resp, &snapshot)
	if !snapshot.GrandTotal.Equal(decimal.RequireFromString("115")) {
		t.Fatalf("expected grand total 115, got %s", snapshot.GrandTotal)
	}
}

func TestCheckoutDraftWrites(t *testing.T) {
	t.Parallel()

	checkoutID := uuid.New()
	params := map[string]string{"checkoutID": checkoutID.String()}
	svc := &stubCheckoutService{}
	body := `{"service_id": "svc-1", "service_name": "  Window cleaning  ", "pricing": {"total_price": "80"}, "timestamp": "2026-05-04T09:30:00Z"}`

	resp := httptest.NewRecorder()
	CheckoutQueueDraft(svc, nil).ServeHTTP(resp, newJSONRequest(http.MethodPost, "/", body, params))
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if len(svc.queued) != 1 || svc.queued[0].ServiceName != "Window cleaning" {
		t.Fatalf("unexpected queued drafts %+v", svc.queued)
	}
	if svc.queued[0].Timestamp.Year() != 2026 {
		t.Fatalf("expected timestamp kept, got %s", svc.queued[0].Timestamp)
	}

	resp = httptest.NewRecorder()
	CheckoutSetCurrentDraft(svc, nil).ServeHTTP(resp, newJSONRequest(http.MethodPut, "/", body, params))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if len(svc.current) != 1 || svc.checkoutID != checkoutID {
		t.Fatalf("expected current draft stored for checkout")
	}

	resp = httptest.NewRecorder()
	CheckoutQueueCurrentDraft(svc, nil).ServeHTTP(resp, newJSONRequest(http.MethodPost, "/", "", params))
	if resp.Code != http.StatusNoContent || svc.promoted != 1 {
		t.Fatalf("expected 204 and one promotion, got %d / %d", resp.Code, svc.promoted)
	}
}

func TestCheckoutQueueCurrentDraftConflict(t *testing.T) {
	t.Parallel()
	svc := &stubCheckoutService{err: pkgerrors.New(pkgerrors.CodeStateConflict, "checkout has no current draft to queue")}
	resp := httptest.NewRecorder()
	CheckoutQueueCurrentDraft(svc, nil).ServeHTTP(resp, newJSONRequest(http.MethodPost, "/", "", map[string]string{"checkoutID": uuid.NewString()}))
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", resp.Code)
	}
}

func TestCheckoutHandlersRequireService(t *testing.T) {
	t.Parallel()
	resp := httptest.NewRecorder()
	CheckoutQuote(nil, nil).ServeHTTP(resp, newJSONRequest(http.MethodPost, "/", "{}", nil))
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", resp.Code)
	}
}
