package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/servicenest/checkout-engine/pkg/enums"
)

type countingObserver struct {
	results []string
}

func (c *countingObserver) ObserveFieldValidation(field, result string) {
	c.results = append(c.results, field+"="+result)
}

func TestPaymentFieldValidate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		body      string
		formatted string
		errKind   string
		brand     enums.CardBrand
	}{
		{"visa ok", `{"field":"cardNumber","value":"4111111111111111"}`, "4111 1111 1111 1111", "", enums.CardBrandVisa},
		{"short card", `{"field":"cardNumber","value":"4111"}`, "4111", "invalid_length", enums.CardBrandVisa},
		{"amex cvv", `{"field":"cvv","value":"123","card_number":"3714 496353 98431"}`, "123", "invalid_length", enums.CardBrandAmex},
		{"unknown bank", `{"field":"selectedBank","value":"bank-of-nowhere"}`, "bank-of-nowhere", "invalid_format", ""},
		{"empty name", `{"field":"cardholderName","value":"   "}`, "   ", "required", ""},
		{"branch digits", `{"field":"bankBranch","value":"20-00-00"}`, "200000", "", ""},
	}
	for _, tc := range cases {
		observer := &countingObserver{}
		resp := httptest.NewRecorder()
		PaymentFieldValidate(observer, nil).ServeHTTP(resp, newJSONRequest(http.MethodPost, "/api/v1/payment-fields/validate", tc.body, nil))
		if resp.Code != http.StatusOK {
			t.Fatalf("%s: expected 200 got %d: %s", tc.name, resp.Code, resp.Body.String())
		}
		var got validateFieldResponse
		decodeData(t, resp, &got)
		if got.FormattedValue != tc.formatted || got.Error != tc.errKind || got.Valid != (tc.errKind == "") {
			t.Fatalf("%s: unexpected result %+v", tc.name, got)
		}
		if got.CardBrand != tc.brand {
			t.Fatalf("%s: expected brand %q got %q", tc.name, tc.brand, got.CardBrand)
		}
		if tc.errKind != "" && got.Message == "" {
			t.Fatalf("%s: expected display message", tc.name)
		}
		if len(observer.results) != 1 {
			t.Fatalf("%s: expected one observation, got %v", tc.name, observer.results)
		}
	}
}

func TestPaymentFieldValidateRejectsUnknownField(t *testing.T) {
	t.Parallel()
	resp := httptest.NewRecorder()
	PaymentFieldValidate(nil, nil).ServeHTTP(resp, newJSONRequest(http.MethodPost, "/", `{"field":"iban","value":"GB00"}`, nil))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	body := decodeError(t, resp)
	if body.Error.Details["field"] == nil {
		t.Fatalf("expected field detail, got %v", body.Error.Details)
	}
}

func TestBanksListsClosedSet(t *testing.T) {
	t.Parallel()
	resp := httptest.NewRecorder()
	Banks().ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/banks", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var banks []bankResponse
	decodeData(t, resp, &banks)
	if len(banks) != len(enums.SupportedBanks()) {
		t.Fatalf("expected %d banks, got %d", len(enums.SupportedBanks()), len(banks))
	}
	for _, bank := range banks {
		if !bank.ID.IsValid() || bank.Name == "" {
			t.Fatalf("unexpected bank %+v", bank)
		}
	}
}
