package enums

import "testing"

func TestParsePaymentMethod(t *testing.T) {
	for _, raw := range []string{"card", "bank", "wallet"} {
		method, err := ParsePaymentMethod(raw)
		if err != nil {
			t.Fatalf("expected %q to parse, got %v", raw, err)
		}
		if !method.IsValid() {
			t.Fatalf("expected %q to be valid", raw)
		}
	}
	if _, err := ParsePaymentMethod("cash"); err == nil {
		t.Fatal("expected error for unsupported method")
	}
}

func TestParsePaymentField(t *testing.T) {
	for _, field := range PaymentFields() {
		parsed, err := ParsePaymentField(field.String())
		if err != nil {
			t.Fatalf("expected %q to parse, got %v", field, err)
		}
		if parsed != field {
			t.Fatalf("expected %q got %q", field, parsed)
		}
	}
	if _, err := ParsePaymentField("iban"); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestSupportedBanksIsClosed(t *testing.T) {
	banks := SupportedBanks()
	if len(banks) == 0 {
		t.Fatal("expected supported banks")
	}
	for _, bank := range banks {
		if !bank.IsValid() {
			t.Fatalf("expected %q to be valid", bank)
		}
		if bank.DisplayName() == "" {
			t.Fatalf("missing display name for %q", bank)
		}
	}
	banks[0] = "my-own-bank"
	if SupportedBanks()[0] == "my-own-bank" {
		t.Fatal("SupportedBanks must return a copy")
	}
	if Bank("my-own-bank").IsValid() {
		t.Fatal("unexpected bank accepted")
	}
}

func TestCardBrandCVVLength(t *testing.T) {
	if got := CardBrandAmex.CVVLength(); got != 4 {
		t.Fatalf("expected amex cvv length 4, got %d", got)
	}
	for _, brand := range []CardBrand{CardBrandVisa, CardBrandMastercard, CardBrandDiscover, CardBrandUnknown} {
		if got := brand.CVVLength(); got != 3 {
			t.Fatalf("expected %s cvv length 3, got %d", brand, got)
		}
	}
}
