package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
)

func draft(name, base string, addOns, discounts, tip *decimal.Decimal) ServiceDraft {
	return ServiceDraft{
		ServiceID:      name,
		ServiceName:    name,
		Pricing:        Quote{TotalPrice: decimal.RequireFromString(base)},
		AddOnsTotal:    addOns,
		DiscountsTotal: discounts,
		TipAmount:      tip,
	}
}

func assertAmount(t *testing.T, label string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Fatalf("expected %s %s, got %s", label, want, got.StringFixed(2))
	}
}

func TestPriceItemDefaultsMissingAmounts(t *testing.T) {
	t.Parallel()
	item := PriceItem(draft("cleaning", "120.00", nil, nil, nil))
	assertAmount(t, "base", item.BasePrice, "120")
	assertAmount(t, "add-ons", item.AddOns, "0")
	assertAmount(t, "discounts", item.Discounts, "0")
	assertAmount(t, "total", item.Total, "120")
	if item.ServiceName != "cleaning" {
		t.Fatalf("unexpected service name %q", item.ServiceName)
	}
}

func TestPriceItemAppliesAddOnsAndDiscounts(t *testing.T) {
	t.Parallel()
	item := PriceItem(draft("plumbing", "300", Amount("50"), Amount("100"), nil))
	assertAmount(t, "total", item.Total, "250")
}

func TestPriceItemClampsNegativeTotal(t *testing.T) {
	t.Parallel()
	item := PriceItem(draft("gardening", "40", Amount("5"), Amount("100"), nil))
	assertAmount(t, "total", item.Total, "0")
	assertAmount(t, "discounts", item.Discounts, "100")
}

func TestPriceItemIgnoresNegativeOptionalAmounts(t *testing.T) {
	t.Parallel()
	item := PriceItem(draft("painting", "100", Amount("-20"), Amount("-10"), nil))
	assertAmount(t, "add-ons", item.AddOns, "0")
	assertAmount(t, "discounts", item.Discounts, "0")
	assertAmount(t, "total", item.Total, "100")
}

func TestPriceItemKeepsCentPrecision(t *testing.T) {
	t.Parallel()
	item := PriceItem(draft("ironing", "0.10", Amount("0.20"), nil, nil))
	assertAmount(t, "total", item.Total, "0.30")
}

func TestSumTotals(t *testing.T) {
	t.Parallel()
	items := []LineItem{
		PriceItem(draft("a", "200", nil, nil, nil)),
		PriceItem(draft("b", "300", Amount("50"), Amount("100"), nil)),
		PriceItem(draft("c", "10", nil, Amount("30"), nil)),
	}
	totals := SumTotals(items)
	assertAmount(t, "subtotal", totals.Subtotal, "450")
	assertAmount(t, "discounts", totals.TotalDiscounts, "130")
}

func TestSumTotalsEmpty(t *testing.T) {
	t.Parallel()
	totals := SumTotals(nil)
	assertAmount(t, "subtotal", totals.Subtotal, "0")
	assertAmount(t, "discounts", totals.TotalDiscounts, "0")
}

func TestComputeCommission(t *testing.T) {
	t.Parallel()
	cases := []struct {
		subtotal string
		want     string
	}{
		{subtotal: "0", want: "0.00"},
		{subtotal: "450", want: "67.50"},
		{subtotal: "100", want: "15.00"},
		{subtotal: "0.30", want: "0.05"},
		{subtotal: "0.10", want: "0.02"},
		{subtotal: "33.33", want: "5.00"},
		{subtotal: "19.99", want: "3.00"},
	}
	for _, tc := range cases {
		got := ComputeCommission(decimal.RequireFromString(tc.subtotal))
		if got.StringFixed(2) != tc.want {
			t.Fatalf("subtotal %s: expected commission %s, got %s", tc.subtotal, tc.want, got.StringFixed(2))
		}
	}
}

func TestComputeCommissionMatchesRoundedRate(t *testing.T) {
	t.Parallel()
	for cents := int64(0); cents <= 5000; cents += 7 {
		subtotal := decimal.New(cents, -2)
		want := subtotal.Mul(decimal.RequireFromString("0.15")).Round(2)
		if got := ComputeCommission(subtotal); !got.Equal(want) {
			t.Fatalf("subtotal %s: expected %s, got %s", subtotal, want, got)
		}
	}
}

func TestCalculatorCustomRate(t *testing.T) {
	t.Parallel()
	calc := NewCalculator(decimal.RequireFromString("0.10"))
	assertAmount(t, "commission", calc.Commission(decimal.RequireFromString("450")), "45")

	fallback := NewCalculator(decimal.RequireFromString("-1"))
	if !fallback.Rate().Equal(CommissionRate) {
		t.Fatalf("expected negative rate to fall back to %s, got %s", CommissionRate, fallback.Rate())
	}
	if !Default().Rate().Equal(CommissionRate) {
		t.Fatalf("unexpected default rate %s", Default().Rate())
	}
}

func TestComputeGrandTotalIsExactSum(t *testing.T) {
	t.Parallel()
	subtotal := decimal.RequireFromString("450")
	tips := decimal.RequireFromString("50")
	commission := ComputeCommission(subtotal)
	grand := ComputeGrandTotal(subtotal, tips, commission)
	assertAmount(t, "grand total", grand, "567.50")
	if !grand.Equal(subtotal.Add(tips).Add(commission)) {
		t.Fatalf("grand total must equal subtotal + tips + commission")
	}
}

func TestSumTips(t *testing.T) {
	t.Parallel()
	drafts := []ServiceDraft{
		draft("a", "10", nil, nil, Amount("5")),
		draft("b", "10", nil, nil, nil),
		draft("c", "10", nil, nil, Amount("2.50")),
	}
	assertAmount(t, "tips", SumTips(drafts), "7.50")
}
