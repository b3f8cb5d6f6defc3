package paymentfields

import (
	"strings"

	"github.com/servicenest/checkout-engine/pkg/enums"
)

type brandPrefix struct {
	prefixes []string
	brand    enums.CardBrand
}

var brandPrefixes = []brandPrefix{
	{prefixes: []string{"4"}, brand: enums.CardBrandVisa},
	{prefixes: []string{"51", "52", "53", "54", "55"}, brand: enums.CardBrandMastercard},
	{prefixes: []string{"34", "37"}, brand: enums.CardBrandAmex},
	{prefixes: []string{"6011", "65"}, brand: enums.CardBrandDiscover},
}

// DetectCardBrand infers the card network from the digits of cardNumber.
func DetectCardBrand(cardNumber string) enums.CardBrand {
	digits := digitsOnly(cardNumber)
	for _, entry := range brandPrefixes {
		for _, prefix := range entry.prefixes {
			if strings.HasPrefix(digits, prefix) {
				return entry.brand
			}
		}
	}
	return enums.CardBrandUnknown
}
