package paymentfields

import (
	"strings"

	"github.com/servicenest/checkout-engine/pkg/enums"
)

const (
	cardGroupSize      = 4
	cardSeparator      = " "
	maxCardNumberChars = 19
	maxExpiryChars     = 5
)

// Format normalizes raw keystrokes for field. Fields without formatting rules
// are returned unchanged.
func Format(field enums.PaymentField, raw string) string {
	switch field {
	case enums.PaymentFieldCardNumber:
		return formatCardNumber(raw)
	case enums.PaymentFieldExpiryDate:
		return formatExpiry(raw)
	case enums.PaymentFieldCVV, enums.PaymentFieldBankAccount, enums.PaymentFieldBankBranch:
		return digitsOnly(raw)
	}
	return raw
}

func formatCardNumber(raw string) string {
	digits := digitsOnly(raw)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && i%cardGroupSize == 0 {
			b.WriteString(cardSeparator)
		}
		b.WriteRune(r)
	}
	return truncate(b.String(), maxCardNumberChars)
}

func formatExpiry(raw string) string {
	digits := digitsOnly(raw)
	if len(digits) > 2 {
		digits = digits[:2] + "/" + digits[2:]
	}
	return truncate(digits, maxExpiryChars)
}

func digitsOnly(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func truncate(value string, limit int) string {
	if len(value) > limit {
		return value[:limit]
	}
	return value
}
