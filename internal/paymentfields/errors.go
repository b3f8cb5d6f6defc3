package paymentfields

import (
	"fmt"

	"github.com/servicenest/checkout-engine/pkg/enums"
)

// ErrorKind is the single validation failure attached to a field. The empty
// value means the field is valid or has not been validated yet.
type ErrorKind string

const (
	ErrorNone          ErrorKind = ""
	ErrorRequired      ErrorKind = "required"
	ErrorInvalidFormat ErrorKind = "invalid_format"
	ErrorInvalidLength ErrorKind = "invalid_length"
	ErrorExpired       ErrorKind = "expired"
)

var fieldLabels = map[enums.PaymentField]string{
	enums.PaymentFieldCardNumber:     "Card number",
	enums.PaymentFieldExpiryDate:     "Expiry date",
	enums.PaymentFieldCVV:            "Security code",
	enums.PaymentFieldCardholderName: "Cardholder name",
	enums.PaymentFieldSelectedBank:   "Bank",
	enums.PaymentFieldBankAccount:    "Account number",
	enums.PaymentFieldBankBranch:     "Branch code",
}

// String implements fmt.Stringer.
func (k ErrorKind) String() string {
	return string(k)
}

// Message renders the error for display next to field.
func (k ErrorKind) Message(field enums.PaymentField, brand enums.CardBrand) string {
	label := fieldLabels[field]
	if label == "" {
		label = field.String()
	}
	switch k {
	case ErrorNone:
		return ""
	case ErrorRequired:
		return fmt.Sprintf("%s is required", label)
	case ErrorExpired:
		return "Card has expired"
	case ErrorInvalidFormat:
		switch field {
		case enums.PaymentFieldExpiryDate:
			return "Expiry date must be MM/YY"
		case enums.PaymentFieldSelectedBank:
			return "Choose one of the supported banks"
		}
		return fmt.Sprintf("%s is invalid", label)
	case ErrorInvalidLength:
		switch field {
		case enums.PaymentFieldCardNumber:
			return fmt.Sprintf("Card number must be %d to %d digits", minCardDigits, maxCardDigits)
		case enums.PaymentFieldCVV:
			return fmt.Sprintf("Security code must be %d digits", brand.CVVLength())
		case enums.PaymentFieldBankAccount:
			return fmt.Sprintf("Account number must be %d to %d digits", minAccountDigits, maxAccountDigits)
		case enums.PaymentFieldBankBranch:
			return fmt.Sprintf("Branch code must be %d digits", branchDigits)
		}
		return fmt.Sprintf("%s has an invalid length", label)
	}
	return fmt.Sprintf("%s is invalid", label)
}
