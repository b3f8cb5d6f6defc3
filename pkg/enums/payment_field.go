package enums

import "fmt"

// PaymentField names an input on the payment step that carries validation state.
type PaymentField string

const (
	PaymentFieldCardNumber     PaymentField = "cardNumber"
	PaymentFieldExpiryDate     PaymentField = "expiryDate"
	PaymentFieldCVV            PaymentField = "cvv"
	PaymentFieldCardholderName PaymentField = "cardholderName"
	PaymentFieldSelectedBank   PaymentField = "selectedBank"
	PaymentFieldBankAccount    PaymentField = "bankAccount"
	PaymentFieldBankBranch     PaymentField = "bankBranch"
)

var validPaymentFields = []PaymentField{
	PaymentFieldCardNumber,
	PaymentFieldExpiryDate,
	PaymentFieldCVV,
	PaymentFieldCardholderName,
	PaymentFieldSelectedBank,
	PaymentFieldBankAccount,
	PaymentFieldBankBranch,
}

// PaymentFields returns every tracked field in a stable order.
func PaymentFields() []PaymentField {
	out := make([]PaymentField, len(validPaymentFields))
	copy(out, validPaymentFields)
	return out
}

// String implements fmt.Stringer.
func (f PaymentField) String() string {
	return string(f)
}

// IsValid reports whether the value is a known PaymentField.
func (f PaymentField) IsValid() bool {
	for _, candidate := range validPaymentFields {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParsePaymentField converts raw input into a PaymentField.
func ParsePaymentField(value string) (PaymentField, error) {
	for _, candidate := range validPaymentFields {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment field %q", value)
}
