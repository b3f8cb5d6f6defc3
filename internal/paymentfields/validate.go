package paymentfields

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/servicenest/checkout-engine/pkg/enums"
)

const (
	minCardDigits    = 13
	maxCardDigits    = 19
	minAccountDigits = 8
	maxAccountDigits = 12
	branchDigits     = 6
)

var expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/([0-9]{2})$`)

// Context carries what a rule may need beyond the field value itself.
type Context struct {
	// Brand is the brand detected from the card number; only cvv reads it.
	Brand enums.CardBrand
	// Now anchors the expiry check. Zero means the current time.
	Now time.Time
}

// Result is the outcome of formatting and validating one field value.
type Result struct {
	FormattedValue string    `json:"formatted_value"`
	Error          ErrorKind `json:"error"`
}

// Valid reports whether the value passed its rule.
func (r Result) Valid() bool {
	return r.Error == ErrorNone
}

// ValidateField formats raw and validates the formatted value.
func ValidateField(field enums.PaymentField, raw string, vctx Context) Result {
	formatted := Format(field, raw)
	return Result{FormattedValue: formatted, Error: Validate(field, formatted, vctx)}
}

// Validate applies field's rule to value and returns at most one error.
// Fields without a rule are always valid.
func Validate(field enums.PaymentField, value string, vctx Context) ErrorKind {
	switch field {
	case enums.PaymentFieldCardholderName:
		if strings.TrimSpace(value) == "" {
			return ErrorRequired
		}
	case enums.PaymentFieldCardNumber:
		if n := len(digitsOnly(value)); n < minCardDigits || n > maxCardDigits {
			return ErrorInvalidLength
		}
	case enums.PaymentFieldExpiryDate:
		return validateExpiry(value, vctx.now())
	case enums.PaymentFieldCVV:
		if !isDigits(value) || len(value) != vctx.brand().CVVLength() {
			return ErrorInvalidLength
		}
	case enums.PaymentFieldSelectedBank:
		bank := strings.TrimSpace(value)
		if bank == "" {
			return ErrorRequired
		}
		if !enums.Bank(bank).IsValid() {
			return ErrorInvalidFormat
		}
	case enums.PaymentFieldBankAccount:
		if n := len(digitsOnly(value)); n < minAccountDigits || n > maxAccountDigits {
			return ErrorInvalidLength
		}
	case enums.PaymentFieldBankBranch:
		if len(digitsOnly(value)) != branchDigits {
			return ErrorInvalidLength
		}
	}
	return ErrorNone
}

func validateExpiry(value string, now time.Time) ErrorKind {
	match := expiryPattern.FindStringSubmatch(value)
	if match == nil {
		return ErrorInvalidFormat
	}
	month, _ := strconv.Atoi(match[1])
	year, _ := strconv.Atoi(match[2])
	year += 2000

	current := now.Year()*12 + int(now.Month())
	if year*12+month < current {
		return ErrorExpired
	}
	return ErrorNone
}

func (c Context) now() time.Time {
	if c.Now.IsZero() {
		return time.Now()
	}
	return c.Now
}

func (c Context) brand() enums.CardBrand {
	if c.Brand == "" {
		return enums.CardBrandUnknown
	}
	return c.Brand
}

func isDigits(value string) bool {
	return value != "" && digitsOnly(value) == value
}
