package validators

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/servicenest/checkout-engine/pkg/enums"
	pkgerrors "github.com/servicenest/checkout-engine/pkg/errors"
)

var validate = newValidator()

// moneyLimit is the first amount that no longer fits numeric(12,2).
var moneyLimit = decimal.New(1, 10)

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	// Money fields compare as float64 so gte/lte tags apply to them.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
	mustRegister(v, "money", validMoney)
	mustRegister(v, "payment_method", func(fl validator.FieldLevel) bool {
		return enums.PaymentMethod(fl.Field().String()).IsValid()
	})
	mustRegister(v, "payment_field", func(fl validator.FieldLevel) bool {
		return enums.PaymentField(fl.Field().String()).IsValid()
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

// validMoney accepts amounts with at most two decimal places below moneyLimit.
// The custom type func has already turned the field into a float64, so the
// decimal is read back from the parent struct.
func validMoney(fl validator.FieldLevel) bool {
	field := reflect.Indirect(fl.Parent()).FieldByName(fl.StructFieldName())
	for field.Kind() == reflect.Ptr {
		if field.IsNil() {
			return true
		}
		field = field.Elem()
	}
	amount, ok := field.Interface().(decimal.Decimal)
	if !ok {
		return false
	}
	return amount.Equal(amount.Truncate(2)) && amount.Abs().LessThan(moneyLimit)
}

func DecodeJSONBody(r *http.Request, dest any) error {
	defer func() {
		io.Copy(io.Discard, r.Body)
	}()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid request body").WithDetails(map[string]any{"error": err.Error()})
	}
	if err := validate.Struct(dest); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

func formatValidationErrors(err error) *pkgerrors.Error {
	if errs, ok := err.(validator.ValidationErrors); ok {
		details := map[string]string{}
		for _, fieldErr := range errs {
			details[fieldPath(fieldErr)] = validationMessage(fieldErr)
		}
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed")
}

// fieldPath drops the root struct name from the namespace, keeping nested
// paths such as pending_drafts[0].service_id.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return fe.Field()
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "money":
		return "must have at most 2 decimal places and be below 10000000000"
	case "payment_method":
		return "must be one of card, bank, wallet"
	case "payment_field":
		return "must be a supported payment field"
	}
	return "is invalid"
}
