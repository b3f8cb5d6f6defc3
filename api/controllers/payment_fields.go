package controllers

import (
	"net/http"

	"github.com/servicenest/checkout-engine/api/responses"
	"github.com/servicenest/checkout-engine/api/validators"
	"github.com/servicenest/checkout-engine/internal/paymentfields"
	"github.com/servicenest/checkout-engine/pkg/enums"
	"github.com/servicenest/checkout-engine/pkg/logger"
)

type validationObserver interface {
	ObserveFieldValidation(field, result string)
}

type validateFieldRequest struct {
	Field      string `json:"field" validate:"required,payment_field"`
	Value      string `json:"value" validate:"max=64"`
	CardNumber string `json:"card_number,omitempty" validate:"max=32"`
}

type validateFieldResponse struct {
	Field          enums.PaymentField `json:"field"`
	FormattedValue string             `json:"formatted_value"`
	Valid          bool               `json:"valid"`
	Error          string             `json:"error,omitempty"`
	Message        string             `json:"message,omitempty"`
	CardBrand      enums.CardBrand    `json:"card_brand,omitempty"`
}

type bankResponse struct {
	ID   enums.Bank `json:"id"`
	Name string     `json:"name"`
}

// PaymentFieldValidate formats and validates one value without any session
// state. card_number supplies the brand context for a cvv.
func PaymentFieldValidate(observer validationObserver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload validateFieldRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		field := enums.PaymentField(payload.Field)
		cardNumber := payload.CardNumber
		if field == enums.PaymentFieldCardNumber {
			cardNumber = payload.Value
		}
		brand := paymentfields.DetectCardBrand(cardNumber)

		result := paymentfields.ValidateField(field, payload.Value, paymentfields.Context{Brand: brand})
		if observer != nil {
			observer.ObserveFieldValidation(field.String(), result.Error.String())
		}

		resp := validateFieldResponse{
			Field:          field,
			FormattedValue: result.FormattedValue,
			Valid:          result.Valid(),
			Error:          result.Error.String(),
			Message:        result.Error.Message(field, brand),
		}
		if field == enums.PaymentFieldCardNumber || field == enums.PaymentFieldCVV {
			resp.CardBrand = brand
		}
		responses.WriteSuccess(w, resp)
	}
}

// Banks lists the closed set of banks accepted for bank transfers.
func Banks() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		banks := enums.SupportedBanks()
		out := make([]bankResponse, 0, len(banks))
		for _, bank := range banks {
			out = append(out, bankResponse{ID: bank, Name: bank.DisplayName()})
		}
		responses.WriteSuccess(w, out)
	}
}
