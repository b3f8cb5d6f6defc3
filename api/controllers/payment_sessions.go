package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/servicenest/checkout-engine/api/responses"
	"github.com/servicenest/checkout-engine/api/validators"
	"github.com/servicenest/checkout-engine/internal/fieldstate"
	"github.com/servicenest/checkout-engine/pkg/enums"
	pkgerrors "github.com/servicenest/checkout-engine/pkg/errors"
	"github.com/servicenest/checkout-engine/pkg/logger"
)

const (
	sessionIDParam = "sessionID"
	fieldParam     = "field"
)

type createPaymentSessionRequest struct {
	Method string `json:"method" validate:"required,payment_method"`
}

type fieldChangeRequest struct {
	Value string `json:"value" validate:"max=64"`
}

type switchMethodRequest struct {
	Method string `json:"method" validate:"required,payment_method"`
}

type fieldStateResponse struct {
	Value   string `json:"value"`
	Touched bool   `json:"touched"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

type paymentSessionResponse struct {
	ID        uuid.UUID                                 `json:"id"`
	Method    enums.PaymentMethod                       `json:"method"`
	CardBrand enums.CardBrand                           `json:"card_brand"`
	Fields    map[enums.PaymentField]fieldStateResponse `json:"fields"`
	CanSubmit bool                                      `json:"can_submit"`
	Blocking  map[enums.PaymentField]string             `json:"blocking,omitempty"`
}

func newPaymentSessionResponse(session fieldstate.Session) paymentSessionResponse {
	form := session.Form
	brand := form.Brand()
	fields := make(map[enums.PaymentField]fieldStateResponse, len(enums.PaymentFields()))
	for _, field := range enums.PaymentFields() {
		state := form.State(field)
		fields[field] = fieldStateResponse{
			Value:   form.Value(field),
			Touched: state.Touched,
			Error:   state.Error.String(),
			Message: state.Error.Message(field, brand),
		}
	}
	resp := paymentSessionResponse{
		ID:        session.ID,
		Method:    form.Method,
		CardBrand: brand,
		Fields:    fields,
		CanSubmit: form.CanSubmit(),
	}
	if !resp.CanSubmit {
		resp.Blocking = form.Blocking()
	}
	return resp
}

// PaymentSessionCreate starts a payment step with every field untouched.
func PaymentSessionCreate(svc fieldstate.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payment session service unavailable"))
			return
		}
		var payload createPaymentSessionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := svc.Create(r.Context(), enums.PaymentMethod(payload.Method))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newPaymentSessionResponse(session))
	}
}

// PaymentSessionGet returns the field states and submission guard of a session.
func PaymentSessionGet(svc fieldstate.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payment session service unavailable"))
			return
		}
		sessionID, err := validators.ParseUUIDParam(r, sessionIDParam)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := svc.Get(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newPaymentSessionResponse(session))
	}
}

// PaymentFieldChange records a keystroke-level value change.
func PaymentFieldChange(svc fieldstate.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payment session service unavailable"))
			return
		}
		sessionID, err := validators.ParseUUIDParam(r, sessionIDParam)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		field, err := validators.ParsePaymentFieldParam(r, fieldParam)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload fieldChangeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := svc.Change(r.Context(), sessionID, field, payload.Value)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newPaymentSessionResponse(session))
	}
}

// PaymentFieldBlur marks a field touched and validates it.
func PaymentFieldBlur(svc fieldstate.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payment session service unavailable"))
			return
		}
		sessionID, err := validators.ParseUUIDParam(r, sessionIDParam)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		field, err := validators.ParsePaymentFieldParam(r, fieldParam)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := svc.MarkTouched(r.Context(), sessionID, field)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newPaymentSessionResponse(session))
	}
}

// PaymentSessionSwitchMethod selects another payment method, keeping entered values.
func PaymentSessionSwitchMethod(svc fieldstate.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payment session service unavailable"))
			return
		}
		sessionID, err := validators.ParseUUIDParam(r, sessionIDParam)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload switchMethodRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := svc.SwitchMethod(r.Context(), sessionID, enums.PaymentMethod(payload.Method))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newPaymentSessionResponse(session))
	}
}

// PaymentSessionSubmit runs the submission guard. A blocked form answers 422
// with the blocking fields in the error details.
func PaymentSessionSubmit(svc fieldstate.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payment session service unavailable"))
			return
		}
		sessionID, err := validators.ParseUUIDParam(r, sessionIDParam)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := svc.Submit(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newPaymentSessionResponse(session))
	}
}

// PaymentSessionDiscard drops a session the customer abandoned.
func PaymentSessionDiscard(svc fieldstate.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payment session service unavailable"))
			return
		}
		sessionID, err := validators.ParseUUIDParam(r, sessionIDParam)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Discard(r.Context(), sessionID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}
