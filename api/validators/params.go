package validators

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/servicenest/checkout-engine/pkg/enums"
	pkgerrors "github.com/servicenest/checkout-engine/pkg/errors"
)

// ParseUUIDParam reads a chi URL parameter as a UUID.
func ParseUUIDParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, name))
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "path parameter required").WithDetails(map[string]any{"field": name})
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "path parameter must be a uuid").WithDetails(map[string]any{"field": name})
	}
	return id, nil
}

// ParsePaymentFieldParam reads a chi URL parameter as a payment field name.
func ParsePaymentFieldParam(r *http.Request, name string) (enums.PaymentField, error) {
	field, err := enums.ParsePaymentField(strings.TrimSpace(chi.URLParam(r, name)))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown payment field").WithDetails(map[string]any{"field": name})
	}
	return field, nil
}
