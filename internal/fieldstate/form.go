package fieldstate

import (
	"github.com/servicenest/checkout-engine/internal/paymentfields"
	"github.com/servicenest/checkout-engine/pkg/enums"
)

// State is the touched/error lifecycle of one field. An untouched field never
// carries an error.
type State struct {
	Touched bool                    `json:"touched"`
	Error   paymentfields.ErrorKind `json:"error,omitempty"`
}

// Valid reports whether the field is touched and passed its rule.
func (s State) Valid() bool {
	return s.Touched && s.Error == paymentfields.ErrorNone
}

// RequiredFields lists, per payment method, the fields the submission guard checks.
var RequiredFields = map[enums.PaymentMethod][]enums.PaymentField{
	enums.PaymentMethodCard: {
		enums.PaymentFieldCardholderName,
		enums.PaymentFieldCardNumber,
		enums.PaymentFieldExpiryDate,
		enums.PaymentFieldCVV,
	},
	enums.PaymentMethodBank: {
		enums.PaymentFieldSelectedBank,
		enums.PaymentFieldBankAccount,
		enums.PaymentFieldBankBranch,
	},
	enums.PaymentMethodWallet: {},
}

// BlockReasonUntouched marks a required field the customer has not reached yet.
const BlockReasonUntouched = "untouched"

// Form is the payment step's field state. Transitions return a new Form and
// leave the receiver untouched.
type Form struct {
	Method enums.PaymentMethod           `json:"method"`
	Values map[enums.PaymentField]string `json:"values"`
	States map[enums.PaymentField]State  `json:"states"`
}

// NewForm returns an empty form for method.
func NewForm(method enums.PaymentMethod) Form {
	return Form{
		Method: method,
		Values: map[enums.PaymentField]string{},
		States: map[enums.PaymentField]State{},
	}
}

// Value returns the stored, formatted value of field.
func (f Form) Value(field enums.PaymentField) string {
	return f.Values[field]
}

// State returns the touched/error state of field.
func (f Form) State(field enums.PaymentField) State {
	return f.States[field]
}

// Brand is the card brand detected from the stored card number.
func (f Form) Brand() enums.CardBrand {
	return paymentfields.DetectCardBrand(f.Values[enums.PaymentFieldCardNumber])
}

// SwitchMethod selects another payment method. State of the fields belonging
// to other methods is kept so returning to them does not force re-entry.
func (f Form) SwitchMethod(method enums.PaymentMethod) Form {
	next := f.clone()
	next.Method = method
	return next
}

// CanSubmit reports whether every field required by the selected method is
// touched and valid. Unknown methods never submit.
func (f Form) CanSubmit() bool {
	required, ok := RequiredFields[f.Method]
	if !ok {
		return false
	}
	for _, field := range required {
		if !f.States[field].Valid() {
			return false
		}
	}
	return true
}

// Blocking returns, for each required field that is not yet valid, either its
// error kind or BlockReasonUntouched.
func (f Form) Blocking() map[enums.PaymentField]string {
	out := map[enums.PaymentField]string{}
	for _, field := range RequiredFields[f.Method] {
		state := f.States[field]
		switch {
		case !state.Touched:
			out[field] = BlockReasonUntouched
		case state.Error != paymentfields.ErrorNone:
			out[field] = state.Error.String()
		}
	}
	return out
}

// Errors returns the current error of every field that has one.
func (f Form) Errors() map[enums.PaymentField]paymentfields.ErrorKind {
	out := map[enums.PaymentField]paymentfields.ErrorKind{}
	for field, state := range f.States {
		if state.Touched && state.Error != paymentfields.ErrorNone {
			out[field] = state.Error
		}
	}
	return out
}

func (f Form) clone() Form {
	next := Form{
		Method: f.Method,
		Values: make(map[enums.PaymentField]string, len(f.Values)),
		States: make(map[enums.PaymentField]State, len(f.States)),
	}
	for k, v := range f.Values {
		next.Values[k] = v
	}
	for k, v := range f.States {
		next.States[k] = v
	}
	return next
}
