package fieldstate

import (
	"time"

	"github.com/servicenest/checkout-engine/internal/paymentfields"
	"github.com/servicenest/checkout-engine/pkg/enums"
)

// Machine applies field events to a Form. It holds only the clock used by the
// expiry rule.
type Machine struct {
	now func() time.Time
}

// NewMachine returns a Machine reading the time from now. A nil clock uses time.Now.
func NewMachine(now func() time.Time) Machine {
	if now == nil {
		now = time.Now
	}
	return Machine{now: now}
}

// Change stores the formatted value unconditionally and revalidates the field
// only if it is already touched. A card number change that switches the
// detected brand also revalidates a touched cvv.
func (m Machine) Change(form Form, field enums.PaymentField, raw string) Form {
	if !field.IsValid() {
		return form
	}
	next := form.clone()
	previousBrand := form.Brand()
	next.Values[field] = paymentfields.Format(field, raw)

	if state := next.States[field]; state.Touched {
		next.States[field] = m.validate(next, field)
	}
	if field == enums.PaymentFieldCardNumber && next.Brand() != previousBrand {
		if cvv := next.States[enums.PaymentFieldCVV]; cvv.Touched {
			next.States[enums.PaymentFieldCVV] = m.validate(next, enums.PaymentFieldCVV)
		}
	}
	return next
}

// MarkTouched handles focus loss: the field becomes touched and is always
// validated.
func (m Machine) MarkTouched(form Form, field enums.PaymentField) Form {
	if !field.IsValid() {
		return form
	}
	next := form.clone()
	next.States[field] = m.validate(next, field)
	return next
}

// Revalidate re-runs the rule of every touched field against the current
// clock. A stored expiry date can lapse while the session is kept alive.
func (m Machine) Revalidate(form Form) Form {
	next := form.clone()
	for field, state := range form.States {
		if state.Touched {
			next.States[field] = m.validate(next, field)
		}
	}
	return next
}

func (m Machine) validate(form Form, field enums.PaymentField) State {
	vctx := paymentfields.Context{Brand: form.Brand(), Now: m.clock()}
	return State{
		Touched: true,
		Error:   paymentfields.Validate(field, form.Values[field], vctx),
	}
}

func (m Machine) clock() time.Time {
	if m.now == nil {
		return time.Now()
	}
	return m.now()
}
