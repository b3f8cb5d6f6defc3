package fieldstate

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/servicenest/checkout-engine/pkg/enums"
	pkgerrors "github.com/servicenest/checkout-engine/pkg/errors"
	"github.com/servicenest/checkout-engine/pkg/logger"
)

type sessionStore interface {
	Load(ctx context.Context, sessionID uuid.UUID) (Form, error)
	Save(ctx context.Context, sessionID uuid.UUID, form Form) error
	Delete(ctx context.Context, sessionID uuid.UUID) error
}

type fieldObserver interface {
	ObserveFieldValidation(field, result string)
	ObserveSubmitGuard(method string, allowed bool)
}

// Session is a payment session's id together with its current form.
type Session struct {
	ID   uuid.UUID
	Form Form
}

// Service drives payment sessions through the field state machine.
type Service interface {
	Create(ctx context.Context, method enums.PaymentMethod) (Session, error)
	Get(ctx context.Context, sessionID uuid.UUID) (Session, error)
	Change(ctx context.Context, sessionID uuid.UUID, field enums.PaymentField, raw string) (Session, error)
	MarkTouched(ctx context.Context, sessionID uuid.UUID, field enums.PaymentField) (Session, error)
	SwitchMethod(ctx context.Context, sessionID uuid.UUID, method enums.PaymentMethod) (Session, error)
	Submit(ctx context.Context, sessionID uuid.UUID) (Session, error)
	Discard(ctx context.Context, sessionID uuid.UUID) error
}

// ServiceParams wires the payment session service dependencies.
type ServiceParams struct {
	Store   sessionStore
	Metrics fieldObserver
	Logger  *logger.Logger
	Now     func() time.Time
}

type service struct {
	store   sessionStore
	machine Machine
	metrics fieldObserver
	logg    *logger.Logger
}

// NewService builds the payment session service.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, fmt.Errorf("session store required")
	}
	return &service{
		store:   params.Store,
		machine: NewMachine(params.Now),
		metrics: params.Metrics,
		logg:    params.Logger,
	}, nil
}

func (s *service) Create(ctx context.Context, method enums.PaymentMethod) (Session, error) {
	if !method.IsValid() {
		return Session{}, pkgerrors.New(pkgerrors.CodeValidation, "unsupported payment method").
			WithDetails(map[string]any{"method": method})
	}
	session := Session{ID: uuid.New(), Form: NewForm(method)}
	if err := s.store.Save(ctx, session.ID, session.Form); err != nil {
		return Session{}, err
	}
	s.log(ctx, session.ID, "payment_session.created")
	return session, nil
}

func (s *service) Get(ctx context.Context, sessionID uuid.UUID) (Session, error) {
	form, err := s.load(ctx, sessionID)
	if err != nil {
		return Session{}, err
	}
	return Session{ID: sessionID, Form: form}, nil
}

func (s *service) Change(ctx context.Context, sessionID uuid.UUID, field enums.PaymentField, raw string) (Session, error) {
	if err := requireField(field); err != nil {
		return Session{}, err
	}
	return s.apply(ctx, sessionID, func(form Form) Form {
		return s.machine.Change(form, field, raw)
	})
}

func (s *service) MarkTouched(ctx context.Context, sessionID uuid.UUID, field enums.PaymentField) (Session, error) {
	if err := requireField(field); err != nil {
		return Session{}, err
	}
	session, err := s.apply(ctx, sessionID, func(form Form) Form {
		return s.machine.MarkTouched(form, field)
	})
	if err != nil {
		return Session{}, err
	}
	if s.metrics != nil {
		s.metrics.ObserveFieldValidation(field.String(), session.Form.State(field).Error.String())
	}
	return session, nil
}

func (s *service) SwitchMethod(ctx context.Context, sessionID uuid.UUID, method enums.PaymentMethod) (Session, error) {
	if !method.IsValid() {
		return Session{}, pkgerrors.New(pkgerrors.CodeValidation, "unsupported payment method").
			WithDetails(map[string]any{"method": method})
	}
	return s.apply(ctx, sessionID, func(form Form) Form {
		return form.SwitchMethod(method)
	})
}

func (s *service) Submit(ctx context.Context, sessionID uuid.UUID) (Session, error) {
	session, err := s.apply(ctx, sessionID, s.machine.Revalidate)
	if err != nil {
		return Session{}, err
	}
	form := session.Form
	allowed := form.CanSubmit()
	if s.metrics != nil {
		s.metrics.ObserveSubmitGuard(form.Method.String(), allowed)
	}
	if !allowed {
		return Session{}, pkgerrors.New(pkgerrors.CodeStateConflict, "payment details incomplete").
			WithDetails(map[string]any{"method": form.Method, "blocking": form.Blocking()})
	}
	s.log(ctx, sessionID, "payment_session.submit_allowed")
	return Session{ID: sessionID, Form: form}, nil
}

func (s *service) Discard(ctx context.Context, sessionID uuid.UUID) error {
	if sessionID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "payment session id required")
	}
	return s.store.Delete(ctx, sessionID)
}

func (s *service) apply(ctx context.Context, sessionID uuid.UUID, transition func(Form) Form) (Session, error) {
	form, err := s.load(ctx, sessionID)
	if err != nil {
		return Session{}, err
	}
	next := transition(form)
	if err := s.store.Save(ctx, sessionID, next); err != nil {
		return Session{}, err
	}
	return Session{ID: sessionID, Form: next}, nil
}

func (s *service) load(ctx context.Context, sessionID uuid.UUID) (Form, error) {
	if sessionID == uuid.Nil {
		return Form{}, pkgerrors.New(pkgerrors.CodeValidation, "payment session id required")
	}
	return s.store.Load(ctx, sessionID)
}

func (s *service) log(ctx context.Context, sessionID uuid.UUID, msg string) {
	if s.logg == nil {
		return
	}
	s.logg.Info(s.logg.WithPaymentSessionID(ctx, sessionID.String()), msg)
}

func requireField(field enums.PaymentField) error {
	if field.IsValid() {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeValidation, "unknown payment field").
		WithDetails(map[string]any{"field": field})
}
