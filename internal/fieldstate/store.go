package fieldstate

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/servicenest/checkout-engine/pkg/errors"
	"github.com/servicenest/checkout-engine/pkg/redis"
)

type keyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	Touch(ctx context.Context, key string, ttl time.Duration) (bool, error)
	PaymentSessionKey(sessionID string) string
}

// Store persists payment session forms in Redis as JSON with a sliding TTL.
type Store struct {
	kv  keyValueStore
	ttl time.Duration
}

// NewStore builds a Store over kv. Every Load and Save refreshes the key's ttl.
func NewStore(kv keyValueStore, ttl time.Duration) (*Store, error) {
	if kv == nil {
		return nil, fmt.Errorf("key value store required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	return &Store{kv: kv, ttl: ttl}, nil
}

// Load returns the form saved for sessionID.
func (s *Store) Load(ctx context.Context, sessionID uuid.UUID) (Form, error) {
	key := s.kv.PaymentSessionKey(sessionID.String())
	raw, err := s.kv.Get(ctx, key)
	if err != nil {
		if redis.IsMissing(err) {
			return Form{}, pkgerrors.New(pkgerrors.CodeNotFound, "payment session not found")
		}
		return Form{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load payment session")
	}
	var form Form
	if err := json.Unmarshal([]byte(raw), &form); err != nil {
		return Form{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode payment session")
	}
	if _, err := s.kv.Touch(ctx, key, s.ttl); err != nil {
		return Form{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "refresh payment session")
	}
	return form.clone(), nil
}

// Save writes form for sessionID.
func (s *Store) Save(ctx context.Context, sessionID uuid.UUID, form Form) error {
	payload, err := json.Marshal(form)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode payment session")
	}
	if err := s.kv.Set(ctx, s.kv.PaymentSessionKey(sessionID.String()), string(payload), s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save payment session")
	}
	return nil
}

// Delete drops the session. Deleting a missing session is not an error.
func (s *Store) Delete(ctx context.Context, sessionID uuid.UUID) error {
	if err := s.kv.Del(ctx, s.kv.PaymentSessionKey(sessionID.String())); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete payment session")
	}
	return nil
}
