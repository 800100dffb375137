package kv

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/fastygo/cardfolio/domain"
	"github.com/fastygo/cardfolio/repository"
)

// CurrentUserKey is the well-known key the identity record lives under.
const CurrentUserKey = "cardfolio.currentUser"

type identityRepository struct {
	store repository.KeyValueStore
	key   string
}

// NewIdentityRepository stores the identity as JSON under key on the given
// store. An empty key selects CurrentUserKey.
func NewIdentityRepository(store repository.KeyValueStore, key string) repository.IdentityRepository {
	if key == "" {
		key = CurrentUserKey
	}
	return &identityRepository{store: store, key: key}
}

func (r *identityRepository) Load(ctx context.Context) (*domain.Identity, error) {
	data, err := r.store.Get(ctx, r.key)
	if err != nil {
		if errors.Is(err, domain.ErrKeyNotFound) {
			return nil, domain.ErrNoIdentity
		}
		return nil, err
	}

	var identity domain.Identity
	if err := json.Unmarshal(data, &identity); err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "decode identity", err)
	}
	return &identity, nil
}

func (r *identityRepository) Save(ctx context.Context, identity *domain.Identity) error {
	if identity == nil || identity.ID == "" {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(identity)
	if err != nil {
		return err
	}
	return r.store.Put(ctx, r.key, payload)
}

func (r *identityRepository) Clear(ctx context.Context) error {
	return r.store.Delete(ctx, r.key)
}
