package repository

import (
	"context"

	"github.com/fastygo/cardfolio/domain"
)

// IdentityRepository persists the single current identity. Load returns
// domain.ErrNoIdentity when nothing is stored.
type IdentityRepository interface {
	Load(ctx context.Context) (*domain.Identity, error)
	Save(ctx context.Context, identity *domain.Identity) error
	Clear(ctx context.Context) error
}
