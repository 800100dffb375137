package kv_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fastygo/cardfolio/domain"
	"github.com/fastygo/cardfolio/repository/kv"
	"github.com/fastygo/cardfolio/repository/memory"
)

func TestIdentityRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	repo := kv.NewIdentityRepository(store, "")

	_, err := repo.Load(ctx)
	require.ErrorIs(t, err, domain.ErrNoIdentity)

	now := time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)
	identity := &domain.Identity{
		ID:                     "id-1",
		Name:                   "Jane",
		Email:                  "jane@x.com",
		VerificationState:      domain.Verified,
		ProfileCompletionState: domain.ProfileComplete,
		PlanTier:               domain.PlanBusiness,
		OrganizationRole:       domain.RoleAdmin,
		OrganizationID:         "org-1",
		OrganizationName:       "Acme",
		UniqueURL:              "jane",
		AvatarEnabled:          true,
		AnalyticsEnabled:       true,
		NFCCardRequested:       true,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	require.NoError(t, repo.Save(ctx, identity))

	raw, err := store.Get(ctx, kv.CurrentUserKey)
	require.NoError(t, err)
	require.Contains(t, string(raw), `"planTier":"business"`)
	require.Contains(t, string(raw), `"organizationRole":"admin"`)

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, identity, loaded)

	require.NoError(t, repo.Clear(ctx))
	_, err = repo.Load(ctx)
	require.ErrorIs(t, err, domain.ErrNoIdentity)
}

func TestIdentityRepositoryCustomKey(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	repo := kv.NewIdentityRepository(store, "other")

	require.NoError(t, repo.Save(ctx, &domain.Identity{ID: "id-1"}))
	_, err := store.Get(ctx, kv.CurrentUserKey)
	require.ErrorIs(t, err, domain.ErrKeyNotFound)
	_, err = store.Get(ctx, "other")
	require.NoError(t, err)
}

func TestIdentityRepositoryRejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	repo := kv.NewIdentityRepository(store, "")

	require.ErrorIs(t, repo.Save(ctx, nil), domain.ErrInvalidPayload)
	require.ErrorIs(t, repo.Save(ctx, &domain.Identity{}), domain.ErrInvalidPayload)

	require.NoError(t, store.Put(ctx, kv.CurrentUserKey, []byte("not json")))
	_, err := repo.Load(ctx)
	require.True(t, domain.IsDomainError(err, domain.ErrCodeInternal))
}
