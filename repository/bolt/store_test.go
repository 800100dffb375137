package bolt_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fastygo/cardfolio/domain"
	"github.com/fastygo/cardfolio/repository/bolt"
)

func openStore(t *testing.T, path string) *bolt.Store {
	t.Helper()
	store, err := bolt.Open(path, "")
	require.NoError(t, err)
	return store
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := openStore(t, filepath.Join(t.TempDir(), "nested", "session.db"))
	defer store.Close()

	require.NoError(t, store.Ping(ctx))

	_, err := store.Get(ctx, "cardfolio.currentUser")
	require.ErrorIs(t, err, domain.ErrKeyNotFound)

	require.NoError(t, store.Put(ctx, "cardfolio.currentUser", []byte(`{"id":"1"}`)))
	got, err := store.Get(ctx, "cardfolio.currentUser")
	require.NoError(t, err)
	require.Equal(t, `{"id":"1"}`, string(got))

	size, err := store.Size()
	require.NoError(t, err)
	require.Equal(t, 1, size)

	require.NoError(t, store.Delete(ctx, "cardfolio.currentUser"))
	require.NoError(t, store.Delete(ctx, "cardfolio.currentUser"))
	_, err = store.Get(ctx, "cardfolio.currentUser")
	require.ErrorIs(t, err, domain.ErrKeyNotFound)
}

func TestStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.db")

	store := openStore(t, path)
	require.NoError(t, store.Put(ctx, "k", []byte("v")))
	require.NoError(t, store.Close())

	reopened := openStore(t, path)
	defer reopened.Close()
	got, err := reopened.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "v", string(got))
}

func TestClosedStore(t *testing.T) {
	var store *bolt.Store
	require.Error(t, store.Ping(context.Background()))
	require.NoError(t, store.Close())
}
