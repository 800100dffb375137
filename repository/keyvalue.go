package repository

import "context"

// KeyValueStore is the durable client-side storage the session persists into.
// Get returns domain.ErrKeyNotFound for a missing key; Delete of a missing key
// is not an error.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}
