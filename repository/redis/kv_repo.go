package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/fastygo/cardfolio/domain"
	"github.com/fastygo/cardfolio/repository"
)

type kvRepository struct {
	client *redislib.Client
	prefix string
	ttl    time.Duration
}

// NewKeyValueStore creates a Redis-backed key/value store. Keys are namespaced
// with prefix; a zero ttl stores values without expiry.
func NewKeyValueStore(client *redislib.Client, prefix string, ttl time.Duration) repository.KeyValueStore {
	if prefix == "" {
		prefix = "cardfolio:"
	}
	if ttl < 0 {
		ttl = 0
	}
	return &kvRepository{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (r *kvRepository) Get(ctx context.Context, key string) ([]byte, error) {
	result, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return nil, domain.ErrKeyNotFound
		}
		return nil, err
	}
	return result, nil
}

func (r *kvRepository) Put(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return domain.ErrInvalidPayload
	}
	return r.client.Set(ctx, r.key(key), value, r.ttl).Err()
}

func (r *kvRepository) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.key(key)).Err()
}

func (r *kvRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *kvRepository) key(id string) string {
	return fmt.Sprintf("%s%s", r.prefix, id)
}
