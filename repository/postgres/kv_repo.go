package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fastygo/cardfolio/domain"
	"github.com/fastygo/cardfolio/repository"
)

type kvRepository struct {
	pool *pgxpool.Pool
}

// NewKeyValueStore instantiates a Postgres-backed key/value store over the
// kv_entries table.
func NewKeyValueStore(pool *pgxpool.Pool) repository.KeyValueStore {
	return &kvRepository{pool: pool}
}

func (r *kvRepository) Get(ctx context.Context, key string) ([]byte, error) {
	const query = `
		SELECT value
		FROM kv_entries
		WHERE key = $1
	`
	var value []byte
	if err := r.pool.QueryRow(ctx, query, key).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrKeyNotFound
		}
		return nil, err
	}
	return value, nil
}

func (r *kvRepository) Put(ctx context.Context, key string, value []byte) error {
	if key == "" || value == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	INSERT INTO kv_entries (key, value, created_at, updated_at)
	VALUES ($1, $2, NOW(), NOW())
	ON CONFLICT (key) DO UPDATE
	SET value = EXCLUDED.value,
		updated_at = NOW()
	`

	_, err := r.pool.Exec(ctx, query, key, value)
	return err
}

func (r *kvRepository) Delete(ctx context.Context, key string) error {
	const query = `DELETE FROM kv_entries WHERE key = $1`
	_, err := r.pool.Exec(ctx, query, key)
	return err
}

func (r *kvRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
