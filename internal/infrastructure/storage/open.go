// Package storage opens the key/value backend selected by configuration.
package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/fastygo/cardfolio/internal/config"
	pgInfra "github.com/fastygo/cardfolio/internal/infrastructure/postgres"
	redisInfra "github.com/fastygo/cardfolio/internal/infrastructure/redis"
	"github.com/fastygo/cardfolio/repository"
	boltRepo "github.com/fastygo/cardfolio/repository/bolt"
	"github.com/fastygo/cardfolio/repository/memory"
	pgRepo "github.com/fastygo/cardfolio/repository/postgres"
	redisRepo "github.com/fastygo/cardfolio/repository/redis"
)

// CloseFunc releases the backend.
type CloseFunc func(ctx context.Context) error

// Open connects to the configured driver and returns the store with its closer.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.KeyValueStore, CloseFunc, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	noop := func(context.Context) error { return nil }

	switch cfg.Storage.Driver {
	case config.DriverMemory:
		logger.Warn("using in-memory storage, the session will not survive a restart")
		return memory.New(), noop, nil

	case config.DriverBolt:
		store, err := boltRepo.Open(cfg.Storage.BoltPath, cfg.Storage.BoltBucket)
		if err != nil {
			return nil, nil, fmt.Errorf("open bolt store: %w", err)
		}
		logger.Info("using bolt storage", zap.String("path", cfg.Storage.BoltPath))
		return store, func(context.Context) error { return store.Close() }, nil

	case config.DriverRedis:
		client, err := redisInfra.NewClient(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, fmt.Errorf("redis connection: %w", err)
		}
		logger.Info("using redis storage", zap.String("prefix", cfg.Redis.Prefix))
		return redisRepo.NewKeyValueStore(client, cfg.Redis.Prefix, 0), func(context.Context) error { return client.Close() }, nil

	case config.DriverPostgres:
		if err := pgInfra.RunMigrations(cfg.Database, cfg.Migrations, logger); err != nil {
			return nil, nil, fmt.Errorf("migrations: %w", err)
		}
		pool, err := pgInfra.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("postgres connection: %w", err)
		}
		return pgRepo.NewKeyValueStore(pool), func(context.Context) error {
			pool.Close()
			return nil
		}, nil
	}
	return nil, nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
}
