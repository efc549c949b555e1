package app

import (
	"context"
	"fmt"

	"github.com/MrSnakeDoc/linkbatch/internal/config"
	"github.com/MrSnakeDoc/linkbatch/internal/connector"
	"github.com/MrSnakeDoc/linkbatch/internal/logger"
	"github.com/MrSnakeDoc/linkbatch/internal/store"
	"github.com/MrSnakeDoc/linkbatch/internal/store/memory"
	"github.com/MrSnakeDoc/linkbatch/internal/store/postgres"
	redisstore "github.com/MrSnakeDoc/linkbatch/internal/store/redis"
)

// openBackend connects the storage engine selected by cfg.Store.
// It returns a nil backend for "none".
func openBackend(ctx context.Context, cfg *config.Config, log logger.Logger) (store.Backend, error) {
	retry := connector.RetryOptions{
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
		WarnThreshold:  cfg.RedisWarnThreshold,
	}

	switch cfg.Store {
	case config.StoreRedis:
		client, err := connector.Redis(ctx, connector.RedisOptions{
			Addr:         cfg.RedisAddr,
			User:         cfg.RedisUser,
			Password:     cfg.RedisPassword,
			DB:           cfg.RedisDB,
			DialTimeout:  cfg.RedisDT,
			ReadTimeout:  cfg.RedisRT,
			WriteTimeout: cfg.RedisWT,
			PoolSize:     cfg.RedisPoolSize,
			Retry:        retry,
		}, log)
		if err != nil {
			return nil, err
		}
		return redisstore.NewStore(client, cfg.ShareTTL), nil

	case config.StorePostgres:
		pool, err := connector.Postgres(ctx, cfg.DatabaseURL, int32(cfg.DatabaseMaxConns), retry, log)
		if err != nil {
			return nil, err
		}
		backend, err := postgres.New(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		return backend, nil

	case config.StoreMemory:
		log.Warn("using in-memory store, history and shares are lost on restart")
		return memory.New(), nil

	case config.StoreNone, "":
		log.Error("Database not configured. Expected LINKBATCH_REDIS_ADDR or LINKBATCH_DATABASE_URL (or DATABASE_URL); history and shares are disabled.")
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}
