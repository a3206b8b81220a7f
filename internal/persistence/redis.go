package persistence

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/sara-relief/relief-service/internal/config"
)

// Redis wraps the go-redis client.
type Redis struct {
	Client    *redis.Client
	available atomic.Bool
}

// NewRedis connects to Redis using the provided configuration.
// An unreachable server is logged and the client is kept so later pings can recover.
func NewRedis(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	r := &Redis{Client: client}
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		r.available.Store(true)
		logger.Info("connected to redis")
	}
	return r
}

// Available reports whether the last ping succeeded.
func (r *Redis) Available() bool {
	return r != nil && r.Client != nil && r.available.Load()
}

// Close closes the client.
func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

// Ping verifies Redis connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	err := r.Client.Ping(ctx).Err()
	r.available.Store(err == nil)
	return err
}
