package auth

import (
	"context"
	"time"

	"github.com/sara-relief/relief-service/internal/domain"
	"github.com/sara-relief/relief-service/internal/persistence"
)

// Denylist records revoked tokens until they would have expired anyway.
type Denylist interface {
	Revoke(ctx context.Context, session domain.Session) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

const revokedKeyPrefix = "relief:revoked:"

// RedisDenylist stores revoked token IDs with a TTL. When Redis is
// unreachable revocation is skipped and every token is treated as live.
type RedisDenylist struct {
	redis *persistence.Redis
	now   func() time.Time
}

// NewRedisDenylist wraps the shared Redis client.
func NewRedisDenylist(redis *persistence.Redis) *RedisDenylist {
	return &RedisDenylist{redis: redis, now: time.Now}
}

func (d *RedisDenylist) Revoke(ctx context.Context, session domain.Session) error {
	if !d.redis.Available() || session.TokenID == "" {
		return nil
	}
	ttl := session.TTL(d.now())
	if ttl <= 0 {
		return nil
	}
	return d.redis.Client.Set(ctx, revokedKeyPrefix+session.TokenID, session.Username, ttl).Err()
}

func (d *RedisDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if !d.redis.Available() || tokenID == "" {
		return false, nil
	}
	n, err := d.redis.Client.Exists(ctx, revokedKeyPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
