package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sara-relief/relief-service/internal/persistence"
)

// Relay forwards events outside the process.
type Relay interface {
	Relay(ctx context.Context, event Event) error
}

// RedisRelay publishes JSON-encoded events on a Redis channel.
type RedisRelay struct {
	redis   *persistence.Redis
	channel string
}

// NewRedisRelay builds a relay for channel.
func NewRedisRelay(redis *persistence.Redis, channel string) *RedisRelay {
	return &RedisRelay{redis: redis, channel: channel}
}

// Relay publishes the event. It does nothing when Redis is unavailable or no channel is set.
func (r *RedisRelay) Relay(ctx context.Context, event Event) error {
	if r == nil || r.channel == "" || !r.redis.Available() {
		return nil
	}
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event %s: %w", event.ID, err)
	}
	return r.redis.Client.Publish(ctx, r.channel, body).Err()
}
