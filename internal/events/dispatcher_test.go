package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sara-relief/relief-service/internal/domain"
)

func TestPublishRunsEveryHandler(t *testing.T) {
	d := NewInMemoryDispatcher()
	var seen []string
	d.Subscribe(EventAssignmentClaimed, func(_ context.Context, e Event) error {
		seen = append(seen, "first:"+e.EntityID)
		return errors.New("boom")
	})
	d.Subscribe(EventAssignmentClaimed, func(_ context.Context, e Event) error {
		seen = append(seen, "second:"+e.EntityID)
		return nil
	})

	err := d.Publish(context.Background(), New(EventAssignmentClaimed, "a-1", nil, nil))
	require.Error(t, err)
	assert.Equal(t, []string{"first:a-1", "second:a-1"}, seen)

	assert.NoError(t, d.Publish(context.Background(), New(EventRequestCreated, "r-1", nil, nil)))
}

func TestSubscribeAllAndNew(t *testing.T) {
	d := NewInMemoryDispatcher()
	counts := map[EventType]int{}
	SubscribeAll(d, AllEventTypes, func(_ context.Context, e Event) error {
		counts[e.Type]++
		return nil
	})

	actor := &domain.User{ID: "u-9"}
	for _, typ := range AllEventTypes {
		e := New(typ, "x", actor, nil)
		assert.NotEmpty(t, e.ID)
		assert.Equal(t, "u-9", e.ActorID)
		require.NoError(t, d.Publish(context.Background(), e))
	}
	assert.Len(t, counts, len(AllEventTypes))
}

func TestRedisRelaySkipsWithoutRedis(t *testing.T) {
	var nilRelay *RedisRelay
	assert.NoError(t, nilRelay.Relay(context.Background(), New(EventRequestCreated, "r", nil, nil)))
	assert.NoError(t, NewRedisRelay(nil, "relief.events").Relay(context.Background(), New(EventRequestCreated, "r", nil, nil)))
}
