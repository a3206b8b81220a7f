package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/sara-relief/relief-service/internal/events"
	"github.com/sara-relief/relief-service/internal/observability"
	"github.com/sara-relief/relief-service/internal/service"
)

type recordingRelay struct {
	mu     sync.Mutex
	events []events.Event
	fail   bool
}

func (r *recordingRelay) Relay(_ context.Context, event events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	if r.fail {
		return errors.New("relay down")
	}
	return nil
}

func (r *recordingRelay) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func TestNotificationWorkerRelaysEvents(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()
	svc := service.NewNotificationService(dispatcher, zap.NewNop(), metrics, 8)
	relay := &recordingRelay{fail: true}

	w := StartNotificationWorker(context.Background(), svc, relay, zap.NewNop())
	defer w.Stop()

	for _, typ := range []events.EventType{events.EventRequestCreated, events.EventAssignmentClaimed} {
		require.NoError(t, dispatcher.Publish(context.Background(), events.New(typ, "entity-1", nil, nil)))
	}

	assert.Eventually(t, func() bool { return relay.count() == 2 }, time.Second, 10*time.Millisecond)
	snap := metrics.Snapshot()
	assert.Equal(t, int64(1), snap.Events[string(events.EventRequestCreated)])
	assert.Equal(t, int64(1), snap.Events[string(events.EventAssignmentClaimed)])
}

func TestNotificationWorkerWithoutRelay(t *testing.T) {
	w := StartNotificationWorker(context.Background(), nil, nil, zap.NewNop())
	w.Stop()
}

func TestNotificationWorkerDrainsOutboxWithoutRelay(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	dispatcher := events.NewInMemoryDispatcher()
	svc := service.NewNotificationService(dispatcher, zap.New(core), observability.NewMetrics(), 2)

	w := StartNotificationWorker(context.Background(), svc, nil, zap.NewNop())
	defer w.Stop()

	for i := 0; i < 10; i++ {
		require.NoError(t, dispatcher.Publish(context.Background(), events.New(events.EventResourceCreated, "resource-1", nil, nil)))
		assert.Eventually(t, func() bool { return len(svc.Outbox()) == 0 }, time.Second, time.Millisecond)
	}
	assert.Zero(t, logs.FilterMessage("notification outbox full; dropping event").Len())
}
