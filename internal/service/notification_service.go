package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/sara-relief/relief-service/internal/events"
	"github.com/sara-relief/relief-service/internal/observability"
)

// NotificationService logs domain events and queues them for relay.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics
	outbox     chan events.Event
}

// NewNotificationService creates the service with an outbox of the given size.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, metrics *observability.Metrics, outboxSize int) *NotificationService {
	if outboxSize <= 0 {
		outboxSize = 64
	}
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		metrics:    metrics,
		outbox:     make(chan events.Event, outboxSize),
	}
}

// RegisterHandlers subscribes to every event type.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	events.SubscribeAll(n.dispatcher, events.AllEventTypes, n.handleEvent)
}

// Outbox yields events awaiting relay.
func (n *NotificationService) Outbox() <-chan events.Event {
	return n.outbox
}

func (n *NotificationService) handleEvent(_ context.Context, event events.Event) error {
	n.metrics.RecordEvent(string(event.Type))
	n.logger.Info("domain event",
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
		zap.String("entity_id", event.EntityID),
		zap.String("actor_id", event.ActorID),
		zap.Any("payload", event.Payload))

	select {
	case n.outbox <- event:
	default:
		n.logger.Warn("notification outbox full; dropping event",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)))
	}
	return nil
}
