package worker

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/sara-relief/relief-service/internal/events"
	"github.com/sara-relief/relief-service/internal/service"
)

// NotificationWorker drains the notification outbox into an external relay.
type NotificationWorker struct {
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// StartNotificationWorker registers notification handlers and starts draining
// the outbox. With a nil relay drained events are discarded, so the outbox
// never fills up.
func StartNotificationWorker(ctx context.Context, notificationService *service.NotificationService, relay events.Relay, logger *zap.Logger) *NotificationWorker {
	w := &NotificationWorker{cancel: func() {}}
	if notificationService == nil {
		return w
	}
	notificationService.RegisterHandlers()
	if relay == nil {
		logger.Info("no event relay configured; domain events are only logged")
	}

	ctx, w.cancel = context.WithCancel(ctx)
	outbox := notificationService.Outbox()
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case event := <-outbox:
				if relay == nil {
					continue
				}
				if err := relay.Relay(ctx, event); err != nil {
					logger.Warn("event relay failed",
						zap.String("event_id", event.ID),
						zap.String("event_type", string(event.Type)),
						zap.Error(err))
				}
			}
		}
	}()
	return w
}

// Stop ends the relay loop and waits for it to exit.
func (w *NotificationWorker) Stop() {
	w.cancel()
	w.wg.Wait()
}
