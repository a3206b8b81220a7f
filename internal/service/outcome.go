package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/sara-relief/relief-service/internal/domain"
	"github.com/sara-relief/relief-service/internal/events"
	"github.com/sara-relief/relief-service/internal/repository"
)

// Outcome reports what a lookup-then-mutate operation did. A missing entity
// or a foreign owner is not an error; callers decide how to surface it.
type Outcome int

const (
	OutcomeApplied Outcome = iota
	OutcomeNotFound
	OutcomeNotOwner
)

func (o Outcome) String() string {
	switch o {
	case OutcomeApplied:
		return "applied"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeNotOwner:
		return "not_owner"
	}
	return "unknown"
}

// Applied is true when the operation changed state.
func (o Outcome) Applied() bool {
	return o == OutcomeApplied
}

// ownership resolves the outcome of acting on an entity owned by ownerID.
func ownership(actor *domain.User, ownerID string) Outcome {
	if !actor.CanModify(ownerID) {
		return OutcomeNotOwner
	}
	return OutcomeApplied
}

// absent splits a repository lookup error into "missing" and real failures.
func absent(err error) (bool, error) {
	if errors.Is(err, repository.ErrNotFound) {
		return true, nil
	}
	return false, err
}

// publisher wraps the optional dispatcher so services can fire and forget.
type publisher struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

func (p publisher) publish(ctx context.Context, event events.Event) {
	if p.dispatcher == nil {
		return
	}
	if err := p.dispatcher.Publish(ctx, event); err != nil && p.logger != nil {
		p.logger.Warn("event handler failed",
			zap.String("event_type", string(event.Type)),
			zap.String("entity_id", event.EntityID),
			zap.Error(err))
	}
}
