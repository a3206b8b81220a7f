package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/sara-relief/relief-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventResourceCreated         EventType = "resource.created"
	EventResourceVerified        EventType = "resource.verified"
	EventResourceStatusChanged   EventType = "resource.status_changed"
	EventRequestCreated          EventType = "request.created"
	EventRequestStatusChanged    EventType = "request.status_changed"
	EventAssignmentClaimed       EventType = "assignment.claimed"
	EventAssignmentStatusChanged EventType = "assignment.status_changed"
	EventAssignmentCancelled     EventType = "assignment.cancelled"
)

// AllEventTypes lists every event the services emit.
var AllEventTypes = []EventType{
	EventResourceCreated,
	EventResourceVerified,
	EventResourceStatusChanged,
	EventRequestCreated,
	EventRequestStatusChanged,
	EventAssignmentClaimed,
	EventAssignmentStatusChanged,
	EventAssignmentCancelled,
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	EntityID  string      `json:"entity_id"`
	ActorID   string      `json:"actor_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// New stamps an event with a fresh ID and the current time.
func New(eventType EventType, entityID string, actor *domain.User, payload interface{}) Event {
	e := Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		EntityID:  entityID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
	if actor != nil {
		e.ActorID = actor.ID
	}
	return e
}

// ResourceCreatedPayload payload.
type ResourceCreatedPayload struct {
	OwnerID  string              `json:"owner_id"`
	Type     domain.ResourceType `json:"type"`
	Quantity int                 `json:"quantity"`
	Location string              `json:"location"`
}

// ResourceStatusPayload payload for status and verification changes.
type ResourceStatusPayload struct {
	Status   domain.ResourceStatus `json:"status"`
	Verified bool                  `json:"verified"`
}

// RequestCreatedPayload payload.
type RequestCreatedPayload struct {
	OwnerID      string              `json:"owner_id"`
	ResourceType domain.ResourceType `json:"resource_type"`
	Urgency      domain.UrgencyLevel `json:"urgency"`
	Location     string              `json:"location"`
}

// RequestStatusChangedPayload payload.
type RequestStatusChangedPayload struct {
	OldStatus domain.RequestStatus `json:"old_status"`
	NewStatus domain.RequestStatus `json:"new_status"`
}

// AssignmentPayload payload for claim, status change and cancel.
type AssignmentPayload struct {
	VolunteerID string                  `json:"volunteer_id"`
	RequestID   string                  `json:"request_id"`
	Status      domain.AssignmentStatus `json:"status"`
	Fulfilled   bool                    `json:"request_fulfilled,omitempty"`
}
