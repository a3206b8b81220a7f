package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sara-relief/relief-service/internal/domain"
	"github.com/sara-relief/relief-service/internal/events"
	"github.com/sara-relief/relief-service/internal/repository"
	apperrors "github.com/sara-relief/relief-service/pkg/util"
)

// RequestInput carries the fields a victim may set. Status is not among them;
// it changes only through SetStatus and assignment completion.
type RequestInput struct {
	Title          string
	Description    string
	ResourceType   domain.ResourceType
	QuantityNeeded int
	Location       string
	Urgency        domain.UrgencyLevel
	NeededBy       *time.Time
}

// RequestCounts aggregates request totals.
type RequestCounts struct {
	Total     int `json:"total_requests"`
	Open      int `json:"open_requests"`
	Fulfilled int `json:"fulfilled_requests"`
}

// RequestService manages the aid request ledger.
type RequestService struct {
	requests repository.RequestRepository
	events   publisher
}

// NewRequestService creates the service.
func NewRequestService(requests repository.RequestRepository, dispatcher events.Dispatcher, logger *zap.Logger) *RequestService {
	return &RequestService{requests: requests, events: publisher{dispatcher: dispatcher, logger: logger}}
}

// Create stores a new OPEN request owned by owner.
func (s *RequestService) Create(ctx context.Context, owner *domain.User, in RequestInput) (*domain.Request, error) {
	if owner == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	request := &domain.Request{OwnerID: owner.ID, Status: domain.RequestStatusOpen}
	applyRequestInput(request, in)
	if err := s.requests.Create(ctx, request); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.events.publish(ctx, events.New(events.EventRequestCreated, request.ID, owner, events.RequestCreatedPayload{
		OwnerID:      request.OwnerID,
		ResourceType: request.ResourceType,
		Urgency:      request.Urgency,
		Location:     request.Location,
	}))
	return request, nil
}

func applyRequestInput(r *domain.Request, in RequestInput) {
	r.Title = strings.TrimSpace(in.Title)
	r.Description = strings.TrimSpace(in.Description)
	r.ResourceType = in.ResourceType
	r.QuantityNeeded = in.QuantityNeeded
	r.Location = strings.TrimSpace(in.Location)
	r.Urgency = in.Urgency
	r.NeededBy = in.NeededBy
}

// Get returns any request by id.
func (s *RequestService) Get(ctx context.Context, id string) (*domain.Request, Outcome, error) {
	request, err := s.requests.GetByID(ctx, id)
	if err != nil {
		if missing, err := absent(err); !missing {
			return nil, OutcomeNotFound, apperrors.MapError(err)
		}
		return nil, OutcomeNotFound, nil
	}
	return request, OutcomeApplied, nil
}

// GetOwned returns the request only when actor owns it or is an admin.
func (s *RequestService) GetOwned(ctx context.Context, actor *domain.User, id string) (*domain.Request, Outcome, error) {
	request, outcome, err := s.Get(ctx, id)
	if err != nil || !outcome.Applied() {
		return nil, outcome, err
	}
	if o := ownership(actor, request.OwnerID); !o.Applied() {
		return nil, o, nil
	}
	return request, OutcomeApplied, nil
}

// Update replaces the editable fields of an owned request; status is kept.
func (s *RequestService) Update(ctx context.Context, actor *domain.User, id string, in RequestInput) (*domain.Request, Outcome, error) {
	request, outcome, err := s.GetOwned(ctx, actor, id)
	if err != nil || !outcome.Applied() {
		return nil, outcome, err
	}
	applyRequestInput(request, in)
	if err := s.save(ctx, request); err != nil {
		return nil, OutcomeNotFound, err
	}
	return request, OutcomeApplied, nil
}

// Delete removes an owned request along with its assignments.
func (s *RequestService) Delete(ctx context.Context, actor *domain.User, id string) (Outcome, error) {
	_, outcome, err := s.GetOwned(ctx, actor, id)
	if err != nil || !outcome.Applied() {
		return outcome, err
	}
	if err := s.requests.Delete(ctx, id); err != nil {
		return OutcomeNotFound, apperrors.MapError(err)
	}
	return OutcomeApplied, nil
}

// AdminDelete removes a request regardless of owner; absent ids are ignored.
func (s *RequestService) AdminDelete(ctx context.Context, id string) error {
	if err := s.requests.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// SetStatus overrides a request status without an ownership check or transition guard.
func (s *RequestService) SetStatus(ctx context.Context, actor *domain.User, id string, status domain.RequestStatus) (Outcome, error) {
	if !status.Valid() {
		return OutcomeNotFound, apperrors.NewValidationError("validation failed", map[string]any{"status": "unknown request status"})
	}
	request, outcome, err := s.Get(ctx, id)
	if err != nil || !outcome.Applied() {
		return outcome, err
	}
	previous := request.Status
	request.Status = status
	if err := s.save(ctx, request); err != nil {
		return OutcomeNotFound, err
	}
	s.publishStatus(ctx, actor, request, previous)
	return OutcomeApplied, nil
}

func (s *RequestService) save(ctx context.Context, request *domain.Request) error {
	if err := s.requests.Update(ctx, request); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

func (s *RequestService) publishStatus(ctx context.Context, actor *domain.User, request *domain.Request, previous domain.RequestStatus) {
	s.events.publish(ctx, events.New(events.EventRequestStatusChanged, request.ID, actor, events.RequestStatusChangedPayload{
		OldStatus: previous,
		NewStatus: request.Status,
	}))
}

// ListOpen returns OPEN requests, most urgent first, optionally filtered by
// urgency and a case-insensitive location substring.
func (s *RequestService) ListOpen(ctx context.Context, urgency *domain.UrgencyLevel, location string, limit int) ([]domain.Request, error) {
	filter := repository.OpenRequests()
	filter.Urgency = urgency
	filter.Location = location
	filter.Limit = limit
	return s.List(ctx, filter)
}

// ListByOwner returns the owner's requests, newest first.
func (s *RequestService) ListByOwner(ctx context.Context, ownerID string) ([]domain.Request, error) {
	return s.List(ctx, repository.RequestFilter{OwnerID: &ownerID})
}

// List runs an arbitrary filter; used by the admin surface.
func (s *RequestService) List(ctx context.Context, filter repository.RequestFilter) ([]domain.Request, error) {
	requests, err := s.requests.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return requests, nil
}

// Counts aggregates totals, optionally for a single owner.
func (s *RequestService) Counts(ctx context.Context, ownerID *string) (RequestCounts, error) {
	open := domain.RequestStatusOpen
	fulfilled := domain.RequestStatusFulfilled
	var counts RequestCounts
	for _, q := range []struct {
		filter repository.RequestFilter
		dst    *int
	}{
		{repository.RequestFilter{OwnerID: ownerID}, &counts.Total},
		{repository.RequestFilter{OwnerID: ownerID, Status: &open}, &counts.Open},
		{repository.RequestFilter{OwnerID: ownerID, Status: &fulfilled}, &counts.Fulfilled},
	} {
		n, err := s.requests.Count(ctx, q.filter)
		if err != nil {
			return counts, apperrors.MapError(err)
		}
		*q.dst = n
	}
	return counts, nil
}
