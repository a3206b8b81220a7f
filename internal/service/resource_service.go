package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/sara-relief/relief-service/internal/domain"
	"github.com/sara-relief/relief-service/internal/events"
	"github.com/sara-relief/relief-service/internal/repository"
	apperrors "github.com/sara-relief/relief-service/pkg/util"
)

// ResourceInput carries the editable fields of a resource. A zero Status keeps
// the current one (AVAILABLE on create).
type ResourceInput struct {
	Name        string
	Description string
	Type        domain.ResourceType
	Quantity    int
	Location    string
	ContactInfo string
	Status      domain.ResourceStatus
}

// ResourceCounts aggregates resource totals.
type ResourceCounts struct {
	Total     int `json:"total_resources"`
	Available int `json:"available_resources"`
	Verified  int `json:"verified_resources"`
}

// ResourceService manages the donated resource catalog.
type ResourceService struct {
	resources repository.ResourceRepository
	events    publisher
}

// NewResourceService creates the service.
func NewResourceService(resources repository.ResourceRepository, dispatcher events.Dispatcher, logger *zap.Logger) *ResourceService {
	return &ResourceService{resources: resources, events: publisher{dispatcher: dispatcher, logger: logger}}
}

// Create stores a new unverified resource owned by owner.
func (s *ResourceService) Create(ctx context.Context, owner *domain.User, in ResourceInput) (*domain.Resource, error) {
	if owner == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	resource := &domain.Resource{OwnerID: owner.ID, Status: domain.ResourceStatusAvailable}
	applyResourceInput(resource, in)
	if err := s.resources.Create(ctx, resource); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.events.publish(ctx, events.New(events.EventResourceCreated, resource.ID, owner, events.ResourceCreatedPayload{
		OwnerID:  resource.OwnerID,
		Type:     resource.Type,
		Quantity: resource.Quantity,
		Location: resource.Location,
	}))
	return resource, nil
}

func applyResourceInput(r *domain.Resource, in ResourceInput) {
	r.Name = strings.TrimSpace(in.Name)
	r.Description = strings.TrimSpace(in.Description)
	r.Type = in.Type
	r.Quantity = in.Quantity
	r.Location = strings.TrimSpace(in.Location)
	r.ContactInfo = strings.TrimSpace(in.ContactInfo)
	if in.Status != "" {
		r.Status = in.Status
	}
}

// Get returns any resource by id.
func (s *ResourceService) Get(ctx context.Context, id string) (*domain.Resource, Outcome, error) {
	resource, err := s.resources.GetByID(ctx, id)
	if err != nil {
		if missing, err := absent(err); !missing {
			return nil, OutcomeNotFound, apperrors.MapError(err)
		}
		return nil, OutcomeNotFound, nil
	}
	return resource, OutcomeApplied, nil
}

// GetOwned returns the resource only when actor owns it or is an admin.
func (s *ResourceService) GetOwned(ctx context.Context, actor *domain.User, id string) (*domain.Resource, Outcome, error) {
	resource, outcome, err := s.Get(ctx, id)
	if err != nil || !outcome.Applied() {
		return nil, outcome, err
	}
	if o := ownership(actor, resource.OwnerID); !o.Applied() {
		return nil, o, nil
	}
	return resource, OutcomeApplied, nil
}

// GetVisible returns the resource only when it is available and verified.
func (s *ResourceService) GetVisible(ctx context.Context, id string) (*domain.Resource, Outcome, error) {
	resource, outcome, err := s.Get(ctx, id)
	if err != nil || !outcome.Applied() {
		return nil, outcome, err
	}
	if !resource.Visible() {
		return nil, OutcomeNotFound, nil
	}
	return resource, OutcomeApplied, nil
}

// Update replaces the editable fields; verification is untouched.
func (s *ResourceService) Update(ctx context.Context, actor *domain.User, id string, in ResourceInput) (*domain.Resource, Outcome, error) {
	resource, outcome, err := s.GetOwned(ctx, actor, id)
	if err != nil || !outcome.Applied() {
		return nil, outcome, err
	}
	previous := resource.Status
	applyResourceInput(resource, in)
	if err := s.save(ctx, resource); err != nil {
		return nil, OutcomeNotFound, err
	}
	if resource.Status != previous {
		s.publishStatus(ctx, actor, resource, events.EventResourceStatusChanged)
	}
	return resource, OutcomeApplied, nil
}

// Delete removes a resource owned by actor (or any resource for admins).
// An absent id reports OutcomeNotFound without error.
func (s *ResourceService) Delete(ctx context.Context, actor *domain.User, id string) (Outcome, error) {
	_, outcome, err := s.GetOwned(ctx, actor, id)
	if err != nil || !outcome.Applied() {
		return outcome, err
	}
	if err := s.resources.Delete(ctx, id); err != nil {
		return OutcomeNotFound, apperrors.MapError(err)
	}
	return OutcomeApplied, nil
}

// AdminDelete removes a resource regardless of owner; absent ids are ignored.
func (s *ResourceService) AdminDelete(ctx context.Context, id string) error {
	if err := s.resources.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// Verify marks a resource verified. Status is left as is.
func (s *ResourceService) Verify(ctx context.Context, actor *domain.User, id string) (Outcome, error) {
	resource, outcome, err := s.Get(ctx, id)
	if err != nil || !outcome.Applied() {
		return outcome, err
	}
	resource.Verified = true
	if err := s.save(ctx, resource); err != nil {
		return OutcomeNotFound, err
	}
	s.publishStatus(ctx, actor, resource, events.EventResourceVerified)
	return OutcomeApplied, nil
}

// SetStatus overrides a resource status without an ownership check.
func (s *ResourceService) SetStatus(ctx context.Context, actor *domain.User, id string, status domain.ResourceStatus) (Outcome, error) {
	if !status.Valid() {
		return OutcomeNotFound, apperrors.NewValidationError("validation failed", map[string]any{"status": "unknown resource status"})
	}
	resource, outcome, err := s.Get(ctx, id)
	if err != nil || !outcome.Applied() {
		return outcome, err
	}
	resource.Status = status
	if err := s.save(ctx, resource); err != nil {
		return OutcomeNotFound, err
	}
	s.publishStatus(ctx, actor, resource, events.EventResourceStatusChanged)
	return OutcomeApplied, nil
}

func (s *ResourceService) save(ctx context.Context, resource *domain.Resource) error {
	if err := s.resources.Update(ctx, resource); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

func (s *ResourceService) publishStatus(ctx context.Context, actor *domain.User, resource *domain.Resource, eventType events.EventType) {
	s.events.publish(ctx, events.New(eventType, resource.ID, actor, events.ResourceStatusPayload{
		Status:   resource.Status,
		Verified: resource.Verified,
	}))
}

// ListVisible returns available and verified resources, optionally filtered
// by exact type and a case-insensitive location substring.
func (s *ResourceService) ListVisible(ctx context.Context, typ *domain.ResourceType, location string, limit int) ([]domain.Resource, error) {
	filter := repository.VisibleResources()
	filter.Type = typ
	filter.Location = location
	filter.Limit = limit
	return s.List(ctx, filter)
}

// ListByOwner returns the owner's resources, newest first.
func (s *ResourceService) ListByOwner(ctx context.Context, ownerID string) ([]domain.Resource, error) {
	return s.List(ctx, repository.ResourceFilter{OwnerID: &ownerID})
}

// List runs an arbitrary filter; used by the admin surface.
func (s *ResourceService) List(ctx context.Context, filter repository.ResourceFilter) ([]domain.Resource, error) {
	resources, err := s.resources.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return resources, nil
}

// Counts aggregates totals, optionally for a single owner.
func (s *ResourceService) Counts(ctx context.Context, ownerID *string) (ResourceCounts, error) {
	available := domain.ResourceStatusAvailable
	verified := true
	var counts ResourceCounts
	for _, q := range []struct {
		filter repository.ResourceFilter
		dst    *int
	}{
		{repository.ResourceFilter{OwnerID: ownerID}, &counts.Total},
		{repository.ResourceFilter{OwnerID: ownerID, Status: &available}, &counts.Available},
		{repository.ResourceFilter{OwnerID: ownerID, Verified: &verified}, &counts.Verified},
	} {
		n, err := s.resources.Count(ctx, q.filter)
		if err != nil {
			return counts, apperrors.MapError(err)
		}
		*q.dst = n
	}
	return counts, nil
}
