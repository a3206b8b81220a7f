package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sara-relief/relief-service/internal/domain"
	"github.com/sara-relief/relief-service/internal/events"
	"github.com/sara-relief/relief-service/internal/repository"
	apperrors "github.com/sara-relief/relief-service/pkg/util"
)

// AssignmentCounts aggregates assignment totals.
type AssignmentCounts struct {
	Total     int `json:"total_assignments"`
	Completed int `json:"completed_assignments"`
}

// VolunteerService handles the claim and assignment lifecycle.
type VolunteerService struct {
	assignments repository.AssignmentRepository
	requests    repository.RequestRepository
	events      publisher
	logger      *zap.Logger
	now         func() time.Time
}

// VolunteerDependencies bundles repositories.
type VolunteerDependencies struct {
	AssignmentRepo repository.AssignmentRepository
	RequestRepo    repository.RequestRepository
	Dispatcher     events.Dispatcher
	Logger         *zap.Logger
}

// NewVolunteerService creates the service.
func NewVolunteerService(deps VolunteerDependencies) *VolunteerService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VolunteerService{
		assignments: deps.AssignmentRepo,
		requests:    deps.RequestRepo,
		events:      publisher{dispatcher: deps.Dispatcher, logger: logger},
		logger:      logger,
		now:         time.Now,
	}
}

// Claim assigns the volunteer to a request. The request status is not
// checked, so requests in any state can be claimed. A second claim of the
// same pair fails with DUPLICATE_ASSIGNMENT.
func (s *VolunteerService) Claim(ctx context.Context, volunteer *domain.User, requestID, notes string) (*domain.Assignment, Outcome, error) {
	if volunteer == nil {
		return nil, OutcomeNotFound, apperrors.NewUnauthorized("authentication required")
	}
	if _, err := s.requests.GetByID(ctx, requestID); err != nil {
		if missing, err := absent(err); !missing {
			return nil, OutcomeNotFound, apperrors.MapError(err)
		}
		return nil, OutcomeNotFound, nil
	}

	assignment := &domain.Assignment{
		VolunteerID: volunteer.ID,
		RequestID:   requestID,
		Status:      domain.AssignmentStatusAssigned,
		Notes:       strings.TrimSpace(notes),
		AssignedAt:  s.now(),
	}
	if err := s.assignments.Create(ctx, assignment); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, OutcomeNotFound, apperrors.NewDuplicateAssignment(volunteer.ID, requestID)
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, OutcomeNotFound, nil
		}
		return nil, OutcomeNotFound, apperrors.MapError(err)
	}

	s.logger.Info("request claimed",
		zap.String("assignment_id", assignment.ID),
		zap.String("volunteer_id", volunteer.ID),
		zap.String("request_id", requestID))
	s.publish(ctx, events.EventAssignmentClaimed, volunteer, assignment)
	return assignment, OutcomeApplied, nil
}

// AdvanceStatus sets the status of the actor's own assignment. Admins may
// advance any assignment. Any enum value is accepted from any state.
func (s *VolunteerService) AdvanceStatus(ctx context.Context, actor *domain.User, assignmentID string, status domain.AssignmentStatus) (Outcome, error) {
	if !status.Valid() {
		return OutcomeNotFound, apperrors.NewValidationError("validation failed", map[string]any{"status": "unknown assignment status"})
	}
	assignment, outcome, err := s.lookup(ctx, assignmentID)
	if err != nil || !outcome.Applied() {
		return outcome, err
	}
	if o := ownership(actor, assignment.VolunteerID); !o.Applied() {
		return o, nil
	}
	return s.setStatus(ctx, actor, assignmentID, status)
}

// AdminSetAssignmentStatus sets any assignment's status. Completion still
// fulfills the linked request.
func (s *VolunteerService) AdminSetAssignmentStatus(ctx context.Context, actor *domain.User, assignmentID string, status domain.AssignmentStatus) (Outcome, error) {
	if !status.Valid() {
		return OutcomeNotFound, apperrors.NewValidationError("validation failed", map[string]any{"status": "unknown assignment status"})
	}
	return s.setStatus(ctx, actor, assignmentID, status)
}

func (s *VolunteerService) setStatus(ctx context.Context, actor *domain.User, assignmentID string, status domain.AssignmentStatus) (Outcome, error) {
	updated, err := s.assignments.UpdateStatus(ctx, assignmentID, status, s.now())
	if err != nil {
		if missing, err := absent(err); !missing {
			return OutcomeNotFound, apperrors.MapError(err)
		}
		return OutcomeNotFound, nil
	}
	s.publish(ctx, events.EventAssignmentStatusChanged, actor, updated)
	return OutcomeApplied, nil
}

// Cancel deletes the actor's own assignment. The linked request is untouched.
func (s *VolunteerService) Cancel(ctx context.Context, actor *domain.User, assignmentID string) (Outcome, error) {
	assignment, outcome, err := s.lookup(ctx, assignmentID)
	if err != nil || !outcome.Applied() {
		return outcome, err
	}
	if o := ownership(actor, assignment.VolunteerID); !o.Applied() {
		return o, nil
	}
	if err := s.assignments.Delete(ctx, assignmentID); err != nil {
		return OutcomeNotFound, apperrors.MapError(err)
	}
	s.publish(ctx, events.EventAssignmentCancelled, actor, assignment)
	return OutcomeApplied, nil
}

// AdminDelete removes any assignment; absent ids are ignored.
func (s *VolunteerService) AdminDelete(ctx context.Context, assignmentID string) error {
	if err := s.assignments.Delete(ctx, assignmentID); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// IsAssigned reports whether the volunteer already claimed the request.
func (s *VolunteerService) IsAssigned(ctx context.Context, volunteerID, requestID string) (bool, error) {
	ok, err := s.assignments.Exists(ctx, volunteerID, requestID)
	if err != nil {
		return false, apperrors.MapError(err)
	}
	return ok, nil
}

// Get returns an assignment by id.
func (s *VolunteerService) Get(ctx context.Context, assignmentID string) (*domain.Assignment, Outcome, error) {
	return s.lookup(ctx, assignmentID)
}

// ListForVolunteer returns the volunteer's assignments, newest first.
func (s *VolunteerService) ListForVolunteer(ctx context.Context, volunteerID string) ([]domain.Assignment, error) {
	return s.List(ctx, repository.AssignmentFilter{VolunteerID: &volunteerID})
}

// List runs an arbitrary filter; used by the admin surface.
func (s *VolunteerService) List(ctx context.Context, filter repository.AssignmentFilter) ([]domain.Assignment, error) {
	assignments, err := s.assignments.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return assignments, nil
}

// Counts aggregates totals, optionally for a single volunteer.
func (s *VolunteerService) Counts(ctx context.Context, volunteerID *string) (AssignmentCounts, error) {
	var counts AssignmentCounts
	total, err := s.assignments.Count(ctx, repository.AssignmentFilter{VolunteerID: volunteerID})
	if err != nil {
		return counts, apperrors.MapError(err)
	}
	completed := domain.AssignmentStatusCompleted
	done, err := s.assignments.Count(ctx, repository.AssignmentFilter{VolunteerID: volunteerID, Status: &completed})
	if err != nil {
		return counts, apperrors.MapError(err)
	}
	counts.Total, counts.Completed = total, done
	return counts, nil
}

func (s *VolunteerService) lookup(ctx context.Context, assignmentID string) (*domain.Assignment, Outcome, error) {
	assignment, err := s.assignments.GetByID(ctx, assignmentID)
	if err != nil {
		if missing, err := absent(err); !missing {
			return nil, OutcomeNotFound, apperrors.MapError(err)
		}
		return nil, OutcomeNotFound, nil
	}
	return assignment, OutcomeApplied, nil
}

func (s *VolunteerService) publish(ctx context.Context, eventType events.EventType, actor *domain.User, a *domain.Assignment) {
	s.events.publish(ctx, events.New(eventType, a.ID, actor, events.AssignmentPayload{
		VolunteerID: a.VolunteerID,
		RequestID:   a.RequestID,
		Status:      a.Status,
		Fulfilled:   eventType == events.EventAssignmentStatusChanged && a.Status == domain.AssignmentStatusCompleted,
	}))
}
