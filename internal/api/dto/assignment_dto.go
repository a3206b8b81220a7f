package dto

import (
	"time"

	"github.com/sara-relief/relief-service/internal/domain"
)

// ClaimRequest carries optional volunteer notes.
type ClaimRequest struct {
	Notes string `json:"notes" form:"notes" validate:"max=1000"`
}

// StatusRequest is the body of every status-change endpoint. Allowed values
// depend on the entity and are checked by the handler.
type StatusRequest struct {
	Status string `json:"status" form:"status" validate:"required,notblank"`
}

// AssignmentResponse is the JSON view of a volunteer assignment.
type AssignmentResponse struct {
	ID          string                  `json:"id"`
	VolunteerID string                  `json:"volunteer_id"`
	RequestID   string                  `json:"request_id"`
	Status      domain.AssignmentStatus `json:"status"`
	Notes       string                  `json:"notes"`
	AssignedAt  time.Time               `json:"assigned_at"`
	CompletedAt *time.Time              `json:"completed_at,omitempty"`
}

// NewAssignmentResponse maps an assignment.
func NewAssignmentResponse(a *domain.Assignment) AssignmentResponse {
	return AssignmentResponse{
		ID:          a.ID,
		VolunteerID: a.VolunteerID,
		RequestID:   a.RequestID,
		Status:      a.Status,
		Notes:       a.Notes,
		AssignedAt:  a.AssignedAt,
		CompletedAt: a.CompletedAt,
	}
}

// NewAssignmentResponses maps a slice of assignments.
func NewAssignmentResponses(assignments []domain.Assignment) []AssignmentResponse {
	out := make([]AssignmentResponse, 0, len(assignments))
	for i := range assignments {
		out = append(out, NewAssignmentResponse(&assignments[i]))
	}
	return out
}

// RequestDetailResponse is a request as seen by a volunteer.
type RequestDetailResponse struct {
	Request  RequestResponse `json:"request"`
	Assigned bool            `json:"is_assigned"`
}
