package dto

import (
	"time"

	"github.com/sara-relief/relief-service/internal/domain"
	"github.com/sara-relief/relief-service/internal/service"
)

// AidRequest is the victim form for creating or editing a request.
type AidRequest struct {
	Title          string               `json:"title" form:"title" validate:"required,notblank,max=200"`
	Description    string               `json:"description" form:"description" validate:"max=2000"`
	ResourceType   domain.ResourceType  `json:"resource_type" form:"resource_type" validate:"required,oneof=FOOD WATER SHELTER MEDICINE CLOTHING BLANKETS FIRST_AID TOOLS OTHER"`
	QuantityNeeded int                  `json:"quantity_needed" form:"quantity_needed" validate:"gt=0"`
	Location       string               `json:"location" form:"location" validate:"required,notblank,max=255"`
	Urgency        domain.UrgencyLevel  `json:"urgency" form:"urgency" validate:"required,oneof=LOW MEDIUM HIGH CRITICAL"`
	NeededBy       *time.Time           `json:"needed_by" form:"needed_by"`
}

// Normalize upper-cases enum fields.
func (r *AidRequest) Normalize() {
	r.ResourceType = domain.ResourceType(upper(string(r.ResourceType)))
	r.Urgency = domain.UrgencyLevel(upper(string(r.Urgency)))
}

// Input converts the payload for the service layer.
func (r AidRequest) Input() service.RequestInput {
	return service.RequestInput{
		Title:          r.Title,
		Description:    r.Description,
		ResourceType:   r.ResourceType,
		QuantityNeeded: r.QuantityNeeded,
		Location:       r.Location,
		Urgency:        r.Urgency,
		NeededBy:       r.NeededBy,
	}
}

// RequestResponse is the JSON view of an aid request.
type RequestResponse struct {
	ID             string               `json:"id"`
	OwnerID        string               `json:"owner_id"`
	Title          string               `json:"title"`
	Description    string               `json:"description"`
	ResourceType   domain.ResourceType  `json:"resource_type"`
	QuantityNeeded int                  `json:"quantity_needed"`
	Location       string               `json:"location"`
	Urgency        domain.UrgencyLevel  `json:"urgency"`
	Status         domain.RequestStatus `json:"status"`
	NeededBy       *time.Time           `json:"needed_by,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

// NewRequestResponse maps a request.
func NewRequestResponse(r *domain.Request) RequestResponse {
	return RequestResponse{
		ID:             r.ID,
		OwnerID:        r.OwnerID,
		Title:          r.Title,
		Description:    r.Description,
		ResourceType:   r.ResourceType,
		QuantityNeeded: r.QuantityNeeded,
		Location:       r.Location,
		Urgency:        r.Urgency,
		NeededBy:       r.NeededBy,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

// NewRequestResponses maps a slice of requests.
func NewRequestResponses(requests []domain.Request) []RequestResponse {
	out := make([]RequestResponse, 0, len(requests))
	for i := range requests {
		out = append(out, NewRequestResponse(&requests[i]))
	}
	return out
}
