package dto

import (
	"strings"
	"time"

	"github.com/sara-relief/relief-service/internal/domain"
	"github.com/sara-relief/relief-service/internal/service"
)

// ResourceRequest is the donor form for creating or editing a resource.
type ResourceRequest struct {
	Name        string                `json:"name" form:"name" validate:"required,notblank,max=200"`
	Description string                `json:"description" form:"description" validate:"max=2000"`
	Type        domain.ResourceType   `json:"type" form:"type" validate:"required,oneof=FOOD WATER SHELTER MEDICINE CLOTHING BLANKETS FIRST_AID TOOLS OTHER"`
	Quantity    int                   `json:"quantity" form:"quantity" validate:"gt=0"`
	Location    string                `json:"location" form:"location" validate:"required,notblank,max=255"`
	ContactInfo string                `json:"contact_info" form:"contact_info" validate:"max=255"`
	Status      domain.ResourceStatus `json:"status" form:"status" validate:"omitempty,oneof=AVAILABLE RESERVED DELIVERED EXPIRED"`
}

// Normalize upper-cases enum fields.
func (r *ResourceRequest) Normalize() {
	r.Type = domain.ResourceType(upper(string(r.Type)))
	r.Status = domain.ResourceStatus(upper(string(r.Status)))
}

// Input converts the payload for the service layer.
func (r ResourceRequest) Input() service.ResourceInput {
	return service.ResourceInput{
		Name:        r.Name,
		Description: r.Description,
		Type:        r.Type,
		Quantity:    r.Quantity,
		Location:    r.Location,
		ContactInfo: r.ContactInfo,
		Status:      r.Status,
	}
}

// ResourceResponse is the JSON view of a resource.
type ResourceResponse struct {
	ID          string                `json:"id"`
	OwnerID     string                `json:"owner_id"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Type        domain.ResourceType   `json:"type"`
	Quantity    int                   `json:"quantity"`
	Location    string                `json:"location"`
	ContactInfo string                `json:"contact_info"`
	Status      domain.ResourceStatus `json:"status"`
	Verified    bool                  `json:"verified"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

// NewResourceResponse maps a resource.
func NewResourceResponse(r *domain.Resource) ResourceResponse {
	return ResourceResponse{
		ID:          r.ID,
		OwnerID:     r.OwnerID,
		Name:        r.Name,
		Description: r.Description,
		Type:        r.Type,
		Quantity:    r.Quantity,
		Location:    r.Location,
		ContactInfo: r.ContactInfo,
		Status:      r.Status,
		Verified:    r.Verified,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// NewResourceResponses maps a slice of resources.
func NewResourceResponses(resources []domain.Resource) []ResourceResponse {
	out := make([]ResourceResponse, 0, len(resources))
	for i := range resources {
		out = append(out, NewResourceResponse(&resources[i]))
	}
	return out
}

func upper(val string) string {
	return strings.ToUpper(strings.TrimSpace(val))
}
