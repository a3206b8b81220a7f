package domain

import (
	"strings"
	"time"
)

// ResourceType classifies both donated resources and requested aid.
type ResourceType string

const (
	ResourceTypeFood     ResourceType = "FOOD"
	ResourceTypeWater    ResourceType = "WATER"
	ResourceTypeShelter  ResourceType = "SHELTER"
	ResourceTypeMedicine ResourceType = "MEDICINE"
	ResourceTypeClothing ResourceType = "CLOTHING"
	ResourceTypeBlankets ResourceType = "BLANKETS"
	ResourceTypeFirstAid ResourceType = "FIRST_AID"
	ResourceTypeTools    ResourceType = "TOOLS"
	ResourceTypeOther    ResourceType = "OTHER"
)

// ResourceTypes lists every resource type.
var ResourceTypes = []ResourceType{
	ResourceTypeFood,
	ResourceTypeWater,
	ResourceTypeShelter,
	ResourceTypeMedicine,
	ResourceTypeClothing,
	ResourceTypeBlankets,
	ResourceTypeFirstAid,
	ResourceTypeTools,
	ResourceTypeOther,
}

// Valid reports whether t is a known type.
func (t ResourceType) Valid() bool {
	for _, candidate := range ResourceTypes {
		if t == candidate {
			return true
		}
	}
	return false
}

// ParseResourceType normalizes user input.
func ParseResourceType(val string) (ResourceType, bool) {
	t := ResourceType(strings.ToUpper(strings.TrimSpace(val)))
	return t, t.Valid()
}

// ResourceStatus enumerates donation lifecycle states.
type ResourceStatus string

const (
	ResourceStatusAvailable ResourceStatus = "AVAILABLE"
	ResourceStatusReserved  ResourceStatus = "RESERVED"
	ResourceStatusDelivered ResourceStatus = "DELIVERED"
	ResourceStatusExpired   ResourceStatus = "EXPIRED"
)

// ResourceStatuses lists every resource status.
var ResourceStatuses = []ResourceStatus{
	ResourceStatusAvailable,
	ResourceStatusReserved,
	ResourceStatusDelivered,
	ResourceStatusExpired,
}

// Valid reports whether s is a known status.
func (s ResourceStatus) Valid() bool {
	switch s {
	case ResourceStatusAvailable, ResourceStatusReserved, ResourceStatusDelivered, ResourceStatusExpired:
		return true
	}
	return false
}

// ParseResourceStatus normalizes user input.
func ParseResourceStatus(val string) (ResourceStatus, bool) {
	s := ResourceStatus(strings.ToUpper(strings.TrimSpace(val)))
	return s, s.Valid()
}

// Resource is an item a donor offers.
type Resource struct {
	ID          string
	OwnerID     string
	Name        string
	Description string
	Type        ResourceType
	Quantity    int
	Location    string
	ContactInfo string
	Status      ResourceStatus
	Verified    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Visible is true when the resource may appear in public listings.
func (r *Resource) Visible() bool {
	return r.Status == ResourceStatusAvailable && r.Verified
}
