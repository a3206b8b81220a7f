package domain

import (
	"strings"
	"time"
)

// UrgencyLevel orders requests for volunteers; higher rank is more urgent.
type UrgencyLevel string

const (
	UrgencyLow      UrgencyLevel = "LOW"
	UrgencyMedium   UrgencyLevel = "MEDIUM"
	UrgencyHigh     UrgencyLevel = "HIGH"
	UrgencyCritical UrgencyLevel = "CRITICAL"
)

// UrgencyLevels lists urgencies from least to most urgent.
var UrgencyLevels = []UrgencyLevel{UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyCritical}

// Rank returns the ordinal of u, or -1 when unknown.
func (u UrgencyLevel) Rank() int {
	for i, candidate := range UrgencyLevels {
		if u == candidate {
			return i
		}
	}
	return -1
}

// Valid reports whether u is a known urgency.
func (u UrgencyLevel) Valid() bool {
	return u.Rank() >= 0
}

// ParseUrgency normalizes user input.
func ParseUrgency(val string) (UrgencyLevel, bool) {
	u := UrgencyLevel(strings.ToUpper(strings.TrimSpace(val)))
	return u, u.Valid()
}

// RequestStatus enumerates aid request states.
type RequestStatus string

const (
	RequestStatusOpen       RequestStatus = "OPEN"
	RequestStatusInProgress RequestStatus = "IN_PROGRESS"
	RequestStatusFulfilled  RequestStatus = "FULFILLED"
	RequestStatusCancelled  RequestStatus = "CANCELLED"
)

// RequestStatuses lists every request status.
var RequestStatuses = []RequestStatus{
	RequestStatusOpen,
	RequestStatusInProgress,
	RequestStatusFulfilled,
	RequestStatusCancelled,
}

// Valid reports whether s is a known status.
func (s RequestStatus) Valid() bool {
	switch s {
	case RequestStatusOpen, RequestStatusInProgress, RequestStatusFulfilled, RequestStatusCancelled:
		return true
	}
	return false
}

// ParseRequestStatus normalizes user input.
func ParseRequestStatus(val string) (RequestStatus, bool) {
	s := RequestStatus(strings.ToUpper(strings.TrimSpace(val)))
	return s, s.Valid()
}

// Request is a victim's need for aid.
type Request struct {
	ID             string
	OwnerID        string
	Title          string
	Description    string
	ResourceType   ResourceType
	QuantityNeeded int
	Location       string
	Urgency        UrgencyLevel
	Status         RequestStatus
	NeededBy       *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
