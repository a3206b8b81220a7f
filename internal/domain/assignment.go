package domain

import (
	"strings"
	"time"
)

// AssignmentStatus enumerates volunteer assignment states.
//
// ASSIGNED is the initial state. The usual path is ASSIGNED -> IN_PROGRESS ->
// COMPLETED, with CANCELLED reachable from either open state, but updates are
// not restricted to those edges.
type AssignmentStatus string

const (
	AssignmentStatusAssigned   AssignmentStatus = "ASSIGNED"
	AssignmentStatusInProgress AssignmentStatus = "IN_PROGRESS"
	AssignmentStatusCompleted  AssignmentStatus = "COMPLETED"
	AssignmentStatusCancelled  AssignmentStatus = "CANCELLED"
)

// AssignmentStatuses lists every assignment status.
var AssignmentStatuses = []AssignmentStatus{
	AssignmentStatusAssigned,
	AssignmentStatusInProgress,
	AssignmentStatusCompleted,
	AssignmentStatusCancelled,
}

// Valid reports whether s is a known status.
func (s AssignmentStatus) Valid() bool {
	switch s {
	case AssignmentStatusAssigned, AssignmentStatusInProgress, AssignmentStatusCompleted, AssignmentStatusCancelled:
		return true
	}
	return false
}

// ParseAssignmentStatus normalizes user input.
func ParseAssignmentStatus(val string) (AssignmentStatus, bool) {
	s := AssignmentStatus(strings.ToUpper(strings.TrimSpace(val)))
	return s, s.Valid()
}

// Assignment links a volunteer to a request they claimed.
type Assignment struct {
	ID          string
	VolunteerID string
	RequestID   string
	Status      AssignmentStatus
	Notes       string
	AssignedAt  time.Time
	CompletedAt *time.Time
}
