package domain

import (
	"strings"
	"time"
)

// Role is the single role an account carries for its lifetime.
type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleDonor     Role = "DONOR"
	RoleVolunteer Role = "VOLUNTEER"
	RoleVictim    Role = "VICTIM"
)

// Roles lists every role in display order.
var Roles = []Role{RoleAdmin, RoleDonor, RoleVolunteer, RoleVictim}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleDonor, RoleVolunteer, RoleVictim:
		return true
	}
	return false
}

// In reports whether r is one of allowed.
func (r Role) In(allowed ...Role) bool {
	for _, candidate := range allowed {
		if r == candidate {
			return true
		}
	}
	return false
}

// ParseRole normalizes user input into a Role.
func ParseRole(val string) (Role, bool) {
	role := Role(strings.ToUpper(strings.TrimSpace(val)))
	return role, role.Valid()
}

// User is an account of any role.
type User struct {
	ID           string
	Username     string
	Email        string
	FullName     string
	PasswordHash string
	Role         Role
	Enabled      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin is true for administrators.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// CanModify reports whether u may mutate an entity owned by ownerID.
func (u *User) CanModify(ownerID string) bool {
	if u == nil {
		return false
	}
	return u.ID == ownerID || u.Role == RoleAdmin
}
