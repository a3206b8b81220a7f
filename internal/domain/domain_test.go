package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRoleIn(t *testing.T) {
	assert.True(t, RoleDonor.In(RoleDonor, RoleAdmin))
	assert.True(t, RoleAdmin.In(RoleDonor, RoleAdmin))
	assert.False(t, RoleVictim.In(RoleDonor, RoleAdmin))
	assert.False(t, RoleVictim.In())
}

func TestParseRole(t *testing.T) {
	role, ok := ParseRole(" volunteer ")
	assert.True(t, ok)
	assert.Equal(t, RoleVolunteer, role)

	_, ok = ParseRole("staff")
	assert.False(t, ok)
}

func TestUserCanModify(t *testing.T) {
	donor := &User{ID: "u-1", Role: RoleDonor}
	admin := &User{ID: "u-2", Role: RoleAdmin}

	assert.True(t, donor.CanModify("u-1"))
	assert.False(t, donor.CanModify("u-3"))
	assert.True(t, admin.CanModify("u-3"))

	var nobody *User
	assert.False(t, nobody.CanModify("u-1"))
}

func TestResourceVisible(t *testing.T) {
	tests := []struct {
		name     string
		status   ResourceStatus
		verified bool
		want     bool
	}{
		{"available and verified", ResourceStatusAvailable, true, true},
		{"available unverified", ResourceStatusAvailable, false, false},
		{"reserved verified", ResourceStatusReserved, true, false},
		{"expired unverified", ResourceStatusExpired, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Resource{Status: tt.status, Verified: tt.verified}
			assert.Equal(t, tt.want, r.Visible())
		})
	}
}

func TestUrgencyRank(t *testing.T) {
	assert.Greater(t, UrgencyCritical.Rank(), UrgencyHigh.Rank())
	assert.Greater(t, UrgencyHigh.Rank(), UrgencyMedium.Rank())
	assert.Greater(t, UrgencyMedium.Rank(), UrgencyLow.Rank())
	assert.Equal(t, -1, UrgencyLevel("SOON").Rank())
}

func TestParseEnums(t *testing.T) {
	rt, ok := ParseResourceType("first_aid")
	assert.True(t, ok)
	assert.Equal(t, ResourceTypeFirstAid, rt)

	_, ok = ParseResourceStatus("gone")
	assert.False(t, ok)

	rs, ok := ParseRequestStatus("fulfilled")
	assert.True(t, ok)
	assert.Equal(t, RequestStatusFulfilled, rs)

	as, ok := ParseAssignmentStatus("in_progress")
	assert.True(t, ok)
	assert.Equal(t, AssignmentStatusInProgress, as)
}

func TestSessionTTL(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := Session{ExpiresAt: now.Add(time.Hour)}
	assert.Equal(t, time.Hour, s.TTL(now))
	assert.Equal(t, time.Duration(0), s.TTL(now.Add(2*time.Hour)))
}
