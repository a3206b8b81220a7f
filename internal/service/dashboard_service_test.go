package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sara-relief/relief-service/internal/domain"
)

func TestDashboards(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	admin := f.user(t, "root", domain.RoleAdmin)
	donor := f.user(t, "donor", domain.RoleDonor)
	victim := f.user(t, "victim", domain.RoleVictim)
	vol := f.user(t, "vol", domain.RoleVolunteer)

	for i := 0; i < 7; i++ {
		in := blanketsInput()
		in.Name = fmt.Sprintf("Blankets %d", i)
		r, err := f.resources.Create(ctx, donor, in)
		require.NoError(t, err)
		_, err = f.resources.Verify(ctx, admin, r.ID)
		require.NoError(t, err)
	}
	var reqs []*domain.Request
	for i := 0; i < 12; i++ {
		reqs = append(reqs, f.request(t, victim, domain.UrgencyLevels[i%len(domain.UrgencyLevels)]))
	}
	a, _, err := f.volunteers.Claim(ctx, vol, reqs[0].ID, "")
	require.NoError(t, err)
	_, err = f.volunteers.AdvanceStatus(ctx, vol, a.ID, domain.AssignmentStatusCompleted)
	require.NoError(t, err)

	home, err := f.dashboards.Home(ctx)
	require.NoError(t, err)
	assert.Len(t, home.RecentResources, 6)
	assert.Len(t, home.UrgentRequests, 6)
	assert.Equal(t, domain.UrgencyCritical, home.UrgentRequests[0].Urgency)

	ad, err := f.dashboards.Admin(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, ad.Users.Total)
	assert.Equal(t, 7, ad.Resources.Total)
	assert.Equal(t, 7, ad.Resources.Verified)
	assert.Equal(t, 12, ad.Requests.Total)
	assert.Equal(t, 11, ad.Requests.Open)
	assert.Equal(t, 1, ad.Requests.Fulfilled)
	assert.Equal(t, AssignmentCounts{Total: 1, Completed: 1}, ad.Assignments)
	assert.Len(t, ad.RecentResources, 5)
	assert.Len(t, ad.RecentRequests, 5)

	dd, err := f.dashboards.Donor(ctx, donor)
	require.NoError(t, err)
	assert.Len(t, dd.Resources, 7)
	assert.Equal(t, 7, dd.Counts.Available)

	vd, err := f.dashboards.Victim(ctx, victim)
	require.NoError(t, err)
	assert.Len(t, vd.Requests, 12)
	assert.Len(t, vd.AvailableResources, 7)
	assert.Equal(t, 1, vd.Counts.Fulfilled)

	vold, err := f.dashboards.Volunteer(ctx, vol)
	require.NoError(t, err)
	assert.Len(t, vold.Assignments, 1)
	assert.Len(t, vold.AvailableRequests, 10)
	assert.Equal(t, 1, vold.Counts.Completed)
}
