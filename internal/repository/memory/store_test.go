package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sara-relief/relief-service/internal/domain"
	"github.com/sara-relief/relief-service/internal/repository"
)

type fixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

func newTestStore() *Store {
	clock := &fixedClock{now: time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)}
	return NewStore(WithClock(clock.Now))
}

func mustUser(t *testing.T, s *Store, username string, role domain.Role) *domain.User {
	t.Helper()
	user := &domain.User{Username: username, Email: username + "@relief.test", Role: role, Enabled: true}
	require.NoError(t, s.Users().Create(context.Background(), user))
	return user
}

func mustRequest(t *testing.T, s *Store, owner string, urgency domain.UrgencyLevel) *domain.Request {
	t.Helper()
	req := &domain.Request{
		OwnerID:        owner,
		Title:          "Need " + string(urgency),
		ResourceType:   domain.ResourceTypeWater,
		QuantityNeeded: 1,
		Location:       "Riverside",
		Urgency:        urgency,
		Status:         domain.RequestStatusOpen,
	}
	require.NoError(t, s.Requests().Create(context.Background(), req))
	return req
}

func TestUserUniqueness(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()
	mustUser(t, s, "amira", domain.RoleDonor)

	err := s.Users().Create(ctx, &domain.User{Username: "amira", Email: "other@relief.test", Role: domain.RoleDonor})
	assert.ErrorIs(t, err, repository.ErrConflict)

	err = s.Users().Create(ctx, &domain.User{Username: "other", Email: "AMIRA@relief.test", Role: domain.RoleDonor})
	assert.ErrorIs(t, err, repository.ErrConflict)

	found, err := s.Users().GetByEmail(ctx, "Amira@Relief.test")
	require.NoError(t, err)
	assert.Equal(t, "amira", found.Username)

	_, err = s.Users().GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserListAndCountByRole(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()
	mustUser(t, s, "d1", domain.RoleDonor)
	mustUser(t, s, "d2", domain.RoleDonor)
	mustUser(t, s, "v1", domain.RoleVolunteer)

	role := domain.RoleDonor
	users, err := s.Users().List(ctx, repository.UserFilter{Role: &role})
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "d2", users[0].Username)

	n, err := s.Users().Count(ctx, repository.UserFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestVisibleResourcesFollowVerification(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()
	donor := mustUser(t, s, "donor", domain.RoleDonor)

	res := &domain.Resource{
		OwnerID:  donor.ID,
		Name:     "Blankets",
		Type:     domain.ResourceTypeBlankets,
		Quantity: 50,
		Location: "Depot",
		Status:   domain.ResourceStatusAvailable,
	}
	require.NoError(t, s.Resources().Create(ctx, res))

	visible, err := s.Resources().List(ctx, repository.VisibleResources())
	require.NoError(t, err)
	assert.Empty(t, visible)

	res.Verified = true
	require.NoError(t, s.Resources().Update(ctx, res))
	visible, err = s.Resources().List(ctx, repository.VisibleResources())
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, domain.ResourceStatusAvailable, visible[0].Status)

	res.Verified = false
	require.NoError(t, s.Resources().Update(ctx, res))
	visible, err = s.Resources().List(ctx, repository.VisibleResources())
	require.NoError(t, err)
	assert.Empty(t, visible)
}

func TestOpenRequestsOrderedByUrgency(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()
	victim := mustUser(t, s, "victim", domain.RoleVictim)
	low := mustRequest(t, s, victim.ID, domain.UrgencyLow)
	critical := mustRequest(t, s, victim.ID, domain.UrgencyCritical)

	open, err := s.Requests().List(ctx, repository.OpenRequests())
	require.NoError(t, err)
	require.Len(t, open, 2)
	assert.Equal(t, critical.ID, open[0].ID)
	assert.Equal(t, low.ID, open[1].ID)

	limited := repository.OpenRequests()
	limited.Limit = 1
	open, err = s.Requests().List(ctx, limited)
	require.NoError(t, err)
	assert.Len(t, open, 1)
}

func TestAssignmentConflictAndPropagation(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()
	victim := mustUser(t, s, "victim", domain.RoleVictim)
	vol := mustUser(t, s, "vol", domain.RoleVolunteer)
	req := mustRequest(t, s, victim.ID, domain.UrgencyHigh)

	first := &domain.Assignment{VolunteerID: vol.ID, RequestID: req.ID, Status: domain.AssignmentStatusAssigned}
	require.NoError(t, s.Assignments().Create(ctx, first))
	assert.False(t, first.AssignedAt.IsZero())

	second := &domain.Assignment{VolunteerID: vol.ID, RequestID: req.ID, Status: domain.AssignmentStatusAssigned}
	assert.ErrorIs(t, s.Assignments().Create(ctx, second), repository.ErrConflict)
	n, err := s.Assignments().Count(ctx, repository.AssignmentFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	at := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	updated, err := s.Assignments().UpdateStatus(ctx, first.ID, domain.AssignmentStatusCompleted, at)
	require.NoError(t, err)
	require.NotNil(t, updated.CompletedAt)
	assert.Equal(t, at, *updated.CompletedAt)

	stored, err := s.Requests().GetByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusFulfilled, stored.Status)

	_, err = s.Assignments().UpdateStatus(ctx, "missing", domain.AssignmentStatusCompleted, at)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestConcurrentClaimsCreateOneAssignment(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()
	victim := mustUser(t, s, "victim", domain.RoleVictim)
	vol := mustUser(t, s, "vol", domain.RoleVolunteer)
	req := mustRequest(t, s, victim.ID, domain.UrgencyHigh)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- s.Assignments().Create(ctx, &domain.Assignment{VolunteerID: vol.ID, RequestID: req.ID, Status: domain.AssignmentStatusAssigned})
		}()
	}
	wg.Wait()
	close(errs)

	ok := 0
	for err := range errs {
		if err == nil {
			ok++
		} else {
			assert.ErrorIs(t, err, repository.ErrConflict)
		}
	}
	assert.Equal(t, 1, ok)
}

func TestDeleteIsIdempotentAndCascades(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()
	victim := mustUser(t, s, "victim", domain.RoleVictim)
	vol := mustUser(t, s, "vol", domain.RoleVolunteer)
	req := mustRequest(t, s, victim.ID, domain.UrgencyMedium)
	a := &domain.Assignment{VolunteerID: vol.ID, RequestID: req.ID, Status: domain.AssignmentStatusAssigned}
	require.NoError(t, s.Assignments().Create(ctx, a))

	require.NoError(t, s.Users().Delete(ctx, victim.ID))
	require.NoError(t, s.Users().Delete(ctx, victim.ID))

	_, err := s.Requests().GetByID(ctx, req.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = s.Assignments().GetByID(ctx, a.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.NoError(t, s.Requests().Delete(ctx, req.ID))
	assert.NoError(t, s.Resources().Delete(ctx, "missing"))
	assert.NoError(t, s.Assignments().Delete(ctx, a.ID))
}
