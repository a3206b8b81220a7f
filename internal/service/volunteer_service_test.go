package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sara-relief/relief-service/internal/domain"
	"github.com/sara-relief/relief-service/internal/events"
	"github.com/sara-relief/relief-service/internal/repository"
	apperrors "github.com/sara-relief/relief-service/pkg/util"
)

func TestClaimTwiceFailsWithDuplicateAssignment(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	victim := f.user(t, "victim", domain.RoleVictim)
	vol := f.user(t, "vol", domain.RoleVolunteer)
	req := f.request(t, victim, domain.UrgencyHigh)

	a, outcome, err := f.volunteers.Claim(ctx, vol, req.ID, "bringing a truck")
	require.NoError(t, err)
	require.Equal(t, OutcomeApplied, outcome)
	assert.Equal(t, domain.AssignmentStatusAssigned, a.Status)
	assert.False(t, a.AssignedAt.IsZero())
	assert.Nil(t, a.CompletedAt)

	_, _, err = f.volunteers.Claim(ctx, vol, req.ID, "")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeDuplicateAssignment))
	de := apperrors.ToDomainError(err)
	assert.Equal(t, 409, de.HTTPStatus)
	assert.Equal(t, "Volunteer is already assigned to this request", de.Message)

	counts, err := f.volunteers.Counts(ctx, &vol.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, counts.Total)
}

func TestClaimAllowsNonOpenRequests(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	victim := f.user(t, "victim", domain.RoleVictim)
	vol := f.user(t, "vol", domain.RoleVolunteer)
	req := f.request(t, victim, domain.UrgencyLow)

	_, err := f.requests.SetStatus(ctx, victim, req.ID, domain.RequestStatusFulfilled)
	require.NoError(t, err)

	_, outcome, err := f.volunteers.Claim(ctx, vol, req.ID, "")
	require.NoError(t, err)
	assert.Equal(t, OutcomeApplied, outcome)
}

func TestClaimUnknownRequestIsNoop(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	vol := f.user(t, "vol", domain.RoleVolunteer)

	a, outcome, err := f.volunteers.Claim(ctx, vol, "missing", "")
	require.NoError(t, err)
	assert.Nil(t, a)
	assert.Equal(t, OutcomeNotFound, outcome)
}

func TestCompletingAssignmentFulfillsRequest(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	victim := f.user(t, "victim", domain.RoleVictim)
	vol := f.user(t, "vol", domain.RoleVolunteer)
	req := f.request(t, victim, domain.UrgencyHigh)
	a, _, err := f.volunteers.Claim(ctx, vol, req.ID, "")
	require.NoError(t, err)
	f.drainEvents()

	outcome, err := f.volunteers.AdvanceStatus(ctx, vol, a.ID, domain.AssignmentStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, OutcomeApplied, outcome)

	stored, _, err := f.volunteers.Get(ctx, a.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.CompletedAt)
	assert.Equal(t, domain.AssignmentStatusCompleted, stored.Status)

	linked, _, err := f.requests.Get(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusFulfilled, linked.Status)

	emitted := f.drainEvents()
	require.Len(t, emitted, 1)
	assert.Equal(t, events.EventAssignmentStatusChanged, emitted[0].Type)
	payload, ok := emitted[0].Payload.(events.AssignmentPayload)
	require.True(t, ok)
	assert.True(t, payload.Fulfilled)
}

func TestAdminStatusUpdatePropagatesToo(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	admin := f.user(t, "root", domain.RoleAdmin)
	victim := f.user(t, "victim", domain.RoleVictim)
	vol := f.user(t, "vol", domain.RoleVolunteer)
	req := f.request(t, victim, domain.UrgencyHigh)
	a, _, err := f.volunteers.Claim(ctx, vol, req.ID, "")
	require.NoError(t, err)

	outcome, err := f.volunteers.AdminSetAssignmentStatus(ctx, admin, a.ID, domain.AssignmentStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, OutcomeApplied, outcome)

	linked, _, err := f.requests.Get(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusFulfilled, linked.Status)
}

func TestAdvanceStatusHasNoTransitionGuard(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	victim := f.user(t, "victim", domain.RoleVictim)
	vol := f.user(t, "vol", domain.RoleVolunteer)
	req := f.request(t, victim, domain.UrgencyHigh)
	a, _, err := f.volunteers.Claim(ctx, vol, req.ID, "")
	require.NoError(t, err)

	for _, status := range []domain.AssignmentStatus{
		domain.AssignmentStatusCancelled,
		domain.AssignmentStatusAssigned,
		domain.AssignmentStatusInProgress,
	} {
		outcome, err := f.volunteers.AdvanceStatus(ctx, vol, a.ID, status)
		require.NoError(t, err)
		assert.Equal(t, OutcomeApplied, outcome)
	}

	stored, _, err := f.volunteers.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AssignmentStatusInProgress, stored.Status)
	assert.Nil(t, stored.CompletedAt)

	_, err = f.volunteers.AdvanceStatus(ctx, vol, a.ID, domain.AssignmentStatus("DONE"))
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidationFailed))
}

func TestAdvanceStatusUnknownAssignmentIsNoop(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	vol := f.user(t, "vol", domain.RoleVolunteer)

	outcome, err := f.volunteers.AdvanceStatus(ctx, vol, "missing", domain.AssignmentStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, OutcomeNotFound, outcome)

	n, err := f.store.Assignments().Count(ctx, repository.AssignmentFilter{})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestForeignVolunteerCannotAdvanceOrCancel(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	victim := f.user(t, "victim", domain.RoleVictim)
	vol := f.user(t, "vol", domain.RoleVolunteer)
	other := f.user(t, "other", domain.RoleVolunteer)
	req := f.request(t, victim, domain.UrgencyHigh)
	a, _, err := f.volunteers.Claim(ctx, vol, req.ID, "")
	require.NoError(t, err)

	outcome, err := f.volunteers.AdvanceStatus(ctx, other, a.ID, domain.AssignmentStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, OutcomeNotOwner, outcome)

	outcome, err = f.volunteers.Cancel(ctx, other, a.ID)
	require.NoError(t, err)
	assert.Equal(t, OutcomeNotOwner, outcome)

	linked, _, err := f.requests.Get(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusOpen, linked.Status)
}

func TestCancelRemovesAssignmentAndKeepsRequestStatus(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	victim := f.user(t, "victim", domain.RoleVictim)
	vol := f.user(t, "vol", domain.RoleVolunteer)
	req := f.request(t, victim, domain.UrgencyHigh)
	_, err := f.requests.SetStatus(ctx, victim, req.ID, domain.RequestStatusInProgress)
	require.NoError(t, err)
	a, _, err := f.volunteers.Claim(ctx, vol, req.ID, "")
	require.NoError(t, err)

	assigned, err := f.volunteers.IsAssigned(ctx, vol.ID, req.ID)
	require.NoError(t, err)
	assert.True(t, assigned)

	outcome, err := f.volunteers.Cancel(ctx, vol, a.ID)
	require.NoError(t, err)
	assert.Equal(t, OutcomeApplied, outcome)

	_, outcome, err = f.volunteers.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, OutcomeNotFound, outcome)

	assigned, err = f.volunteers.IsAssigned(ctx, vol.ID, req.ID)
	require.NoError(t, err)
	assert.False(t, assigned)

	linked, _, err := f.requests.Get(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusInProgress, linked.Status)

	_, _, err = f.volunteers.Claim(ctx, vol, req.ID, "back again")
	assert.NoError(t, err)
}

func TestAdminAssignmentListingByStatus(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	victim := f.user(t, "victim", domain.RoleVictim)
	vol := f.user(t, "vol", domain.RoleVolunteer)
	first := f.request(t, victim, domain.UrgencyHigh)
	second := f.request(t, victim, domain.UrgencyLow)
	a1, _, err := f.volunteers.Claim(ctx, vol, first.ID, "")
	require.NoError(t, err)
	_, _, err = f.volunteers.Claim(ctx, vol, second.ID, "")
	require.NoError(t, err)
	_, err = f.volunteers.AdvanceStatus(ctx, vol, a1.ID, domain.AssignmentStatusInProgress)
	require.NoError(t, err)

	assigned := domain.AssignmentStatusAssigned
	list, err := f.volunteers.List(ctx, repository.AssignmentFilter{Status: &assigned})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, second.ID, list[0].RequestID)

	require.NoError(t, f.volunteers.AdminDelete(ctx, a1.ID))
	require.NoError(t, f.volunteers.AdminDelete(ctx, a1.ID))
}
