package repository

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sara-relief/relief-service/internal/domain"
)

func TestResourceFilterSQL(t *testing.T) {
	typ := domain.ResourceTypeBlankets
	f := VisibleResources()
	f.Type = &typ
	f.Location = " Harbor "
	f.Limit = 6

	p := f.sql()
	assert.Equal(t, " WHERE type=$1 AND status=$2 AND verified=$3 AND strpos(lower(location), lower($4)) > 0", p.where())
	assert.Equal(t, " LIMIT $5", p.limit(f.Limit))
	assert.Equal(t, []any{typ, domain.ResourceStatusAvailable, true, "Harbor", 6}, p.args)
}

func TestEmptyFilterHasNoWhereClause(t *testing.T) {
	p := AssignmentFilter{}.sql()
	assert.Empty(t, p.where())
	assert.Empty(t, p.limit(0))
	assert.Empty(t, p.args)
}

func TestVisibleResourcePredicates(t *testing.T) {
	preds := VisibleResources().Predicates()

	cases := []struct {
		name     string
		resource domain.Resource
		want     bool
	}{
		{"available and verified", domain.Resource{Status: domain.ResourceStatusAvailable, Verified: true}, true},
		{"unverified", domain.Resource{Status: domain.ResourceStatusAvailable}, false},
		{"reserved", domain.Resource{Status: domain.ResourceStatusReserved, Verified: true}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Match(tc.resource, preds))
			assert.Equal(t, tc.resource.Visible(), Match(tc.resource, preds))
		})
	}
}

func TestRequestLocationPredicateIsCaseInsensitive(t *testing.T) {
	urgency := domain.UrgencyHigh
	f := RequestFilter{Urgency: &urgency, Location: "north"}
	preds := f.Predicates()

	assert.True(t, Match(domain.Request{Urgency: domain.UrgencyHigh, Location: "North Shelter"}, preds))
	assert.False(t, Match(domain.Request{Urgency: domain.UrgencyLow, Location: "North Shelter"}, preds))
	assert.False(t, Match(domain.Request{Urgency: domain.UrgencyHigh, Location: "South"}, preds))
}

func TestOpenRequestsOrdering(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	reqs := []domain.Request{
		{ID: "low", Urgency: domain.UrgencyLow, CreatedAt: base},
		{ID: "critical-late", Urgency: domain.UrgencyCritical, CreatedAt: base.Add(2 * time.Hour)},
		{ID: "critical-early", Urgency: domain.UrgencyCritical, CreatedAt: base.Add(time.Hour)},
		{ID: "medium", Urgency: domain.UrgencyMedium, CreatedAt: base},
	}

	f := OpenRequests()
	sort.SliceStable(reqs, func(i, j int) bool { return f.Less(reqs[i], reqs[j]) })

	ids := make([]string, len(reqs))
	for i, r := range reqs {
		ids[i] = r.ID
	}
	assert.Equal(t, []string{"critical-early", "critical-late", "medium", "low"}, ids)
	assert.Contains(t, f.orderBy(), "DESC, created_at ASC")
}

func TestNewestFirstOrdering(t *testing.T) {
	base := time.Now()
	f := RequestFilter{}
	assert.True(t, f.Less(domain.Request{CreatedAt: base.Add(time.Minute)}, domain.Request{CreatedAt: base}))
	assert.Equal(t, " ORDER BY created_at DESC", f.orderBy())
}
