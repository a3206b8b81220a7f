package repository

import (
	"fmt"
	"strings"

	"github.com/sara-relief/relief-service/internal/domain"
)

// predicates accumulates ANDed SQL conditions with positional arguments.
type predicates struct {
	clauses []string
	args    []any
}

// add appends a clause; format must contain a single %d for the placeholder index.
func (p *predicates) add(format string, arg any) {
	p.args = append(p.args, arg)
	p.clauses = append(p.clauses, fmt.Sprintf(format, len(p.args)))
}

func (p *predicates) where() string {
	if len(p.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(p.clauses, " AND ")
}

func (p *predicates) limit(n int) string {
	if n <= 0 {
		return ""
	}
	p.args = append(p.args, n)
	return fmt.Sprintf(" LIMIT $%d", len(p.args))
}

// Match reports whether v satisfies every predicate.
func Match[T any](v T, preds []func(T) bool) bool {
	for _, pred := range preds {
		if !pred(v) {
			return false
		}
	}
	return true
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// UserFilter narrows user listings. Nil fields are ignored.
type UserFilter struct {
	Role    *domain.Role
	Enabled *bool
	Limit   int
}

func (f UserFilter) sql() *predicates {
	p := &predicates{}
	if f.Role != nil {
		p.add("role=$%d", *f.Role)
	}
	if f.Enabled != nil {
		p.add("enabled=$%d", *f.Enabled)
	}
	return p
}

// Predicates returns the in-process form of the filter.
func (f UserFilter) Predicates() []func(domain.User) bool {
	var preds []func(domain.User) bool
	if f.Role != nil {
		role := *f.Role
		preds = append(preds, func(u domain.User) bool { return u.Role == role })
	}
	if f.Enabled != nil {
		enabled := *f.Enabled
		preds = append(preds, func(u domain.User) bool { return u.Enabled == enabled })
	}
	return preds
}

// ResourceFilter narrows resource listings. Location is a case-insensitive substring.
type ResourceFilter struct {
	OwnerID  *string
	Type     *domain.ResourceType
	Status   *domain.ResourceStatus
	Verified *bool
	Location string
	Limit    int
}

// VisibleResources returns a filter matching resources shown on public listings.
func VisibleResources() ResourceFilter {
	status := domain.ResourceStatusAvailable
	verified := true
	return ResourceFilter{Status: &status, Verified: &verified}
}

func (f ResourceFilter) sql() *predicates {
	p := &predicates{}
	if f.OwnerID != nil {
		p.add("owner_id=$%d", *f.OwnerID)
	}
	if f.Type != nil {
		p.add("type=$%d", *f.Type)
	}
	if f.Status != nil {
		p.add("status=$%d", *f.Status)
	}
	if f.Verified != nil {
		p.add("verified=$%d", *f.Verified)
	}
	if loc := strings.TrimSpace(f.Location); loc != "" {
		p.add("strpos(lower(location), lower($%d)) > 0", loc)
	}
	return p
}

// Predicates returns the in-process form of the filter.
func (f ResourceFilter) Predicates() []func(domain.Resource) bool {
	var preds []func(domain.Resource) bool
	if f.OwnerID != nil {
		owner := *f.OwnerID
		preds = append(preds, func(r domain.Resource) bool { return r.OwnerID == owner })
	}
	if f.Type != nil {
		typ := *f.Type
		preds = append(preds, func(r domain.Resource) bool { return r.Type == typ })
	}
	if f.Status != nil {
		status := *f.Status
		preds = append(preds, func(r domain.Resource) bool { return r.Status == status })
	}
	if f.Verified != nil {
		verified := *f.Verified
		preds = append(preds, func(r domain.Resource) bool { return r.Verified == verified })
	}
	if loc := strings.TrimSpace(f.Location); loc != "" {
		preds = append(preds, func(r domain.Resource) bool { return containsFold(r.Location, loc) })
	}
	return preds
}

// RequestOrder selects how request listings are sorted.
type RequestOrder int

const (
	// OrderNewest sorts by creation time, newest first.
	OrderNewest RequestOrder = iota
	// OrderUrgency sorts by urgency descending, then creation time ascending.
	OrderUrgency
)

// RequestFilter narrows request listings. Location is a case-insensitive substring.
type RequestFilter struct {
	OwnerID      *string
	ResourceType *domain.ResourceType
	Status       *domain.RequestStatus
	Urgency      *domain.UrgencyLevel
	Location     string
	Order        RequestOrder
	Limit        int
}

// OpenRequests returns a filter for the volunteer-facing queue.
func OpenRequests() RequestFilter {
	status := domain.RequestStatusOpen
	return RequestFilter{Status: &status, Order: OrderUrgency}
}

func (f RequestFilter) sql() *predicates {
	p := &predicates{}
	if f.OwnerID != nil {
		p.add("owner_id=$%d", *f.OwnerID)
	}
	if f.ResourceType != nil {
		p.add("resource_type=$%d", *f.ResourceType)
	}
	if f.Status != nil {
		p.add("status=$%d", *f.Status)
	}
	if f.Urgency != nil {
		p.add("urgency=$%d", *f.Urgency)
	}
	if loc := strings.TrimSpace(f.Location); loc != "" {
		p.add("strpos(lower(location), lower($%d)) > 0", loc)
	}
	return p
}

// Predicates returns the in-process form of the filter.
func (f RequestFilter) Predicates() []func(domain.Request) bool {
	var preds []func(domain.Request) bool
	if f.OwnerID != nil {
		owner := *f.OwnerID
		preds = append(preds, func(r domain.Request) bool { return r.OwnerID == owner })
	}
	if f.ResourceType != nil {
		typ := *f.ResourceType
		preds = append(preds, func(r domain.Request) bool { return r.ResourceType == typ })
	}
	if f.Status != nil {
		status := *f.Status
		preds = append(preds, func(r domain.Request) bool { return r.Status == status })
	}
	if f.Urgency != nil {
		urgency := *f.Urgency
		preds = append(preds, func(r domain.Request) bool { return r.Urgency == urgency })
	}
	if loc := strings.TrimSpace(f.Location); loc != "" {
		preds = append(preds, func(r domain.Request) bool { return containsFold(r.Location, loc) })
	}
	return preds
}

// Less orders two requests according to f.Order.
func (f RequestFilter) Less(a, b domain.Request) bool {
	if f.Order == OrderUrgency {
		if ra, rb := a.Urgency.Rank(), b.Urgency.Rank(); ra != rb {
			return ra > rb
		}
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.CreatedAt.After(b.CreatedAt)
}

func (f RequestFilter) orderBy() string {
	if f.Order == OrderUrgency {
		return ` ORDER BY CASE urgency WHEN 'CRITICAL' THEN 3 WHEN 'HIGH' THEN 2 WHEN 'MEDIUM' THEN 1 ELSE 0 END DESC, created_at ASC`
	}
	return " ORDER BY created_at DESC"
}

// AssignmentFilter narrows assignment listings.
type AssignmentFilter struct {
	VolunteerID *string
	RequestID   *string
	Status      *domain.AssignmentStatus
	Limit       int
}

func (f AssignmentFilter) sql() *predicates {
	p := &predicates{}
	if f.VolunteerID != nil {
		p.add("volunteer_id=$%d", *f.VolunteerID)
	}
	if f.RequestID != nil {
		p.add("request_id=$%d", *f.RequestID)
	}
	if f.Status != nil {
		p.add("status=$%d", *f.Status)
	}
	return p
}

// Predicates returns the in-process form of the filter.
func (f AssignmentFilter) Predicates() []func(domain.Assignment) bool {
	var preds []func(domain.Assignment) bool
	if f.VolunteerID != nil {
		volunteer := *f.VolunteerID
		preds = append(preds, func(a domain.Assignment) bool { return a.VolunteerID == volunteer })
	}
	if f.RequestID != nil {
		request := *f.RequestID
		preds = append(preds, func(a domain.Assignment) bool { return a.RequestID == request })
	}
	if f.Status != nil {
		status := *f.Status
		preds = append(preds, func(a domain.Assignment) bool { return a.Status == status })
	}
	return preds
}
