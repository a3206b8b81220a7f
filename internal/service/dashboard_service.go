package service

import (
	"context"

	"github.com/sara-relief/relief-service/internal/config"
	"github.com/sara-relief/relief-service/internal/domain"
	"github.com/sara-relief/relief-service/internal/repository"
)

// AdminDashboard summarizes the whole system.
type AdminDashboard struct {
	Users           UserCounts
	Resources       ResourceCounts
	Requests        RequestCounts
	Assignments     AssignmentCounts
	RecentResources []domain.Resource
	RecentRequests  []domain.Request
}

// DonorDashboard summarizes a donor's resources.
type DonorDashboard struct {
	Resources []domain.Resource
	Counts    ResourceCounts
}

// VictimDashboard summarizes a victim's requests and what is on offer.
type VictimDashboard struct {
	Requests           []domain.Request
	AvailableResources []domain.Resource
	Counts             RequestCounts
}

// VolunteerDashboard summarizes a volunteer's assignments and the open queue.
type VolunteerDashboard struct {
	Assignments       []domain.Assignment
	AvailableRequests []domain.Request
	Counts            AssignmentCounts
}

// HomePage is the anonymous landing summary.
type HomePage struct {
	RecentResources []domain.Resource
	UrgentRequests  []domain.Request
}

// DashboardService composes the stores into per-role summaries.
type DashboardService struct {
	users      *UserService
	resources  *ResourceService
	requests   *RequestService
	volunteers *VolunteerService
	limits     config.DashboardConfig
}

// NewDashboardService creates the service.
func NewDashboardService(users *UserService, resources *ResourceService, requests *RequestService, volunteers *VolunteerService, limits config.DashboardConfig) *DashboardService {
	return &DashboardService{users: users, resources: resources, requests: requests, volunteers: volunteers, limits: limits}
}

// Home returns visible resources and the most urgent open requests.
func (s *DashboardService) Home(ctx context.Context) (*HomePage, error) {
	resources, err := s.resources.ListVisible(ctx, nil, "", s.limits.HomeRecentLimit)
	if err != nil {
		return nil, err
	}
	requests, err := s.requests.ListOpen(ctx, nil, "", s.limits.HomeRecentLimit)
	if err != nil {
		return nil, err
	}
	return &HomePage{RecentResources: resources, UrgentRequests: requests}, nil
}

// Admin returns system-wide counts and the most recent entities.
func (s *DashboardService) Admin(ctx context.Context) (*AdminDashboard, error) {
	var (
		d   AdminDashboard
		err error
	)
	if d.Users, err = s.users.Counts(ctx); err != nil {
		return nil, err
	}
	if d.Resources, err = s.resources.Counts(ctx, nil); err != nil {
		return nil, err
	}
	if d.Requests, err = s.requests.Counts(ctx, nil); err != nil {
		return nil, err
	}
	if d.Assignments, err = s.volunteers.Counts(ctx, nil); err != nil {
		return nil, err
	}
	limit := s.limits.AdminRecentLimit
	if d.RecentResources, err = s.resources.List(ctx, repository.ResourceFilter{Limit: limit}); err != nil {
		return nil, err
	}
	if d.RecentRequests, err = s.requests.List(ctx, repository.RequestFilter{Limit: limit}); err != nil {
		return nil, err
	}
	return &d, nil
}

// Donor returns the donor's resources and counts.
func (s *DashboardService) Donor(ctx context.Context, user *domain.User) (*DonorDashboard, error) {
	resources, err := s.resources.ListByOwner(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	counts, err := s.resources.Counts(ctx, &user.ID)
	if err != nil {
		return nil, err
	}
	return &DonorDashboard{Resources: resources, Counts: counts}, nil
}

// Victim returns the victim's requests and a slice of visible resources.
func (s *DashboardService) Victim(ctx context.Context, user *domain.User) (*VictimDashboard, error) {
	requests, err := s.requests.ListByOwner(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	resources, err := s.resources.ListVisible(ctx, nil, "", s.limits.RoleDashboardLimit)
	if err != nil {
		return nil, err
	}
	counts, err := s.requests.Counts(ctx, &user.ID)
	if err != nil {
		return nil, err
	}
	return &VictimDashboard{Requests: requests, AvailableResources: resources, Counts: counts}, nil
}

// Volunteer returns the volunteer's assignments and the open queue.
func (s *DashboardService) Volunteer(ctx context.Context, user *domain.User) (*VolunteerDashboard, error) {
	assignments, err := s.volunteers.ListForVolunteer(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	requests, err := s.requests.ListOpen(ctx, nil, "", s.limits.RoleDashboardLimit)
	if err != nil {
		return nil, err
	}
	counts, err := s.volunteers.Counts(ctx, &user.ID)
	if err != nil {
		return nil, err
	}
	return &VolunteerDashboard{Assignments: assignments, AvailableRequests: requests, Counts: counts}, nil
}
