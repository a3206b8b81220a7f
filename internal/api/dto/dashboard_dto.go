package dto

import "github.com/sara-relief/relief-service/internal/service"

// HomeResponse is the anonymous landing page.
type HomeResponse struct {
	RecentResources []ResourceResponse `json:"recent_resources"`
	UrgentRequests  []RequestResponse  `json:"urgent_requests"`
}

// AdminDashboardResponse summarizes the system.
type AdminDashboardResponse struct {
	Users           service.UserCounts       `json:"users"`
	Resources       service.ResourceCounts   `json:"resources"`
	Requests        service.RequestCounts    `json:"requests"`
	Assignments     service.AssignmentCounts `json:"assignments"`
	RecentResources []ResourceResponse       `json:"recent_resources"`
	RecentRequests  []RequestResponse        `json:"recent_requests"`
}

// DonorDashboardResponse summarizes a donor's resources.
type DonorDashboardResponse struct {
	Resources []ResourceResponse     `json:"resources"`
	Counts    service.ResourceCounts `json:"counts"`
}

// VictimDashboardResponse summarizes a victim's requests.
type VictimDashboardResponse struct {
	Requests           []RequestResponse     `json:"requests"`
	AvailableResources []ResourceResponse    `json:"available_resources"`
	Counts             service.RequestCounts `json:"counts"`
}

// VolunteerDashboardResponse summarizes a volunteer's work.
type VolunteerDashboardResponse struct {
	Assignments       []AssignmentResponse     `json:"assignments"`
	AvailableRequests []RequestResponse        `json:"available_requests"`
	Counts            service.AssignmentCounts `json:"counts"`
}

func NewHomeResponse(h *service.HomePage) HomeResponse {
	return HomeResponse{
		RecentResources: NewResourceResponses(h.RecentResources),
		UrgentRequests:  NewRequestResponses(h.UrgentRequests),
	}
}

func NewAdminDashboardResponse(d *service.AdminDashboard) AdminDashboardResponse {
	return AdminDashboardResponse{
		Users:           d.Users,
		Resources:       d.Resources,
		Requests:        d.Requests,
		Assignments:     d.Assignments,
		RecentResources: NewResourceResponses(d.RecentResources),
		RecentRequests:  NewRequestResponses(d.RecentRequests),
	}
}

func NewDonorDashboardResponse(d *service.DonorDashboard) DonorDashboardResponse {
	return DonorDashboardResponse{Resources: NewResourceResponses(d.Resources), Counts: d.Counts}
}

func NewVictimDashboardResponse(d *service.VictimDashboard) VictimDashboardResponse {
	return VictimDashboardResponse{
		Requests:           NewRequestResponses(d.Requests),
		AvailableResources: NewResourceResponses(d.AvailableResources),
		Counts:             d.Counts,
	}
}

func NewVolunteerDashboardResponse(d *service.VolunteerDashboard) VolunteerDashboardResponse {
	return VolunteerDashboardResponse{
		Assignments:       NewAssignmentResponses(d.Assignments),
		AvailableRequests: NewRequestResponses(d.AvailableRequests),
		Counts:            d.Counts,
	}
}
