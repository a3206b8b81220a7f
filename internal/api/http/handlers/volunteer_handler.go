package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sara-relief/relief-service/internal/api/dto"
	"github.com/sara-relief/relief-service/internal/domain"
	"github.com/sara-relief/relief-service/internal/service"
)

const (
	volunteerRequestsRoute    = "/volunteer/requests"
	volunteerAssignmentsRoute = "/volunteer/assignments"
)

// VolunteerHandler exposes the claim and assignment lifecycle.
type VolunteerHandler struct {
	dashboards *service.DashboardService
	requests   *service.RequestService
	volunteers *service.VolunteerService
}

// NewVolunteerHandler constructs handler.
func NewVolunteerHandler(dashboards *service.DashboardService, requests *service.RequestService, volunteers *service.VolunteerService) *VolunteerHandler {
	return &VolunteerHandler{dashboards: dashboards, requests: requests, volunteers: volunteers}
}

// Dashboard GET /volunteer/dashboard.
func (h *VolunteerHandler) Dashboard(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	d, err := h.dashboards.Volunteer(c.UserContext(), user)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewVolunteerDashboardResponse(d)})
}

// ListRequests GET /volunteer/requests?urgency=&location=.
func (h *VolunteerHandler) ListRequests(c *fiber.Ctx) error {
	return listOpenRequests(c, h.requests)
}

// GetRequest GET /volunteer/requests/:id.
func (h *VolunteerHandler) GetRequest(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	request, outcome, err := h.requests.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	if !outcome.Applied() {
		return seeOther(c, volunteerRequestsRoute)
	}
	assigned, err := h.volunteers.IsAssigned(c.UserContext(), user.ID, request.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.RequestDetailResponse{
		Request:  dto.NewRequestResponse(request),
		Assigned: assigned,
	}})
}

// Claim POST /volunteer/requests/:id/claim.
func (h *VolunteerHandler) Claim(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req dto.ClaimRequest
	if len(c.Body()) > 0 {
		if err := parseBody(c, &req); err != nil {
			return err
		}
	}
	assignment, outcome, err := h.volunteers.Claim(c.UserContext(), user, c.Params("id"), req.Notes)
	if err != nil {
		return err
	}
	if !outcome.Applied() {
		return seeOther(c, volunteerRequestsRoute)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewAssignmentResponse(assignment)})
}

// ListAssignments GET /volunteer/assignments.
func (h *VolunteerHandler) ListAssignments(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	assignments, err := h.volunteers.ListForVolunteer(c.UserContext(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAssignmentResponses(assignments)})
}

// AdvanceStatus POST /volunteer/assignments/:id/status.
func (h *VolunteerHandler) AdvanceStatus(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	status, err := parseStatus(c, domain.ParseAssignmentStatus)
	if err != nil {
		return err
	}
	outcome, err := h.volunteers.AdvanceStatus(c.UserContext(), user, c.Params("id"), status)
	if err != nil {
		return err
	}
	return afterMutation(c, outcome, volunteerAssignmentsRoute)
}

// Cancel POST /volunteer/assignments/:id/cancel.
func (h *VolunteerHandler) Cancel(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	outcome, err := h.volunteers.Cancel(c.UserContext(), user, c.Params("id"))
	if err != nil {
		return err
	}
	return afterMutation(c, outcome, volunteerAssignmentsRoute)
}
