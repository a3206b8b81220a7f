package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sara-relief/relief-service/internal/api/dto"
	"github.com/sara-relief/relief-service/internal/domain"
	"github.com/sara-relief/relief-service/internal/repository"
	"github.com/sara-relief/relief-service/internal/service"
)

const adminUsersRoute = "/admin/users"

// AdminHandler is the administrator surface. Status and verify calls on an
// absent id answer 204 like a successful update.
type AdminHandler struct {
	dashboards *service.DashboardService
	users      *service.UserService
	resources  *service.ResourceService
	requests   *service.RequestService
	volunteers *service.VolunteerService
}

// AdminDependencies bundles the services behind the admin surface.
type AdminDependencies struct {
	Dashboards *service.DashboardService
	Users      *service.UserService
	Resources  *service.ResourceService
	Requests   *service.RequestService
	Volunteers *service.VolunteerService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(deps AdminDependencies) *AdminHandler {
	return &AdminHandler{
		dashboards: deps.Dashboards,
		users:      deps.Users,
		resources:  deps.Resources,
		requests:   deps.Requests,
		volunteers: deps.Volunteers,
	}
}

// Dashboard GET /admin/dashboard.
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	d, err := h.dashboards.Admin(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAdminDashboardResponse(d)})
}

// ListUsers GET /admin/users?role=.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	role, err := queryEnum(c, "role", domain.ParseRole)
	if err != nil {
		return err
	}
	users, err := h.users.List(c.UserContext(), role)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponses(users)})
}

// ToggleUserStatus POST /admin/users/:id/toggle-status.
func (h *AdminHandler) ToggleUserStatus(c *fiber.Ctx) error {
	user, outcome, err := h.users.ToggleStatus(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	if !outcome.Applied() {
		return seeOther(c, adminUsersRoute)
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// DeleteUser DELETE /admin/users/:id.
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	if err := h.users.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListResources GET /admin/resources?type=&status=&verified=.
func (h *AdminHandler) ListResources(c *fiber.Ctx) error {
	var (
		filter repository.ResourceFilter
		err    error
	)
	if filter.Type, err = queryEnum(c, "type", domain.ParseResourceType); err != nil {
		return err
	}
	if filter.Status, err = queryEnum(c, "status", domain.ParseResourceStatus); err != nil {
		return err
	}
	if filter.Verified, err = queryBool(c, "verified"); err != nil {
		return err
	}
	resources, err := h.resources.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewResourceResponses(resources)})
}

// VerifyResource POST /admin/resources/:id/verify.
func (h *AdminHandler) VerifyResource(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	if _, err := h.resources.Verify(c.UserContext(), user, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetResourceStatus POST /admin/resources/:id/status.
func (h *AdminHandler) SetResourceStatus(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	status, err := parseStatus(c, domain.ParseResourceStatus)
	if err != nil {
		return err
	}
	if _, err := h.resources.SetStatus(c.UserContext(), user, c.Params("id"), status); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteResource DELETE /admin/resources/:id.
func (h *AdminHandler) DeleteResource(c *fiber.Ctx) error {
	if err := h.resources.AdminDelete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListRequests GET /admin/requests?status=&urgency=.
func (h *AdminHandler) ListRequests(c *fiber.Ctx) error {
	var (
		filter repository.RequestFilter
		err    error
	)
	if filter.Status, err = queryEnum(c, "status", domain.ParseRequestStatus); err != nil {
		return err
	}
	if filter.Urgency, err = queryEnum(c, "urgency", domain.ParseUrgency); err != nil {
		return err
	}
	requests, err := h.requests.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRequestResponses(requests)})
}

// SetRequestStatus POST /admin/requests/:id/status.
func (h *AdminHandler) SetRequestStatus(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	status, err := parseStatus(c, domain.ParseRequestStatus)
	if err != nil {
		return err
	}
	if _, err := h.requests.SetStatus(c.UserContext(), user, c.Params("id"), status); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteRequest DELETE /admin/requests/:id.
func (h *AdminHandler) DeleteRequest(c *fiber.Ctx) error {
	if err := h.requests.AdminDelete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListAssignments GET /admin/assignments?status=. Defaults to ASSIGNED.
func (h *AdminHandler) ListAssignments(c *fiber.Ctx) error {
	status, err := queryEnum(c, "status", domain.ParseAssignmentStatus)
	if err != nil {
		return err
	}
	if status == nil {
		assigned := domain.AssignmentStatusAssigned
		status = &assigned
	}
	assignments, err := h.volunteers.List(c.UserContext(), repository.AssignmentFilter{Status: status})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAssignmentResponses(assignments)})
}

// SetAssignmentStatus POST /admin/assignments/:id/status.
func (h *AdminHandler) SetAssignmentStatus(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	status, err := parseStatus(c, domain.ParseAssignmentStatus)
	if err != nil {
		return err
	}
	if _, err := h.volunteers.AdminSetAssignmentStatus(c.UserContext(), user, c.Params("id"), status); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteAssignment DELETE /admin/assignments/:id.
func (h *AdminHandler) DeleteAssignment(c *fiber.Ctx) error {
	if err := h.volunteers.AdminDelete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
