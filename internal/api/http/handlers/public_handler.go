package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sara-relief/relief-service/internal/api/dto"
	"github.com/sara-relief/relief-service/internal/domain"
	"github.com/sara-relief/relief-service/internal/service"
)

// PublicHandler serves the anonymous browse pages and the dashboard dispatch.
type PublicHandler struct {
	dashboards *service.DashboardService
	resources  *service.ResourceService
	requests   *service.RequestService
}

// NewPublicHandler constructs handler.
func NewPublicHandler(dashboards *service.DashboardService, resources *service.ResourceService, requests *service.RequestService) *PublicHandler {
	return &PublicHandler{dashboards: dashboards, resources: resources, requests: requests}
}

// Home GET /.
func (h *PublicHandler) Home(c *fiber.Ctx) error {
	home, err := h.dashboards.Home(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewHomeResponse(home)})
}

// Resources GET /resources?type=&location=.
func (h *PublicHandler) Resources(c *fiber.Ctx) error {
	return listVisibleResources(c, h.resources)
}

// Requests GET /requests?urgency=&location=.
func (h *PublicHandler) Requests(c *fiber.Ctx) error {
	return listOpenRequests(c, h.requests)
}

var dashboardRoutes = map[domain.Role]string{
	domain.RoleAdmin:     "/admin/dashboard",
	domain.RoleDonor:     "/donor/dashboard",
	domain.RoleVictim:    "/victim/dashboard",
	domain.RoleVolunteer: "/volunteer/dashboard",
}

// Dashboard GET /dashboard redirects to the caller's role dashboard.
func (h *PublicHandler) Dashboard(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	target, ok := dashboardRoutes[user.Role]
	if !ok {
		return seeOther(c, "/")
	}
	return seeOther(c, target)
}

func listVisibleResources(c *fiber.Ctx, resources *service.ResourceService) error {
	typ, err := queryEnum(c, "type", domain.ParseResourceType)
	if err != nil {
		return err
	}
	items, err := resources.ListVisible(c.UserContext(), typ, c.Query("location"), 0)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewResourceResponses(items)})
}

func listOpenRequests(c *fiber.Ctx, requests *service.RequestService) error {
	urgency, err := queryEnum(c, "urgency", domain.ParseUrgency)
	if err != nil {
		return err
	}
	items, err := requests.ListOpen(c.UserContext(), urgency, c.Query("location"), 0)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRequestResponses(items)})
}
