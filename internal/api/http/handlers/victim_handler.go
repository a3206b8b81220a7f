package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sara-relief/relief-service/internal/api/dto"
	"github.com/sara-relief/relief-service/internal/service"
)

const (
	victimRequestsRoute  = "/victim/requests"
	victimResourcesRoute = "/victim/resources"
)

// VictimHandler lets victims file requests and browse what is on offer.
type VictimHandler struct {
	dashboards *service.DashboardService
	requests   *service.RequestService
	resources  *service.ResourceService
}

// NewVictimHandler constructs handler.
func NewVictimHandler(dashboards *service.DashboardService, requests *service.RequestService, resources *service.ResourceService) *VictimHandler {
	return &VictimHandler{dashboards: dashboards, requests: requests, resources: resources}
}

// Dashboard GET /victim/dashboard.
func (h *VictimHandler) Dashboard(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	d, err := h.dashboards.Victim(c.UserContext(), user)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewVictimDashboardResponse(d)})
}

// ListRequests GET /victim/requests.
func (h *VictimHandler) ListRequests(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	requests, err := h.requests.ListByOwner(c.UserContext(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRequestResponses(requests)})
}

// CreateRequest POST /victim/requests.
func (h *VictimHandler) CreateRequest(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req dto.AidRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	request, err := h.requests.Create(c.UserContext(), user, req.Input())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewRequestResponse(request)})
}

// GetRequest GET /victim/requests/:id.
func (h *VictimHandler) GetRequest(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	request, outcome, err := h.requests.GetOwned(c.UserContext(), user, c.Params("id"))
	if err != nil {
		return err
	}
	if !outcome.Applied() {
		return seeOther(c, victimRequestsRoute)
	}
	return c.JSON(fiber.Map{"data": dto.NewRequestResponse(request)})
}

// UpdateRequest PUT /victim/requests/:id.
func (h *VictimHandler) UpdateRequest(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req dto.AidRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	request, outcome, err := h.requests.Update(c.UserContext(), user, c.Params("id"), req.Input())
	if err != nil {
		return err
	}
	if !outcome.Applied() {
		return seeOther(c, victimRequestsRoute)
	}
	return c.JSON(fiber.Map{"data": dto.NewRequestResponse(request)})
}

// DeleteRequest DELETE /victim/requests/:id. Absent ids answer 204.
func (h *VictimHandler) DeleteRequest(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	outcome, err := h.requests.Delete(c.UserContext(), user, c.Params("id"))
	if err != nil {
		return err
	}
	if outcome == service.OutcomeNotOwner {
		return seeOther(c, victimRequestsRoute)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListResources GET /victim/resources?type=&location=.
func (h *VictimHandler) ListResources(c *fiber.Ctx) error {
	return listVisibleResources(c, h.resources)
}

// GetResource GET /victim/resources/:id.
func (h *VictimHandler) GetResource(c *fiber.Ctx) error {
	resource, outcome, err := h.resources.GetVisible(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	if !outcome.Applied() {
		return seeOther(c, victimResourcesRoute)
	}
	return c.JSON(fiber.Map{"data": dto.NewResourceResponse(resource)})
}
