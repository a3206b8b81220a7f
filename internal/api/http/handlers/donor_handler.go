package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sara-relief/relief-service/internal/api/dto"
	"github.com/sara-relief/relief-service/internal/service"
)

const donorResourcesRoute = "/donor/resources"

// DonorHandler lets donors manage the resources they offer.
type DonorHandler struct {
	dashboards *service.DashboardService
	resources  *service.ResourceService
}

// NewDonorHandler constructs handler.
func NewDonorHandler(dashboards *service.DashboardService, resources *service.ResourceService) *DonorHandler {
	return &DonorHandler{dashboards: dashboards, resources: resources}
}

// Dashboard GET /donor/dashboard.
func (h *DonorHandler) Dashboard(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	d, err := h.dashboards.Donor(c.UserContext(), user)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewDonorDashboardResponse(d)})
}

// ListResources GET /donor/resources.
func (h *DonorHandler) ListResources(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	resources, err := h.resources.ListByOwner(c.UserContext(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewResourceResponses(resources)})
}

// CreateResource POST /donor/resources.
func (h *DonorHandler) CreateResource(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req dto.ResourceRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	resource, err := h.resources.Create(c.UserContext(), user, req.Input())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewResourceResponse(resource)})
}

// GetResource GET /donor/resources/:id.
func (h *DonorHandler) GetResource(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	resource, outcome, err := h.resources.GetOwned(c.UserContext(), user, c.Params("id"))
	if err != nil {
		return err
	}
	if !outcome.Applied() {
		return seeOther(c, donorResourcesRoute)
	}
	return c.JSON(fiber.Map{"data": dto.NewResourceResponse(resource)})
}

// UpdateResource PUT /donor/resources/:id.
func (h *DonorHandler) UpdateResource(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req dto.ResourceRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	resource, outcome, err := h.resources.Update(c.UserContext(), user, c.Params("id"), req.Input())
	if err != nil {
		return err
	}
	if !outcome.Applied() {
		return seeOther(c, donorResourcesRoute)
	}
	return c.JSON(fiber.Map{"data": dto.NewResourceResponse(resource)})
}

// DeleteResource DELETE /donor/resources/:id. Absent ids answer 204.
func (h *DonorHandler) DeleteResource(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	outcome, err := h.resources.Delete(c.UserContext(), user, c.Params("id"))
	if err != nil {
		return err
	}
	if outcome == service.OutcomeNotOwner {
		return seeOther(c, donorResourcesRoute)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
