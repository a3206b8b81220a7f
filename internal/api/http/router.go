package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sara-relief/relief-service/internal/api/http/handlers"
	"github.com/sara-relief/relief-service/internal/auth"
	"github.com/sara-relief/relief-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Public         *handlers.PublicHandler
	Admin          *handlers.AdminHandler
	Donor          *handlers.DonorHandler
	Victim         *handlers.VictimHandler
	Volunteer      *handlers.VolunteerHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated(), cfg.Auth.Logout)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated(), cfg.Auth.Me)

	app.Get("/", cfg.Public.Home)
	app.Get("/resources", cfg.Public.Resources)
	app.Get("/requests", cfg.Public.Requests)
	app.Get("/dashboard", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated(), cfg.Public.Dashboard)

	admin := app.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	admin.Get("/dashboard", cfg.Admin.Dashboard)
	admin.Get("/users", cfg.Admin.ListUsers)
	admin.Post("/users/:id/toggle-status", cfg.Admin.ToggleUserStatus)
	admin.Delete("/users/:id", cfg.Admin.DeleteUser)
	admin.Get("/resources", cfg.Admin.ListResources)
	admin.Post("/resources/:id/verify", cfg.Admin.VerifyResource)
	admin.Post("/resources/:id/status", cfg.Admin.SetResourceStatus)
	admin.Delete("/resources/:id", cfg.Admin.DeleteResource)
	admin.Get("/requests", cfg.Admin.ListRequests)
	admin.Post("/requests/:id/status", cfg.Admin.SetRequestStatus)
	admin.Delete("/requests/:id", cfg.Admin.DeleteRequest)
	admin.Get("/assignments", cfg.Admin.ListAssignments)
	admin.Post("/assignments/:id/status", cfg.Admin.SetAssignmentStatus)
	admin.Delete("/assignments/:id", cfg.Admin.DeleteAssignment)

	donor := app.Group("/donor", cfg.AuthMiddleware.Handle, auth.RequireRoleOrAdmin(domain.RoleDonor))
	donor.Get("/dashboard", cfg.Donor.Dashboard)
	donor.Get("/resources", cfg.Donor.ListResources)
	donor.Post("/resources", cfg.Donor.CreateResource)
	donor.Get("/resources/:id", cfg.Donor.GetResource)
	donor.Put("/resources/:id", cfg.Donor.UpdateResource)
	donor.Delete("/resources/:id", cfg.Donor.DeleteResource)

	victim := app.Group("/victim", cfg.AuthMiddleware.Handle, auth.RequireRoleOrAdmin(domain.RoleVictim))
	victim.Get("/dashboard", cfg.Victim.Dashboard)
	victim.Get("/requests", cfg.Victim.ListRequests)
	victim.Post("/requests", cfg.Victim.CreateRequest)
	victim.Get("/requests/:id", cfg.Victim.GetRequest)
	victim.Put("/requests/:id", cfg.Victim.UpdateRequest)
	victim.Delete("/requests/:id", cfg.Victim.DeleteRequest)
	victim.Get("/resources", cfg.Victim.ListResources)
	victim.Get("/resources/:id", cfg.Victim.GetResource)

	volunteer := app.Group("/volunteer", cfg.AuthMiddleware.Handle, auth.RequireRoleOrAdmin(domain.RoleVolunteer))
	volunteer.Get("/dashboard", cfg.Volunteer.Dashboard)
	volunteer.Get("/requests", cfg.Volunteer.ListRequests)
	volunteer.Get("/requests/:id", cfg.Volunteer.GetRequest)
	volunteer.Post("/requests/:id/claim", cfg.Volunteer.Claim)
	volunteer.Get("/assignments", cfg.Volunteer.ListAssignments)
	volunteer.Post("/assignments/:id/status", cfg.Volunteer.AdvanceStatus)
	volunteer.Post("/assignments/:id/cancel", cfg.Volunteer.Cancel)
}
