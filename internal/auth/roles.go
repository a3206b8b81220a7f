package auth

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/sara-relief/relief-service/internal/domain"
)

// RequireRole ensures the caller's role is one of allowed.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		}
		if !user.Role.In(allowed...) {
			return fiber.NewError(http.StatusForbidden, "insufficient role")
		}
		return c.Next()
	}
}

// RequireAdmin admits administrators only.
func RequireAdmin() fiber.Handler {
	return RequireRole(domain.RoleAdmin)
}

// RequireRoleOrAdmin admits role and administrators.
func RequireRoleOrAdmin(role domain.Role) fiber.Handler {
	return RequireRole(role, domain.RoleAdmin)
}

// RequireAuthenticated ensures any caller is authenticated.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if CurrentUser(c) == nil {
			return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		}
		return c.Next()
	}
}
