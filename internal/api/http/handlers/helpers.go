package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/sara-relief/relief-service/internal/api/dto"
	"github.com/sara-relief/relief-service/internal/auth"
	"github.com/sara-relief/relief-service/internal/domain"
	"github.com/sara-relief/relief-service/internal/service"
	apperrors "github.com/sara-relief/relief-service/pkg/util"
)

type normalizer interface {
	Normalize()
}

// parseBody decodes the JSON or form body into dst and runs its validate tags.
func parseBody(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if n, ok := dst.(normalizer); ok {
		n.Normalize()
	}
	return apperrors.ValidateStruct(dst)
}

// currentUser returns the authenticated caller or an UNAUTHORIZED error.
func currentUser(c *fiber.Ctx) (*domain.User, error) {
	user := auth.CurrentUser(c)
	if user == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	return user, nil
}

// seeOther redirects to a façade list route after a no-op.
func seeOther(c *fiber.Ctx, location string) error {
	return c.Redirect(location, fiber.StatusSeeOther)
}

// afterMutation answers 204 when the outcome applied and 303 otherwise.
func afterMutation(c *fiber.Ctx, outcome service.Outcome, listRoute string) error {
	if !outcome.Applied() {
		return seeOther(c, listRoute)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func queryEnum[T ~string](c *fiber.Ctx, key string, parse func(string) (T, bool)) (*T, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	val, ok := parse(raw)
	if !ok {
		return nil, apperrors.NewValidationError("validation failed", map[string]any{key: "unknown value " + raw})
	}
	return &val, nil
}

func queryBool(c *fiber.Ctx, key string) (*bool, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	val, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, apperrors.NewValidationError("validation failed", map[string]any{key: "must be true or false"})
	}
	return &val, nil
}

func parseStatus[T ~string](c *fiber.Ctx, parse func(string) (T, bool)) (T, error) {
	var req dto.StatusRequest
	if err := parseBody(c, &req); err != nil {
		return "", err
	}
	val, ok := parse(req.Status)
	if !ok {
		return "", apperrors.NewValidationError("validation failed", map[string]any{"status": "unknown value " + req.Status})
	}
	return val, nil
}
