package api

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/baseapp/internal/db"
	"github.com/terraincognita07/baseapp/internal/services"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func validationFailed(c *fiber.Ctx, verr *services.ValidationError) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
		"error":  "validation failed",
		"fields": verr.Fields,
	})
}

func acceptsJSON(c *fiber.Ctx) bool {
	return strings.Contains(strings.ToLower(c.Get("Accept")), "application/json")
}

func csrfToken(c *fiber.Ctx) string {
	token, _ := c.Locals(csrfContextKey).(string)
	return token
}

func parseIDParam(c *fiber.Ctx, name string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(c.Params(name)), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// respondServiceError maps service sentinels onto statuses. Anything unknown
// is logged and reported as a 500 without detail.
func (handler *Handler) respondServiceError(c *fiber.Ctx, err error, fallback string) error {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		return validationFailed(c, verr)
	case errors.Is(err, services.ErrResourceNotFound), db.IsNotFound(err):
		return apiError(c, fiber.StatusNotFound, "not found")
	case errors.Is(err, services.ErrEntitlementExceeded):
		return apiError(c, fiber.StatusForbidden, "plan limit reached")
	case errors.Is(err, services.ErrUploadLimitReached):
		return apiError(c, fiber.StatusForbidden, "upload limit reached")
	case errors.Is(err, services.ErrAdminRequired):
		return apiError(c, fiber.StatusForbidden, "admin access required")
	case errors.Is(err, services.ErrAccountOwnerRequired):
		return apiError(c, fiber.StatusForbidden, "account owner access required")
	case errors.Is(err, services.ErrAccountHasMembers):
		return apiError(c, fiber.StatusConflict, "account still has other members")
	case errors.Is(err, services.ErrUnknownPlan):
		return apiError(c, fiber.StatusUnprocessableEntity, "unknown plan")
	case errors.Is(err, services.ErrInvalidMonthLabel):
		return apiError(c, fiber.StatusBadRequest, "invalid month")
	case errors.Is(err, services.ErrSharingUnavailable):
		return apiError(c, fiber.StatusServiceUnavailable, "sharing unavailable")
	}

	handler.logger.Error(c.UserContext(), fallback, "error", err, "path", c.Path())
	return apiError(c, fiber.StatusInternalServerError, fallback)
}
