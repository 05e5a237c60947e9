package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const appName = "baseapp"

func (handler *Handler) Health(c *fiber.Ctx) error {
	sqlDB, err := handler.db.DB()
	if err != nil {
		return apiError(c, fiber.StatusServiceUnavailable, "database unavailable")
	}
	if err := sqlDB.PingContext(c.UserContext()); err != nil {
		return apiError(c, fiber.StatusServiceUnavailable, "database unavailable")
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

// Index describes the service and, when the request is authenticated, who is
// signed in.
func (handler *Handler) Index(c *fiber.Ctx) error {
	payload := fiber.Map{
		"name":          appName,
		"authenticated": false,
	}
	if user, err := handler.authenticateRequest(c); err == nil && user != nil {
		payload["authenticated"] = true
		payload["user"] = newUserView(user)
	}
	return c.JSON(payload)
}

func (handler *Handler) NotFound(c *fiber.Ctx) error {
	return apiError(c, fiber.StatusNotFound, "not found: "+strings.TrimSpace(c.Path()))
}
