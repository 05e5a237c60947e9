package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/baseapp/internal/models"
)

const (
	authCookieName = "baseapp_auth"
	apiKeyHeader   = "X-API-Key"
	contextUserKey = "current_user"
)

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok
}
