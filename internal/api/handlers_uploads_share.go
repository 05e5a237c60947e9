package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ShareUpload is public: the owner id and upload id in the path identify the
// file, and the response is a short-lived presigned download URL.
func (handler *Handler) ShareUpload(c *fiber.Ctx) error {
	userID := strings.TrimSpace(c.Params("user_id"))
	uploadID, ok := parseIDParam(c, "id")
	if userID == "" || !ok {
		return apiError(c, fiber.StatusNotFound, "not found")
	}

	link, err := handler.shareService.ShareLink(c.UserContext(), userID, uploadID)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to share upload")
	}

	if acceptsJSON(c) {
		return c.JSON(link)
	}
	return c.Redirect(link.URL, fiber.StatusFound)
}
