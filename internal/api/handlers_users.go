package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/baseapp/internal/services"
)

// UpdateProfile edits the signed-in user. An invite code in the body is
// accepted and ignored.
func (handler *Handler) UpdateProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := profileInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	updated, err := handler.provisioner.Update(c.UserContext(), user.ID, services.UpdateProfileInput{
		FirstName:            input.FirstName,
		LastName:             input.LastName,
		Email:                input.Email,
		AvatarURL:            input.AvatarURL,
		InviteCode:           input.InviteCode,
		CurrentPassword:      input.CurrentPassword,
		Password:             input.Password,
		PasswordConfirmation: input.PasswordConfirmation,
	})
	if err != nil {
		return handler.respondServiceError(c, err, "failed to update profile")
	}
	return c.JSON(fiber.Map{"ok": true, "user": newUserView(updated)})
}

// DeleteUser removes the signed-in user together with everything it owns.
func (handler *Handler) DeleteUser(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	if err := handler.accountService.DeleteUser(c.UserContext(), *user); err != nil {
		return handler.respondServiceError(c, err, "failed to delete account")
	}
	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{"ok": true})
}

// ShowDashboard serves both /dashboard and /user.
func (handler *Handler) ShowDashboard(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	summary, err := handler.userService.Summary(c.UserContext(), *user)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to load dashboard")
	}
	return c.JSON(summary)
}
