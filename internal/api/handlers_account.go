package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/baseapp/internal/services"
)

func (handler *Handler) ShowAccount(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	details, err := handler.accountService.Details(c.UserContext(), *user)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to load account")
	}
	return c.JSON(details)
}

// AddMember provisions a user into the caller's account with the requested role.
func (handler *Handler) AddMember(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := registrationInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	member, err := handler.accountService.AddMember(c.UserContext(), *user, services.CreateUserInput{
		Email:                input.Email,
		Password:             input.Password,
		PasswordConfirmation: input.PasswordConfirmation,
		FirstName:            input.FirstName,
		LastName:             input.LastName,
		AvatarURL:            input.AvatarURL,
		InviteCode:           input.InviteCode,
		Role:                 input.Role,
	})
	if err != nil {
		return handler.respondServiceError(c, err, "failed to add member")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true, "user": newUserView(member)})
}

func (handler *Handler) ChangePlan(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := changePlanInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	account, err := handler.accountService.ChangePlan(c.UserContext(), *user, input.Plan)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to change plan")
	}
	return c.JSON(fiber.Map{"ok": true, "account": account})
}
