package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/baseapp/internal/services"
)

// Register provisions a new user with its own account and signs it in.
func (handler *Handler) Register(c *fiber.Ctx) error {
	input := registrationInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	ctx := c.UserContext()
	user, err := handler.provisioner.Create(ctx, services.CreateUserInput{
		Email:                input.Email,
		Password:             input.Password,
		PasswordConfirmation: input.PasswordConfirmation,
		FirstName:            input.FirstName,
		LastName:             input.LastName,
		AvatarURL:            input.AvatarURL,
		InviteCode:           input.InviteCode,
	})
	if err != nil {
		return handler.respondServiceError(c, err, "failed to create account")
	}

	if err := handler.authService.RecordSignIn(ctx, user, c.IP(), false); err != nil {
		return handler.respondServiceError(c, err, "failed to create session")
	}
	if err := handler.setAuthCookie(c, user, false); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true, "user": newUserView(user)})
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	limiterKey := requestLimiterKey(c)
	now := time.Now()
	if handler.loginLimiter.blocked(limiterKey, now) {
		return apiError(c, fiber.StatusTooManyRequests, "too many login attempts")
	}

	input := credentialsInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	ctx := c.UserContext()
	user, err := handler.authService.Authenticate(ctx, input.Email, input.Password)
	if errors.Is(err, services.ErrAuthCredentialsInvalid) {
		handler.loginLimiter.record(limiterKey, now)
		return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
	}
	if err != nil {
		return handler.respondServiceError(c, err, "failed to sign in")
	}
	handler.loginLimiter.reset(limiterKey)

	if err := handler.authService.RecordSignIn(ctx, &user, c.IP(), input.RememberMe); err != nil {
		return handler.respondServiceError(c, err, "failed to sign in")
	}
	if err := handler.setAuthCookie(c, &user, input.RememberMe); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}

	return c.JSON(fiber.Map{"ok": true, "user": newUserView(&user)})
}

// Logout always clears the cookie; a recognised session also drops its
// remember-me stamp.
func (handler *Handler) Logout(c *fiber.Ctx) error {
	if user, err := handler.authenticateRequest(c); err == nil {
		if err := handler.authService.ForgetUser(c.UserContext(), user.ID); err != nil {
			handler.logger.Warn(c.UserContext(), "forget user on logout", "user_id", user.ID, "error", err)
		}
	}
	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{"ok": true})
}
