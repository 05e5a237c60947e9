package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/baseapp/internal/services"
)

// ForgotPassword answers the same way whether or not the email is known.
func (handler *Handler) ForgotPassword(c *fiber.Ctx) error {
	limiterKey := requestLimiterKey(c)
	now := time.Now()
	if handler.resetLimiter.blocked(limiterKey, now) {
		return apiError(c, fiber.StatusTooManyRequests, "too many reset attempts")
	}
	handler.resetLimiter.record(limiterKey, now)

	input := forgotPasswordInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	if err := handler.authService.RequestPasswordReset(c.UserContext(), input.Email); err != nil {
		return handler.respondServiceError(c, err, "failed to request password reset")
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) ResetPassword(c *fiber.Ctx) error {
	input := resetPasswordInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	ctx := c.UserContext()
	user, err := handler.authService.ResetPassword(ctx, input.ResetPasswordToken, input.Password, input.PasswordConfirmation)
	switch {
	case errors.Is(err, services.ErrPasswordResetTokenMissing), errors.Is(err, services.ErrPasswordResetTokenInvalid):
		return apiError(c, fiber.StatusUnprocessableEntity, "invalid reset token")
	case errors.Is(err, services.ErrPasswordResetTokenExpired):
		return apiError(c, fiber.StatusUnprocessableEntity, "expired reset token")
	case err != nil:
		return handler.respondServiceError(c, err, "failed to reset password")
	}

	if err := handler.authService.RecordSignIn(ctx, &user, c.IP(), false); err != nil {
		return handler.respondServiceError(c, err, "failed to sign in")
	}
	if err := handler.setAuthCookie(c, &user, false); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	return c.JSON(fiber.Map{"ok": true, "user": newUserView(&user)})
}
