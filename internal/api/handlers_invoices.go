package api

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// InvoicedForMonth reports the invoiced amount for the month named in the
// path, for example /invoices/month/2024-03 or /invoices/month/March%202024.
func (handler *Handler) InvoicedForMonth(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	label := c.Params("month")
	if unescaped, err := url.PathUnescape(label); err == nil {
		label = unescaped
	}
	label = strings.TrimSpace(label)
	amount, err := handler.userService.InvoicedAmountForMonth(c.UserContext(), *user, label)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to sum invoices")
	}
	return c.JSON(fiber.Map{"month": label, "amount": amount})
}
