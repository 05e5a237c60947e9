package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Use(exposeCSRFToken)
	registerPageRoutes(app, handler)
	registerUserRoutes(app, handler)
	registerAccountRoutes(app, handler)
	registerResourceRoutes(app, handler)
}

func registerPageRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)
	app.Get("/", handler.Index)
	app.Get("/pages/index", handler.Index)
	app.Get("/dashboard", handler.AuthRequired, handler.ShowDashboard)
	app.Get("/user", handler.AuthRequired, handler.ShowDashboard)
}

func registerUserRoutes(app *fiber.App, handler *Handler) {
	users := app.Group("/users")
	users.Post("", handler.Register)
	users.Put("", handler.AuthRequired, handler.UpdateProfile)
	users.Delete("", handler.AuthRequired, handler.DeleteUser)

	users.Post("/login", handler.Login)
	users.Post("/logout", handler.Logout)
	users.Delete("/logout", handler.Logout)

	users.Post("/password", handler.ForgotPassword)
	users.Put("/password", handler.ResetPassword)
}

func registerAccountRoutes(app *fiber.App, handler *Handler) {
	account := app.Group("/account", handler.AuthRequired)
	account.Get("", handler.ShowAccount)
	account.Post("/members", handler.AdminOnly, handler.AddMember)
	account.Put("/plan", handler.ChangePlan)
}

func registerResourceRoutes(app *fiber.App, handler *Handler) {
	// Public share links sit under /uploads, so they must be matched before
	// the authenticated uploads group.
	app.Get("/uploads/:user_id/share/:id", handler.ShareUpload)

	registerResource(app, handler, "projects", handler.projects)
	registerResource(app, handler, "issues", handler.issues)
	registerResource(app, handler, "uploads", handler.uploads)
	registerResource(app, handler, "clients", handler.clients)
	registerResource(app, handler, "tasks", handler.tasks)

	invoices := registerResource(app, handler, "invoices", handler.invoices)
	invoices.Get("/month/:month", handler.InvoicedForMonth)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
