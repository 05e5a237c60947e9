package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
)

const (
	csrfCookieName = "baseapp_csrf"
	csrfHeaderName = "X-CSRF-Token"
	csrfContextKey = "csrf"
)

// CSRFConfig guards cookie-authenticated writes. Requests that carry an API
// key or no session cookie at all cannot be forged from a browser, so they
// skip the check.
func CSRFConfig(cookieSecure bool) csrf.Config {
	return csrf.Config{
		KeyLookup:      "header:" + csrfHeaderName,
		CookieName:     csrfCookieName,
		CookieSameSite: "Lax",
		CookieHTTPOnly: true,
		CookieSecure:   cookieSecure,
		ContextKey:     csrfContextKey,
		Next:           skipsCSRF,
	}
}

func skipsCSRF(c *fiber.Ctx) bool {
	if strings.TrimSpace(c.Get(apiKeyHeader)) != "" {
		return true
	}
	return strings.TrimSpace(c.Cookies(authCookieName)) == ""
}

// exposeCSRFToken echoes the session's token in a response header. The cookie
// stays httpOnly, so this header is how clients learn what to send back.
func exposeCSRFToken(c *fiber.Ctx) error {
	if token := csrfToken(c); token != "" {
		c.Set(csrfHeaderName, token)
	}
	return c.Next()
}
