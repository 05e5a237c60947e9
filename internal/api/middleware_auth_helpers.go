package api

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/terraincognita07/baseapp/internal/models"
)

var (
	errMissingCredentials = errors.New("missing credentials")
	errInvalidToken       = errors.New("invalid token")
)

// authenticateRequest prefers the X-API-Key header and falls back to the
// sealed session cookie.
func (handler *Handler) authenticateRequest(c *fiber.Ctx) (*models.User, error) {
	if apiKey := strings.TrimSpace(c.Get(apiKeyHeader)); apiKey != "" {
		user, err := handler.authService.FindByAPIKey(c.UserContext(), apiKey)
		if err != nil {
			return nil, err
		}
		return &user, nil
	}

	rawCookie := strings.TrimSpace(c.Cookies(authCookieName))
	if rawCookie == "" {
		return nil, errMissingCredentials
	}
	tokenValue, err := handler.cookieCodec.open(authCookiePurpose, rawCookie)
	if err != nil {
		return nil, errInvalidToken
	}

	claims := &authClaims{}
	token, err := jwt.ParseWithClaims(string(tokenValue), claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return handler.secretKey, nil
	})
	if err != nil || !token.Valid {
		return nil, errInvalidToken
	}
	if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(time.Now()) {
		return nil, errors.New("token expired")
	}

	user, err := handler.authService.FindByID(c.UserContext(), claims.UserID)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
