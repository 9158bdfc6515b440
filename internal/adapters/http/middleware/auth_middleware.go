package middleware

import (
	"errors"
	"strings"

	"garderie-api/internal/config"
	"garderie-api/internal/core/domain"
	"garderie-api/internal/pkg/jwt"
	"garderie-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by AuthMiddleware
const (
	LocalUserID = "userID"
	LocalEmail  = "email"
	LocalName   = "name"
	LocalRole   = "role"
)

// AuthMiddleware creates authentication middleware
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1. Authorization header first, then cookie
		var accessToken string
		authHeader := c.Get(fiber.HeaderAuthorization)
		if strings.HasPrefix(authHeader, "Bearer ") {
			accessToken = strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		}
		if accessToken == "" {
			accessToken = c.Cookies("access_token")
		}

		// 2. No token found
		if accessToken == "" {
			return response.Unauthorized(c, "Token d'accès requis")
		}

		// 3. Validate token
		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return response.Unauthorized(c, "Token expiré")
			}
			return response.Unauthorized(c, "Token invalide")
		}

		// 4. Set user info in context
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalEmail, claims.Email)
		c.Locals(LocalName, claims.Name)
		c.Locals(LocalRole, claims.Role)

		return c.Next()
	}
}

// RequirePermission lets the request through when the caller's role holds perm
func RequirePermission(perm domain.Permission) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(LocalRole).(string)
		if !ok {
			return response.Unauthorized(c, "Non authentifié")
		}
		if !domain.Can(domain.Role(role), perm) {
			return response.Forbidden(c, "Accès refusé")
		}
		return c.Next()
	}
}

// AdminOnly allows only the admin role
func AdminOnly() fiber.Handler {
	return RequirePermission(domain.PermUsersManage)
}

// UserID returns the authenticated user's ID
func UserID(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals(LocalUserID).(uint)
	return id, ok
}

// Role returns the authenticated user's role
func Role(c *fiber.Ctx) string {
	role, _ := c.Locals(LocalRole).(string)
	return role
}
