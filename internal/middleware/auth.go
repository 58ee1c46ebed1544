// Package middleware provides HTTP middleware components for the application.
package middleware

import (
	"strings"

	"smartdash/internal/models"
	"smartdash/internal/services/auth"
	"smartdash/internal/utils"
	"smartdash/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AccessTokenCookie is the cookie set at login alongside the JSON tokens.
const AccessTokenCookie = "access_token"

// AuthMiddleware handles JWT token validation and the super admin gate.
type AuthMiddleware struct {
	authService auth.Service
	log         *zap.Logger
}

func NewAuthMiddleware(authService auth.Service, log *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		log:         log,
	}
}

// Handler validates the access token and stores the claims on the context.
// It checks for:
// - a Bearer token, or the access_token cookie
// - a valid signature and expiry
// - a token version matching the stored user
// - the super_admin role; other roles are signed out and get 403
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	tokenString := bearerToken(c)
	if tokenString == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing authorization token"})
	}

	claims, err := m.authService.Authenticate(c.UserContext(), tokenString)
	if err != nil {
		return response.FromError(c, m.log, err)
	}

	c.Locals(utils.ClaimsKey, claims)
	c.Locals("userID", claims.UserID)

	return c.Next()
}

func bearerToken(c *fiber.Ctx) string {
	if header := c.Get(fiber.HeaderAuthorization); header != "" {
		if strings.HasPrefix(header, "Bearer ") {
			return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		}
		return ""
	}
	return c.Cookies(AccessTokenCookie)
}

// HasPermission returns a middleware that checks for a specific permission.
func HasPermission(permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals(utils.ClaimsKey).(*models.UserClaims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
		}

		if claims.Role == models.RoleSuperAdmin || claims.HasPermission(permission) {
			return c.Next()
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Insufficient permissions"})
	}
}
