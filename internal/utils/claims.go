package utils

import (
	apperrors "smartdash/internal/errors"
	"smartdash/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ClaimsKey is the fiber Locals key the auth middleware stores claims under.
const ClaimsKey = "claims"

// GetUserClaims returns the super admin session attached by the auth
// middleware. A request without one gets a 401 DomainError.
func GetUserClaims(c *fiber.Ctx) (*models.UserClaims, error) {
	claims, ok := c.Locals(ClaimsKey).(*models.UserClaims)
	if !ok || claims == nil || claims.UserID == "" {
		return nil, apperrors.ErrSessionExpired.WithMessage("no active session")
	}
	return claims, nil
}
