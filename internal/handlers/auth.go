package handlers

import (
	"time"

	"smartdash/internal/config"
	"smartdash/internal/models"
	"smartdash/internal/services/auth"
	"smartdash/internal/utils"
	"smartdash/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService auth.Service
	log         *zap.Logger
}

func NewAuthHandler(authService auth.Service, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		log:         log,
	}
}

type loginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginUser handles super admin authentication and returns JWT tokens
func (h *AuthHandler) LoginUser(c *fiber.Ctx) error {
	var input loginInput
	if err := parseBody(c, &input); err != nil {
		return response.FromError(c, h.log, err)
	}

	res, err := h.authService.Login(c.UserContext(), input.Email, input.Password)
	if err != nil {
		return response.FromError(c, h.log, err)
	}

	h.setAuthCookies(c, res.AccessToken, res.RefreshToken)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"access_token":  res.AccessToken,
		"refresh_token": res.RefreshToken,
		"user": fiber.Map{
			"id":          res.User.ID,
			"email":       res.User.Email,
			"first_name":  res.User.FirstName,
			"last_name":   res.User.LastName,
			"role":        res.User.Role,
			"permissions": models.GetDefaultPermissions(res.User.Role),
		},
	})
}

// RefreshToken handles token refresh requests
func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	// First try to get token from cookies
	refreshToken := c.Cookies("refresh_token")

	// If not in cookies, try request body
	if refreshToken == "" {
		var input struct {
			RefreshToken string `json:"refresh_token"`
		}
		if err := c.BodyParser(&input); err != nil {
			return response.Error(c, fiber.StatusUnauthorized, "Refresh token not provided")
		}
		refreshToken = input.RefreshToken
	}

	if refreshToken == "" {
		return response.Error(c, fiber.StatusUnauthorized, "Refresh token not provided")
	}

	newAccessToken, newRefreshToken, err := h.authService.RefreshTokens(c.UserContext(), refreshToken)
	if err != nil {
		h.log.Info("token refresh failed", zap.Error(err))
		return response.FromError(c, h.log, err)
	}

	h.setAuthCookies(c, newAccessToken, newRefreshToken)

	return c.JSON(fiber.Map{
		"access_token":  newAccessToken,
		"refresh_token": newRefreshToken,
	})
}

// LogoutUser revokes every token issued to the caller
func (h *AuthHandler) LogoutUser(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return response.FromError(c, h.log, err)
	}

	if err := h.authService.Logout(c.UserContext(), claims.UserID); err != nil {
		return response.FromError(c, h.log, err)
	}

	h.clearAuthCookies(c)

	return c.JSON(fiber.Map{
		"message": "Successfully logged out",
	})
}

// Helper methods

func (h *AuthHandler) setAuthCookies(c *fiber.Ctx, accessToken, refreshToken string) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		HTTPOnly: true,
		Secure:   config.IsProduction(),
		Path:     "/",
		SameSite: "Strict",
		MaxAge:   int(utils.AccessTokenTTL.Seconds()),
	})

	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		HTTPOnly: true,
		Secure:   config.IsProduction(),
		Path:     "/",
		SameSite: "Strict",
		MaxAge:   int(utils.RefreshTokenTTL.Seconds()),
	})
}

func (h *AuthHandler) clearAuthCookies(c *fiber.Ctx) {
	for _, name := range []string{"access_token", "refresh_token"} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			Expires:  time.Now().Add(-time.Hour),
			HTTPOnly: true,
			Secure:   config.IsProduction(),
			Path:     "/",
		})
	}
}
