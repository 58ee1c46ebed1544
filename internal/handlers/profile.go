package handlers

import (
	"smartdash/internal/models"
	"smartdash/internal/services/auth"
	"smartdash/internal/services/profile"
	"smartdash/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ProfileHandler struct {
	service     profile.Service
	authService auth.Service
	log         *zap.Logger
}

func NewProfileHandler(service profile.Service, authService auth.Service, log *zap.Logger) *ProfileHandler {
	return &ProfileHandler{service: service, authService: authService, log: log}
}

func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	u, err := h.service.Get(c.UserContext(), actorID(c))
	if err != nil {
		return response.FromError(c, h.log, err)
	}
	return response.Data(c, u)
}

func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	var input models.UpdateProfileInput
	if err := parseBody(c, &input); err != nil {
		return response.FromError(c, h.log, err)
	}

	u, err := h.service.Update(c.UserContext(), actorID(c), input)
	if err != nil {
		return response.FromError(c, h.log, err)
	}
	return response.Success(c, "Profile updated", u)
}

// ChangePassword signs the caller out of every session on success.
func (h *ProfileHandler) ChangePassword(c *fiber.Ctx) error {
	var input models.ChangePasswordInput
	if err := parseBody(c, &input); err != nil {
		return response.FromError(c, h.log, err)
	}

	if err := h.authService.ChangePassword(c.UserContext(), actorID(c), input.OldPassword, input.NewPassword); err != nil {
		return response.FromError(c, h.log, err)
	}
	return response.Success(c, "Password changed successfully", nil)
}

func (h *ProfileHandler) UploadAvatar(c *fiber.Ctx) error {
	filename, data, err := readImage(c)
	if err != nil {
		return response.FromError(c, h.log, err)
	}

	url, err := h.service.UploadAvatar(c.UserContext(), actorID(c), filename, data)
	if err != nil {
		return response.FromError(c, h.log, err)
	}
	return response.Success(c, "Profile image updated", fiber.Map{"profile_image": url})
}
