package handlers

import (
	"smartdash/internal/models"
	"smartdash/internal/services/settings"
	"smartdash/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type SettingsHandler struct {
	service settings.Service
	log     *zap.Logger
}

func NewSettingsHandler(service settings.Service, log *zap.Logger) *SettingsHandler {
	return &SettingsHandler{service: service, log: log}
}

func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	s, err := h.service.Get(c.UserContext())
	if err != nil {
		return response.FromError(c, h.log, err)
	}
	return response.Data(c, s)
}

// Put overwrites the whole settings document.
func (h *SettingsHandler) Put(c *fiber.Ctx) error {
	var input models.AppSettings
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	s, err := h.service.Put(c.UserContext(), actorID(c), input)
	if err != nil {
		return response.FromError(c, h.log, err)
	}
	return response.Success(c, "Settings saved", s)
}
