package handlers

import (
	"smartdash/internal/services/logs"
	"smartdash/internal/utils/listing"
	"smartdash/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type LogHandler struct {
	service logs.Service
	log     *zap.Logger
}

func NewLogHandler(service logs.Service, log *zap.Logger) *LogHandler {
	return &LogHandler{service: service, log: log}
}

func (h *LogHandler) List(c *fiber.Ctx) error {
	res, err := h.service.List(c.UserContext(), listing.ParseQuery(c))
	if err != nil {
		return response.FromError(c, h.log, err)
	}
	return response.Data(c, res)
}

func (h *LogHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), actorID(c), c.Params("id")); err != nil {
		return response.FromError(c, h.log, err)
	}
	return response.Success(c, "Log deleted", nil)
}
