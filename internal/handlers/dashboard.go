package handlers

import (
	"smartdash/internal/services/dashboard"
	"smartdash/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	service dashboard.Service
	log     *zap.Logger
}

func NewDashboardHandler(service dashboard.Service, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{service: service, log: log}
}

// GetStats handles GET /api/dashboard
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.UserContext())
	if err != nil {
		return response.FromError(c, h.log, err)
	}
	return response.Data(c, stats)
}
