package handlers

import (
	"smartdash/internal/models"
	"smartdash/internal/services/business"
	"smartdash/internal/utils/listing"
	"smartdash/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type BusinessHandler struct {
	service business.Service
	log     *zap.Logger
}

func NewBusinessHandler(service business.Service, log *zap.Logger) *BusinessHandler {
	return &BusinessHandler{service: service, log: log}
}

// List handles GET /api/businesses
func (h *BusinessHandler) List(c *fiber.Ctx) error {
	res, err := h.service.List(c.UserContext(), listing.ParseQuery(c))
	if err != nil {
		return response.FromError(c, h.log, err)
	}
	return response.Data(c, res)
}

// Get handles GET /api/businesses/:id
func (h *BusinessHandler) Get(c *fiber.Ctx) error {
	detail, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return response.FromError(c, h.log, err)
	}
	return response.Data(c, detail)
}

// Update handles PATCH /api/businesses/:id
func (h *BusinessHandler) Update(c *fiber.Ctx) error {
	var input models.UpdateBusinessInput
	if err := parseBody(c, &input); err != nil {
		return response.FromError(c, h.log, err)
	}

	b, err := h.service.Update(c.UserContext(), actorID(c), c.Params("id"), input)
	if err != nil {
		return response.FromError(c, h.log, err)
	}
	return response.Success(c, "Business updated", b)
}

// SetStatus handles PATCH /api/businesses/:id/status
func (h *BusinessHandler) SetStatus(c *fiber.Ctx) error {
	var input models.StatusInput
	if err := parseBody(c, &input); err != nil {
		return response.FromError(c, h.log, err)
	}

	if err := h.service.SetStatus(c.UserContext(), actorID(c), c.Params("id"), *input.IsActive); err != nil {
		return response.FromError(c, h.log, err)
	}
	return response.Success(c, "Business status updated", fiber.Map{"is_active": *input.IsActive})
}

// Delete handles DELETE /api/businesses/:id
func (h *BusinessHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), actorID(c), c.Params("id")); err != nil {
		return response.FromError(c, h.log, err)
	}
	return response.Success(c, "Business deleted", nil)
}
