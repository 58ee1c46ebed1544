package handlers

import (
	"smartdash/internal/models"
	"smartdash/internal/services/branch"
	"smartdash/internal/utils/listing"
	"smartdash/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type BranchHandler struct {
	service branch.Service
	log     *zap.Logger
}

func NewBranchHandler(service branch.Service, log *zap.Logger) *BranchHandler {
	return &BranchHandler{service: service, log: log}
}

func (h *BranchHandler) List(c *fiber.Ctx) error {
	res, err := h.service.List(c.UserContext(), listing.ParseQuery(c))
	if err != nil {
		return response.FromError(c, h.log, err)
	}
	return response.Data(c, res)
}

func (h *BranchHandler) Get(c *fiber.Ctx) error {
	detail, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return response.FromError(c, h.log, err)
	}
	return response.Data(c, detail)
}

func (h *BranchHandler) Update(c *fiber.Ctx) error {
	var input models.UpdateBranchInput
	if err := parseBody(c, &input); err != nil {
		return response.FromError(c, h.log, err)
	}

	b, err := h.service.Update(c.UserContext(), actorID(c), c.Params("id"), input)
	if err != nil {
		return response.FromError(c, h.log, err)
	}
	return response.Success(c, "Branch updated", b)
}

func (h *BranchHandler) SetStatus(c *fiber.Ctx) error {
	var input models.StatusInput
	if err := parseBody(c, &input); err != nil {
		return response.FromError(c, h.log, err)
	}

	if err := h.service.SetStatus(c.UserContext(), actorID(c), c.Params("id"), *input.IsActive); err != nil {
		return response.FromError(c, h.log, err)
	}
	return response.Success(c, "Branch status updated", fiber.Map{"is_active": *input.IsActive})
}

func (h *BranchHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), actorID(c), c.Params("id")); err != nil {
		return response.FromError(c, h.log, err)
	}
	return response.Success(c, "Branch deleted", nil)
}
