package handlers

import (
	"smartdash/internal/models"
	"smartdash/internal/services/payment"
	"smartdash/internal/utils/listing"
	"smartdash/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	service payment.Service
	log     *zap.Logger
}

func NewPaymentHandler(service payment.Service, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{service: service, log: log}
}

func (h *PaymentHandler) List(c *fiber.Ctx) error {
	res, err := h.service.List(c.UserContext(), listing.ParseQuery(c))
	if err != nil {
		return response.FromError(c, h.log, err)
	}
	return response.Data(c, res)
}

func (h *PaymentHandler) Get(c *fiber.Ctx) error {
	row, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return response.FromError(c, h.log, err)
	}
	return response.Data(c, row)
}

// Approve handles POST /api/payments/:id/approve
func (h *PaymentHandler) Approve(c *fiber.Ctx) error {
	p, err := h.service.Approve(c.UserContext(), actorID(c), c.Params("id"))
	if err != nil {
		return response.FromError(c, h.log, err)
	}
	return response.Success(c, "Payment approved", p)
}

// Reject handles POST /api/payments/:id/reject
func (h *PaymentHandler) Reject(c *fiber.Ctx) error {
	var input models.RejectPaymentInput
	if err := parseBody(c, &input); err != nil {
		return response.FromError(c, h.log, err)
	}

	p, err := h.service.Reject(c.UserContext(), actorID(c), c.Params("id"), input.Reason)
	if err != nil {
		return response.FromError(c, h.log, err)
	}
	return response.Success(c, "Payment rejected", p)
}

func (h *PaymentHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), actorID(c), c.Params("id")); err != nil {
		return response.FromError(c, h.log, err)
	}
	return response.Success(c, "Payment deleted", nil)
}
