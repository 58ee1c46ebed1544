package handlers

import (
	"smartdash/internal/models"
	"smartdash/internal/services/employee"
	"smartdash/internal/utils/listing"
	"smartdash/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type EmployeeHandler struct {
	service employee.Service
	log     *zap.Logger
}

func NewEmployeeHandler(service employee.Service, log *zap.Logger) *EmployeeHandler {
	return &EmployeeHandler{service: service, log: log}
}

func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	res, err := h.service.List(c.UserContext(), listing.ParseQuery(c))
	if err != nil {
		return response.FromError(c, h.log, err)
	}
	return response.Data(c, res)
}

func (h *EmployeeHandler) Get(c *fiber.Ctx) error {
	row, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return response.FromError(c, h.log, err)
	}
	return response.Data(c, row)
}

func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	var input models.UpdateUserInput
	if err := parseBody(c, &input); err != nil {
		return response.FromError(c, h.log, err)
	}

	u, err := h.service.Update(c.UserContext(), actorID(c), c.Params("id"), input)
	if err != nil {
		return response.FromError(c, h.log, err)
	}
	return response.Success(c, "Employee updated", u)
}

func (h *EmployeeHandler) SetStatus(c *fiber.Ctx) error {
	var input models.StatusInput
	if err := parseBody(c, &input); err != nil {
		return response.FromError(c, h.log, err)
	}

	if err := h.service.SetStatus(c.UserContext(), actorID(c), c.Params("id"), *input.IsActive); err != nil {
		return response.FromError(c, h.log, err)
	}
	return response.Success(c, "Employee status updated", fiber.Map{"is_active": *input.IsActive})
}

func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), actorID(c), c.Params("id")); err != nil {
		return response.FromError(c, h.log, err)
	}
	return response.Success(c, "Employee deleted", nil)
}

// UploadAvatar handles POST /api/employees/:id/avatar (multipart "image")
func (h *EmployeeHandler) UploadAvatar(c *fiber.Ctx) error {
	filename, data, err := readImage(c)
	if err != nil {
		return response.FromError(c, h.log, err)
	}

	url, err := h.service.UploadAvatar(c.UserContext(), actorID(c), c.Params("id"), filename, data)
	if err != nil {
		return response.FromError(c, h.log, err)
	}
	return response.Success(c, "Profile image updated", fiber.Map{"profile_image": url})
}
