package handlers

import (
	"time"

	"smartdash/internal/services/export"
	"smartdash/internal/utils/listing"
	"smartdash/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ExportHandler struct {
	service *export.Service
	log     *zap.Logger
}

func NewExportHandler(service *export.Service, log *zap.Logger) *ExportHandler {
	return &ExportHandler{service: service, log: log}
}

// Export handles GET /api/export/:entity with the same query parameters
// as the entity's list endpoint.
func (h *ExportHandler) Export(c *fiber.Ctx) error {
	data, filename, err := h.service.Export(c.UserContext(), c.Params("entity"), listing.ParseQuery(c), time.Now())
	if err != nil {
		return response.FromError(c, h.log, err)
	}

	c.Set(fiber.HeaderContentType, export.ContentType)
	c.Attachment(filename)
	return c.Send(data)
}
