package response

import (
	"errors"

	apperrors "smartdash/internal/errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(fiber.Map{
		"message": message,
		"data":    data,
	})
}

// Data writes a bare JSON payload with status 200.
func Data(c *fiber.Ctx, data interface{}) error {
	return c.JSON(data)
}

func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

func ServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}

// FromError writes a DomainError with its own status and code. Fiber's
// own errors (404, 405, 413...) keep their status. Any other error is
// logged and reported as a generic 500.
func FromError(c *fiber.Ctx, log *zap.Logger, err error) error {
	if de, ok := apperrors.As(err); ok {
		return c.Status(de.Status).JSON(fiber.Map{
			"error": de.Message,
			"code":  de.Code,
		})
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return Error(c, fe.Code, fe.Message)
	}
	log.Error("request failed",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	return ServerError(c, "Internal server error")
}

// ErrorHandler is the app-wide fiber.Config.ErrorHandler.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		return FromError(c, log, err)
	}
}
