package handlers

import (
	"io"
	"strings"

	apperrors "smartdash/internal/errors"
	"smartdash/internal/utils"
	"smartdash/internal/utils/validation"

	"github.com/gofiber/fiber/v2"
)

// maxImageBytes caps avatar uploads at the CDN's free-tier limit.
const maxImageBytes = 32 << 20

// parseBody decodes the JSON body into dst and validates it.
func parseBody(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return apperrors.ErrValidation.WithMessage("invalid request body")
	}
	return validation.Struct(dst)
}

// actorID is the signed-in super admin making the request.
func actorID(c *fiber.Ctx) string {
	if claims, err := utils.GetUserClaims(c); err == nil {
		return claims.UserID
	}
	return ""
}

// readImage returns the multipart "image" field.
func readImage(c *fiber.Ctx) (string, []byte, error) {
	header, err := c.FormFile("image")
	if err != nil {
		return "", nil, apperrors.ErrValidation.WithMessage("image file is required")
	}
	if header.Size > maxImageBytes {
		return "", nil, apperrors.ErrValidation.WithMessage("image exceeds 32MB")
	}
	if ct := header.Header.Get(fiber.HeaderContentType); ct != "" && !strings.HasPrefix(ct, "image/") {
		return "", nil, apperrors.ErrValidation.WithMessage("file must be an image")
	}

	f, err := header.Open()
	if err != nil {
		return "", nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", nil, err
	}
	return header.Filename, data, nil
}
