package middleware

import (
	"context"
	"net/http/httptest"
	"testing"

	apperrors "smartdash/internal/errors"
	"smartdash/internal/models"
	"smartdash/internal/services/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAuth struct {
	auth.Service
	tokens map[string]*models.UserClaims
	err    error
}

func (f *fakeAuth) Authenticate(ctx context.Context, token string) (*models.UserClaims, error) {
	if f.err != nil {
		return nil, f.err
	}
	claims, ok := f.tokens[token]
	if !ok {
		return nil, apperrors.ErrSessionExpired
	}
	return claims, nil
}

func newApp(svc auth.Service) *fiber.App {
	app := fiber.New()
	app.Use(Metrics())
	m := NewAuthMiddleware(svc, zap.NewNop())
	app.Get("/private", m.Handler, func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("userID").(string))
	})
	app.Get("/reviews", m.Handler, HasPermission(models.PermissionPaymentReview), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func TestHandlerAcceptsBearerAndCookie(t *testing.T) {
	app := newApp(&fakeAuth{tokens: map[string]*models.UserClaims{
		"good": {UserID: "admin-1", Role: models.RoleSuperAdmin},
	}})

	req := httptest.NewRequest("GET", "/private", nil)
	req.Header.Set("Authorization", "Bearer good")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req = httptest.NewRequest("GET", "/private", nil)
	req.Header.Set("Cookie", AccessTokenCookie+"=good")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestHandlerRejectsMissingAndMalformed(t *testing.T) {
	app := newApp(&fakeAuth{})

	resp, err := app.Test(httptest.NewRequest("GET", "/private", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest("GET", "/private", nil)
	req.Header.Set("Authorization", "Token good")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestHandlerMapsForbiddenRole(t *testing.T) {
	app := newApp(&fakeAuth{err: apperrors.ErrForbiddenRole})

	req := httptest.NewRequest("GET", "/private", nil)
	req.Header.Set("Authorization", "Bearer staff-token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestHasPermission(t *testing.T) {
	app := newApp(&fakeAuth{tokens: map[string]*models.UserClaims{
		"root":    {UserID: "admin-1", Role: models.RoleSuperAdmin},
		"limited": {UserID: "x", Role: models.RoleAdmin, Permissions: []string{models.PermissionLogRead}},
	}})

	req := httptest.NewRequest("GET", "/reviews", nil)
	req.Header.Set("Authorization", "Bearer root")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	req = httptest.NewRequest("GET", "/reviews", nil)
	req.Header.Set("Authorization", "Bearer limited")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
