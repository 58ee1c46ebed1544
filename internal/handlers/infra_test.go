package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"smartdash/internal/repositories/cache"
	"smartdash/internal/services/export"
	"smartdash/internal/utils/listing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestExportSendsWorkbook(t *testing.T) {
	var got listing.Query
	svc := export.NewService(map[string]export.Source{
		"branches": func(ctx context.Context, q listing.Query) (*export.Sheet, error) {
			got = q
			return &export.Sheet{Name: "Branches", Headers: []string{"Name"}, Rows: [][]interface{}{{"Remera"}}}, nil
		},
	})
	h := NewExportHandler(svc, zap.NewNop())
	app := newTestApp()
	app.Get("/export/:entity", h.Export)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/export/branches?q=rem", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, export.ContentType, resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "branches-")
	assert.Equal(t, "rem", got.Search)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/export/products", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "UNSUPPORTED_ENTITY", decode(t, resp)["code"])
}

func TestHealthCheck(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cacheService := cache.NewCacheService(client, 0)
	t.Cleanup(func() { _ = cacheService.Close() })

	h := NewHealthHandler(nil, cacheService)
	app := fiberAppWith(h)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, "ok", body["status"])
	services := body["services"].(map[string]interface{})
	assert.Equal(t, "connected", services["redis"])
	assert.Equal(t, "disabled", services["database"])

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/cache-stats", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	mr.Close()
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), 5000)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body = decode(t, resp)
	assert.Equal(t, "degraded", body["status"])
	assert.Equal(t, "unreachable", body["services"].(map[string]interface{})["redis"])
}

func TestHealthCheckDatabaseDown(t *testing.T) {
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	mock.ExpectPing()
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	app := fiberAppWith(NewHealthHandler(db, nil))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, "down", body["status"])
	assert.Equal(t, "unreachable", body["services"].(map[string]interface{})["database"])
}

func TestCacheStatsWithoutCache(t *testing.T) {
	app := fiberAppWith(NewHealthHandler(nil, nil))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/cache-stats", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func fiberAppWith(h *HealthHandler) *fiber.App {
	app := newTestApp()
	app.Get("/health", h.HealthCheck)
	app.Get("/cache-stats", h.CacheStats)
	return app
}
