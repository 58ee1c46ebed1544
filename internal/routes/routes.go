// Package routes wires repositories, services and handlers into the
// fiber route table.
package routes

import (
	"time"

	"smartdash/internal/config"
	"smartdash/internal/handlers"
	"smartdash/internal/middleware"
	"smartdash/internal/models"
	"smartdash/internal/repositories"
	"smartdash/internal/repositories/cache"
	"smartdash/internal/services/audit"
	"smartdash/internal/services/auth"
	"smartdash/internal/services/branch"
	"smartdash/internal/services/business"
	"smartdash/internal/services/dashboard"
	"smartdash/internal/services/employee"
	"smartdash/internal/services/export"
	"smartdash/internal/services/logs"
	"smartdash/internal/services/media"
	"smartdash/internal/services/payment"
	"smartdash/internal/services/profile"
	"smartdash/internal/services/settings"
	"smartdash/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Dependencies are the long-lived resources built by cmd/server.
type Dependencies struct {
	Config config.Config
	DB     *gorm.DB
	Cache  *cache.CacheService // nil disables caching
	Logger *zap.Logger
}

// Handlers groups every page handler registered by Register.
type Handlers struct {
	Auth      *handlers.AuthHandler
	Dashboard *handlers.DashboardHandler
	Business  *handlers.BusinessHandler
	Branch    *handlers.BranchHandler
	Employee  *handlers.EmployeeHandler
	Payment   *handlers.PaymentHandler
	Logs      *handlers.LogHandler
	Settings  *handlers.SettingsHandler
	Profile   *handlers.ProfileHandler
	Export    *handlers.ExportHandler
	Health    *handlers.HealthHandler
}

// SetupRoutes builds the service graph from deps and registers all routes.
func SetupRoutes(app *fiber.App, deps Dependencies) {
	log := deps.Logger
	cfg := deps.Config

	businessRepo := repositories.NewBusinessRepository(deps.DB)
	branchRepo := repositories.NewBranchRepository(deps.DB)
	userRepo := repositories.NewUserRepository(deps.DB, deps.Cache, log)
	paymentRepo := repositories.NewPaymentRepository(deps.DB)
	logRepo := repositories.NewLogRepository(deps.DB)
	productRepo := repositories.NewProductRepository(deps.DB)
	settingsRepo := repositories.NewSettingsRepository(deps.DB)

	var statsCache dashboard.StatsCache
	if deps.Cache != nil {
		statsCache = deps.Cache
	}
	dashboardService := dashboard.NewService(businessRepo, userRepo, paymentRepo, statsCache, cfg.DashboardCacheTTL, log)

	// Every audited write also drops the cached dashboard.
	recorder := audit.NewRecorder(logRepo, dashboardService, log)
	uploader := media.NewCDNClient(cfg.ImageCDNURL, cfg.ImageCDNKey, log)

	authService := auth.NewService(userRepo, utils.TokenSecrets{
		Access:  cfg.JWTSecret,
		Refresh: cfg.RefreshSecret,
	}, recorder, log)
	businessService := business.NewService(businessRepo, branchRepo, userRepo, paymentRepo, productRepo, recorder, log)
	branchService := branch.NewService(branchRepo, businessRepo, userRepo, recorder)
	employeeService := employee.NewService(userRepo, businessRepo, branchRepo, uploader, recorder)
	paymentService := payment.NewService(paymentRepo, businessRepo, userRepo, recorder, log)
	logService := logs.NewService(logRepo, userRepo, businessRepo, branchRepo, recorder)
	settingsService := settings.NewService(settingsRepo, recorder)
	profileService := profile.NewService(userRepo, uploader, recorder)

	exportService := export.NewService(map[string]export.Source{
		"businesses": businessService.Sheet,
		"branches":   branchService.Sheet,
		"employees":  employeeService.Sheet,
		"payments":   paymentService.Sheet,
		"logs":       logService.Sheet,
	})

	h := &Handlers{
		Auth:      handlers.NewAuthHandler(authService, log),
		Dashboard: handlers.NewDashboardHandler(dashboardService, log),
		Business:  handlers.NewBusinessHandler(businessService, log),
		Branch:    handlers.NewBranchHandler(branchService, log),
		Employee:  handlers.NewEmployeeHandler(employeeService, log),
		Payment:   handlers.NewPaymentHandler(paymentService, log),
		Logs:      handlers.NewLogHandler(logService, log),
		Settings:  handlers.NewSettingsHandler(settingsService, log),
		Profile:   handlers.NewProfileHandler(profileService, authService, log),
		Export:    handlers.NewExportHandler(exportService, log),
		Health:    handlers.NewHealthHandler(deps.DB, deps.Cache),
	}

	Register(app, h, middleware.NewAuthMiddleware(authService, log))
}

// Register mounts the route table on app.
func Register(app *fiber.App, h *Handlers, authMiddleware *middleware.AuthMiddleware) {
	app.Get("/health", h.Health.HealthCheck)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	api.Post("/login", loginLimiter(), h.Auth.LoginUser)
	api.Post("/refresh", h.Auth.RefreshToken)

	protected := api.Group("", authMiddleware.Handler)
	protected.Post("/logout", h.Auth.LogoutUser)
	protected.Get("/dashboard", middleware.HasPermission(models.PermissionDashboardRead), h.Dashboard.GetStats)
	protected.Get("/cache-stats", middleware.HasPermission(models.PermissionDashboardRead), h.Health.CacheStats)

	setupBusinessRoutes(protected, h.Business)
	setupBranchRoutes(protected, h.Branch)
	setupEmployeeRoutes(protected, h.Employee)
	setupPaymentRoutes(protected, h.Payment)

	logsGroup := protected.Group("/logs")
	logsGroup.Get("/", middleware.HasPermission(models.PermissionLogRead), h.Logs.List)
	logsGroup.Delete("/:id", middleware.HasPermission(models.PermissionLogWrite), h.Logs.Delete)

	settingsGroup := protected.Group("/settings")
	settingsGroup.Get("/", h.Settings.Get)
	settingsGroup.Put("/", middleware.HasPermission(models.PermissionSettingsWrite), h.Settings.Put)

	profileGroup := protected.Group("/profile")
	profileGroup.Get("/", h.Profile.Get)
	profileGroup.Patch("/", h.Profile.Update)
	profileGroup.Post("/password", middleware.HasPermission(models.PermissionChangePassword), h.Profile.ChangePassword)
	profileGroup.Post("/avatar", h.Profile.UploadAvatar)

	protected.Get("/export/:entity", h.Export.Export)
}

func setupBusinessRoutes(router fiber.Router, h *handlers.BusinessHandler) {
	read := middleware.HasPermission(models.PermissionBusinessRead)
	write := middleware.HasPermission(models.PermissionBusinessWrite)

	businesses := router.Group("/businesses")
	businesses.Get("/", read, h.List)
	businesses.Get("/:id", read, h.Get)
	businesses.Patch("/:id", write, h.Update)
	businesses.Patch("/:id/status", write, h.SetStatus)
	businesses.Delete("/:id", write, h.Delete)
}

func setupBranchRoutes(router fiber.Router, h *handlers.BranchHandler) {
	read := middleware.HasPermission(models.PermissionBranchRead)
	write := middleware.HasPermission(models.PermissionBranchWrite)

	branches := router.Group("/branches")
	branches.Get("/", read, h.List)
	branches.Get("/:id", read, h.Get)
	branches.Patch("/:id", write, h.Update)
	branches.Patch("/:id/status", write, h.SetStatus)
	branches.Delete("/:id", write, h.Delete)
}

func setupEmployeeRoutes(router fiber.Router, h *handlers.EmployeeHandler) {
	read := middleware.HasPermission(models.PermissionEmployeeRead)
	write := middleware.HasPermission(models.PermissionEmployeeWrite)

	employees := router.Group("/employees")
	employees.Get("/", read, h.List)
	employees.Get("/:id", read, h.Get)
	employees.Patch("/:id", write, h.Update)
	employees.Patch("/:id/status", write, h.SetStatus)
	employees.Delete("/:id", write, h.Delete)
	employees.Post("/:id/avatar", write, h.UploadAvatar)
}

func setupPaymentRoutes(router fiber.Router, h *handlers.PaymentHandler) {
	read := middleware.HasPermission(models.PermissionPaymentRead)
	review := middleware.HasPermission(models.PermissionPaymentReview)

	payments := router.Group("/payments")
	payments.Get("/", read, h.List)
	payments.Get("/:id", read, h.Get)
	payments.Post("/:id/approve", review, h.Approve)
	payments.Post("/:id/reject", review, h.Reject)
	payments.Delete("/:id", review, h.Delete)
}

func loginLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        5,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests. Please try again later.",
			})
		},
	})
}
