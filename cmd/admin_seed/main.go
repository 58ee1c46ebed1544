package main

import (
	"context"
	"errors"
	"os"

	"smartdash/internal/config"
	apperrors "smartdash/internal/errors"
	"smartdash/internal/logger"
	"smartdash/internal/models"
	"smartdash/internal/repositories"
	"smartdash/internal/services/audit"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	config.LoadEnv()
	cfg := config.Load()

	log := logger.Must(cfg.LogLevel, "console", "smartdash-seed")
	defer func() { _ = log.Sync() }()

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	adminPhone := os.Getenv("ADMIN_PHONE")

	if adminEmail == "" || adminPassword == "" || adminPhone == "" {
		log.Fatal("ADMIN_EMAIL, ADMIN_PASSWORD, and ADMIN_PHONE must be set in environment")
	}

	db, err := repositories.Open(cfg, log)
	if err != nil {
		log.Fatal("failed to initialize database", zap.Error(err))
	}
	defer func() {
		if err := repositories.Close(db); err != nil {
			log.Warn("failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	ctx := context.Background()
	userRepo := repositories.NewUserRepository(db, nil, log)

	if _, err := userRepo.GetByEmail(ctx, adminEmail); err == nil {
		log.Info("admin user already exists", zap.String("email", adminEmail))
		return
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		log.Fatal("failed to look up admin user", zap.Error(err))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("failed to hash password", zap.Error(err))
	}

	adminUser := models.User{
		FirstName:    os.Getenv("ADMIN_FIRST_NAME"),
		LastName:     os.Getenv("ADMIN_LAST_NAME"),
		Email:        adminEmail,
		Password:     string(hashedPassword),
		Phone:        adminPhone,
		Role:         models.RoleSuperAdmin,
		IsActive:     true,
		TokenVersion: 1,
	}

	if err := userRepo.Create(ctx, &adminUser); err != nil {
		log.Fatal("failed to create admin user", zap.Error(err))
	}

	audit.NewRecorder(repositories.NewLogRepository(db), nil, log).Record(ctx, audit.Entry{
		Action:  audit.ActionSuperAdminCreated,
		ActorID: adminUser.ID,
	})

	log.Info("super admin account created", zap.String("email", adminEmail))
}
