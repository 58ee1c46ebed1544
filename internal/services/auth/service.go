package auth

import (
	"context"
	"errors"

	apperrors "smartdash/internal/errors"
	"smartdash/internal/metrics"
	"smartdash/internal/models"
	"smartdash/internal/repositories"
	"smartdash/internal/services/audit"
	"smartdash/internal/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// LoginResult is what a successful sign-in hands back to the caller.
type LoginResult struct {
	User         *models.User
	AccessToken  string
	RefreshToken string
}

type Service interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	RefreshTokens(ctx context.Context, refreshToken string) (string, string, error)
	Logout(ctx context.Context, userID string) error
	// Authenticate validates an access token and returns its claims once
	// the session is current and belongs to a super admin.
	Authenticate(ctx context.Context, accessToken string) (*models.UserClaims, error)
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error
}

type service struct {
	userRepo repositories.UserRepository
	secrets  utils.TokenSecrets
	audit    *audit.Recorder
	log      *zap.Logger
}

func NewService(userRepo repositories.UserRepository, secrets utils.TokenSecrets, recorder *audit.Recorder, log *zap.Logger) Service {
	return &service{
		userRepo: userRepo,
		secrets:  secrets,
		audit:    recorder,
		log:      log,
	}
}

func (s *service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.log.Info("login failed: unknown email", zap.String("email", email))
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if user.Password == "" {
		s.log.Info("login failed: account has no dashboard password", zap.String("user_id", user.ID))
		return nil, apperrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.log.Info("login failed: incorrect password", zap.String("user_id", user.ID))
		return nil, apperrors.ErrInvalidCredentials
	}

	identity := s.profile(ctx, user)
	if identity.Role != models.RoleSuperAdmin {
		s.revoke(ctx, user.ID, identity.Role)
		return nil, apperrors.ErrForbiddenRole
	}
	if !identity.IsActive {
		s.log.Info("login failed: account disabled", zap.String("user_id", user.ID))
		return nil, apperrors.ErrForbiddenRole.WithMessage("account is disabled")
	}

	access, refresh, err := utils.GenerateTokens(s.secrets, claimsFor(identity))
	if err != nil {
		return nil, err
	}

	s.log.Info("super admin signed in", zap.String("user_id", identity.ID))
	return &LoginResult{User: identity, AccessToken: access, RefreshToken: refresh}, nil
}

// profile loads the full account after the credentials check. When that
// fails the caller gets a minimal identity with the lowest role, which
// the role gate then turns away.
func (s *service) profile(ctx context.Context, user *models.User) *models.User {
	full, err := s.userRepo.GetSessionUser(ctx, user.ID)
	if err != nil {
		s.log.Warn("profile lookup failed, using minimal identity",
			zap.String("user_id", user.ID),
			zap.Error(err),
		)
		return &models.User{
			ID:           user.ID,
			Email:        user.Email,
			Role:         models.RoleUser,
			TokenVersion: user.TokenVersion,
		}
	}
	return full
}

// revoke signs a non super admin out of every session.
func (s *service) revoke(ctx context.Context, userID, role string) {
	metrics.RevokedSessions.Inc()
	s.log.Warn("rejected non super admin session",
		zap.String("user_id", userID),
		zap.String("role", role),
	)
	if err := s.userRepo.IncrementTokenVersion(ctx, userID); err != nil {
		s.log.Error("failed to revoke session", zap.String("user_id", userID), zap.Error(err))
	}
}

func (s *service) RefreshTokens(ctx context.Context, refreshToken string) (string, string, error) {
	_, claims, err := utils.ParseToken(refreshToken, s.secrets.Refresh)
	if err != nil {
		return "", "", apperrors.ErrSessionExpired.WithMessage("invalid refresh token")
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", "", apperrors.ErrSessionExpired
		}
		return "", "", err
	}

	if user.TokenVersion != claims.TokenVersion {
		return "", "", apperrors.ErrSessionExpired
	}
	if user.Role != models.RoleSuperAdmin {
		s.revoke(ctx, user.ID, user.Role)
		return "", "", apperrors.ErrForbiddenRole
	}

	return utils.GenerateTokens(s.secrets, claimsFor(user))
}

func (s *service) Logout(ctx context.Context, userID string) error {
	return s.userRepo.IncrementTokenVersion(ctx, userID)
}

func (s *service) Authenticate(ctx context.Context, accessToken string) (*models.UserClaims, error) {
	_, claims, err := utils.ParseToken(accessToken, s.secrets.Access)
	if err != nil {
		return nil, apperrors.ErrSessionExpired.WithMessage("invalid token")
	}

	user, err := s.userRepo.GetSessionUser(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrSessionExpired.WithMessage("invalid token")
		}
		return nil, err
	}

	if user.TokenVersion != claims.TokenVersion {
		s.log.Debug("token version mismatch",
			zap.String("user_id", user.ID),
			zap.Int("token_version", claims.TokenVersion),
			zap.Int("current_version", user.TokenVersion),
		)
		return nil, apperrors.ErrSessionExpired
	}

	if user.Role != models.RoleSuperAdmin || !user.IsActive {
		s.revoke(ctx, user.ID, user.Role)
		return nil, apperrors.ErrForbiddenRole
	}

	return claims, nil
}

func (s *service) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return apperrors.ErrInvalidCredentials.WithMessage("invalid old password")
	}

	if !utils.ValidPassword(newPassword) {
		return apperrors.ErrValidation.WithMessage("password must be %d to %d characters and contain special characters",
			utils.MinPasswordLength, utils.MaxPasswordLength)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.userRepo.Update(ctx, userID, map[string]interface{}{"password": string(hashedPassword)}); err != nil {
		return err
	}
	// Invalidate existing tokens
	if err := s.userRepo.IncrementTokenVersion(ctx, userID); err != nil {
		return err
	}

	s.audit.Record(ctx, audit.Entry{Action: audit.ActionPasswordChanged, ActorID: userID})
	return nil
}

func claimsFor(user *models.User) *models.UserClaims {
	return &models.UserClaims{
		UserID:       user.ID,
		Email:        user.Email,
		Role:         user.Role,
		TokenVersion: user.TokenVersion,
		Permissions:  models.GetDefaultPermissions(user.Role),
	}
}
