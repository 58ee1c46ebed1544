// Package profile lets the signed-in super admin manage their own account.
package profile

import (
	"context"

	apperrors "smartdash/internal/errors"
	"smartdash/internal/models"
	"smartdash/internal/repositories"
	"smartdash/internal/services/audit"
	"smartdash/internal/services/media"
	"smartdash/internal/utils/patch"
)

type Service interface {
	Get(ctx context.Context, userID string) (*models.User, error)
	Update(ctx context.Context, userID string, input models.UpdateProfileInput) (*models.User, error)
	UploadAvatar(ctx context.Context, userID, filename string, data []byte) (string, error)
}

type service struct {
	userRepo repositories.UserRepository
	uploader media.Uploader
	audit    *audit.Recorder
}

func NewService(userRepo repositories.UserRepository, uploader media.Uploader, recorder *audit.Recorder) Service {
	return &service{userRepo: userRepo, uploader: uploader, audit: recorder}
}

func (s *service) Get(ctx context.Context, userID string) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func (s *service) Update(ctx context.Context, userID string, input models.UpdateProfileInput) (*models.User, error) {
	fields := patch.Fields{}
	fields.String("first_name", input.FirstName)
	fields.String("last_name", input.LastName)
	fields.String("phone", input.Phone)
	if len(fields) == 0 {
		return nil, apperrors.ErrValidation.WithMessage("no fields to update")
	}

	if err := s.userRepo.Update(ctx, userID, fields.Map()); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, audit.Entry{
		Action:   audit.ActionProfileUpdated,
		ActorID:  userID,
		Metadata: models.JSON{"fields": fields.Columns()},
	})
	return s.userRepo.GetByID(ctx, userID)
}

func (s *service) UploadAvatar(ctx context.Context, userID, filename string, data []byte) (string, error) {
	url, err := s.uploader.Upload(ctx, filename, data)
	if err != nil {
		return "", err
	}
	if err := s.userRepo.Update(ctx, userID, map[string]interface{}{"profile_image": url}); err != nil {
		return "", err
	}
	s.audit.Record(ctx, audit.Entry{
		Action:   audit.ActionProfileAvatar,
		ActorID:  userID,
		Metadata: models.JSON{"url": url},
	})
	return url, nil
}
