package repositories

import (
	"errors"

	apperrors "smartdash/internal/errors"

	"gorm.io/gorm"
)

// notFound turns gorm's ErrRecordNotFound into the domain error.
func notFound(err error, entity, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrNotFound.WithMessage("%s %s not found", entity, id)
	}
	return err
}

// checkAffected reports a missing row for writes keyed by id.
func checkAffected(res *gorm.DB, entity, id string) error {
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound.WithMessage("%s %s not found", entity, id)
	}
	return nil
}
