package core

import (
	"context"

	"github.com/go-playground/validator/v10"

	"keycrypt-backend/internal/apperror"
	"keycrypt-backend/internal/db"
	"keycrypt-backend/internal/models"
)

// featureService implements FeatureService. The collection is append-only;
// there is nothing to update or delete.
type featureService struct {
	repo     db.FeatureRepository
	validate *validator.Validate
}

// NewFeatureService creates a FeatureService.
func NewFeatureService(repo db.FeatureRepository, validate *validator.Validate) FeatureService {
	return &featureService{repo: repo, validate: validate}
}

func (s *featureService) Report(ctx context.Context, userID string, feature models.PasswordFeature) (string, error) {
	if err := s.validate.Struct(&feature); err != nil {
		return "", apperror.FromValidator(err)
	}
	return s.repo.Create(ctx, userID, &feature)
}
