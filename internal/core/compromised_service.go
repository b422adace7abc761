package core

import (
	"context"

	"github.com/go-playground/validator/v10"

	"keycrypt-backend/internal/apperror"
	"keycrypt-backend/internal/db"
	"keycrypt-backend/internal/models"
)

// compromisedService implements CompromisedService.
type compromisedService struct {
	repo     db.CompromisedRepository
	validate *validator.Validate
	audit    AuditService
}

// NewCompromisedService creates a CompromisedService.
func NewCompromisedService(repo db.CompromisedRepository, validate *validator.Validate, audit AuditService) CompromisedService {
	return &compromisedService{repo: repo, validate: validate, audit: audit}
}

func (s *compromisedService) CreateBulk(ctx context.Context, userID string, entries []models.CompromisedEntry) (*BulkResult, error) {
	result := &BulkResult{}
	for i := range entries {
		entry := entries[i]
		if err := s.validate.Struct(&entry); err != nil {
			verr := apperror.FromValidator(err)
			result.Failures = append(result.Failures, BulkFailure{Index: i, Input: entries[i], Error: verr.Error()})
			continue
		}
		id, err := s.repo.Create(ctx, userID, &entry)
		if err != nil {
			result.Failures = append(result.Failures, BulkFailure{Index: i, Input: entries[i], Error: err.Error()})
			continue
		}
		result.CreatedIDs = append(result.CreatedIDs, id)
	}

	s.audit.Record(ctx, userID, models.AuditLog{
		Action:     "COMPROMISED_IMPORT",
		TargetType: "COMPROMISED",
		Details: map[string]interface{}{
			"created": len(result.CreatedIDs),
			"failed":  len(result.Failures),
		},
	})
	return result, nil
}

func (s *compromisedService) List(ctx context.Context, userID string) ([]*models.CompromisedEntry, error) {
	return s.repo.List(ctx, userID)
}

func (s *compromisedService) Update(ctx context.Context, userID, entryID string, req models.UpdateCompromisedRequest) error {
	patch := req.Patch()
	if len(patch) == 0 {
		return apperror.Validationf("payload", "no fields to update")
	}
	return s.repo.PartialUpdate(ctx, userID, entryID, patch)
}
