package core

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"keycrypt-backend/internal/apperror"
	"keycrypt-backend/internal/db"
	"keycrypt-backend/internal/models"
)

// activityService implements ActivityService. Activity entries are stored in
// plaintext: they are session metadata, not secrets.
type activityService struct {
	repo     db.ActivityRepository
	validate *validator.Validate
	audit    AuditService
	alerter  Alerter
	logger   *zap.Logger
}

// NewActivityService creates an ActivityService. alerter may be nil, which
// disables suspicious-activity notifications.
func NewActivityService(
	repo db.ActivityRepository,
	validate *validator.Validate,
	audit AuditService,
	alerter Alerter,
	logger *zap.Logger,
) ActivityService {
	return &activityService{
		repo:     repo,
		validate: validate,
		audit:    audit,
		alerter:  alerter,
		logger:   logger,
	}
}

// CreateBulk stores the entries one by one, reporting failures per original
// index. If any stored entry is flagged suspicious and the caller's email is
// known, a best-effort alert goes out after the batch.
func (s *activityService) CreateBulk(ctx context.Context, userID, userEmail, credentialID string, entries []models.ActivityEntry) (*BulkResult, error) {
	result := &BulkResult{}
	suspicious := 0
	for i := range entries {
		entry := entries[i]
		if err := s.validate.Struct(&entry); err != nil {
			verr := apperror.FromValidator(err)
			result.Failures = append(result.Failures, BulkFailure{Index: i, Input: entries[i], Error: verr.Error()})
			continue
		}
		id, err := s.repo.Create(ctx, userID, credentialID, &entry)
		if err != nil {
			result.Failures = append(result.Failures, BulkFailure{Index: i, Input: entries[i], Error: err.Error()})
			continue
		}
		result.CreatedIDs = append(result.CreatedIDs, id)
		if entry.Suspicious {
			suspicious++
		}
	}

	s.audit.Record(ctx, userID, models.AuditLog{
		Action:     "ACTIVITY_IMPORT",
		TargetType: "CREDENTIAL",
		TargetID:   credentialID,
		Details: map[string]interface{}{
			"created":    len(result.CreatedIDs),
			"failed":     len(result.Failures),
			"suspicious": suspicious,
		},
	})

	if suspicious > 0 && s.alerter != nil && userEmail != "" {
		if err := s.alerter.SuspiciousActivity(userEmail, credentialID, suspicious); err != nil {
			s.logger.Warn("failed to send suspicious-activity alert",
				zap.String("credential_id", credentialID),
				zap.Error(err),
			)
		}
	}
	return result, nil
}

func (s *activityService) List(ctx context.Context, userID, credentialID string) ([]*models.ActivityEntry, error) {
	return s.repo.ListByCredential(ctx, userID, credentialID)
}

// Update applies a merge patch: only fields present in the request are
// touched, everything else on the stored entry stays as it was.
func (s *activityService) Update(ctx context.Context, userID, credentialID, activityID string, req models.UpdateActivityRequest) error {
	if err := s.validate.Struct(&req); err != nil {
		return apperror.FromValidator(err)
	}
	patch := req.Patch()
	if len(patch) == 0 {
		return apperror.Validationf("payload", "no fields to update")
	}
	return s.repo.PartialUpdate(ctx, userID, credentialID, activityID, patch)
}
