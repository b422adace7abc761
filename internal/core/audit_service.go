package core

import (
	"context"
	"time"

	"go.uber.org/zap"

	"keycrypt-backend/internal/db"
	"keycrypt-backend/internal/models"
)

// auditService implements AuditService over an AuditRepository.
type auditService struct {
	auditRepo db.AuditRepository
	logger    *zap.Logger
}

// NewAuditService creates an AuditService. Writes are best-effort; repository
// failures are logged and swallowed so auditing never fails the operation it
// describes.
func NewAuditService(auditRepo db.AuditRepository, logger *zap.Logger) AuditService {
	return &auditService{auditRepo: auditRepo, logger: logger}
}

func (s *auditService) Record(ctx context.Context, userID string, entry models.AuditLog) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	if entry.IPAddress == "" {
		entry.IPAddress = ClientIPFromContext(ctx)
	}
	if err := s.auditRepo.Create(ctx, userID, entry); err != nil {
		s.logger.Warn("failed to write audit log",
			zap.String("action", entry.Action),
			zap.String("target_id", entry.TargetID),
			zap.Error(err),
		)
	}
}
