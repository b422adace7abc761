package core

import (
	"context"

	"keycrypt-backend/internal/models"
)

// CredentialService owns the confidential resource: every stored field is
// encrypted on write and decrypted on read.
type CredentialService interface {
	Create(ctx context.Context, userID string, payload models.Credential) (*models.Credential, error)
	CreateBulk(ctx context.Context, userID string, payloads []models.Credential) (*BulkResult, error)
	List(ctx context.Context, userID string) ([]*models.Credential, error)
	Replace(ctx context.Context, userID, credentialID string, payload models.Credential) (*models.Credential, error)
	Delete(ctx context.Context, userID, credentialID string) error
}

// ActivityService manages login/session events nested under a credential.
type ActivityService interface {
	CreateBulk(ctx context.Context, userID, userEmail, credentialID string, entries []models.ActivityEntry) (*BulkResult, error)
	List(ctx context.Context, userID, credentialID string) ([]*models.ActivityEntry, error)
	Update(ctx context.Context, userID, credentialID, activityID string, req models.UpdateActivityRequest) error
}

// CompromisedService manages breach records scoped directly to the user.
type CompromisedService interface {
	CreateBulk(ctx context.Context, userID string, entries []models.CompromisedEntry) (*BulkResult, error)
	List(ctx context.Context, userID string) ([]*models.CompromisedEntry, error)
	Update(ctx context.Context, userID, entryID string, req models.UpdateCompromisedRequest) error
}

// FeatureService appends password feature vectors for the strength engine.
type FeatureService interface {
	Report(ctx context.Context, userID string, feature models.PasswordFeature) (string, error)
}

// AuditService appends audit trail events. Best-effort: implementations log
// failures instead of surfacing them, so auditing never fails a request.
type AuditService interface {
	Record(ctx context.Context, userID string, entry models.AuditLog)
}

// Alerter notifies a user out-of-band about suspicious activity found during
// an import. A nil Alerter disables notifications.
type Alerter interface {
	SuspiciousActivity(recipient, credentialID string, count int) error
}
