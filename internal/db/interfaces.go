package db

import (
	"context"

	"keycrypt-backend/internal/models"
)

// StoredRecord is one document as the store holds it: the store-assigned id
// plus the (possibly encrypted) field map.
type StoredRecord struct {
	ID   string
	Data map[string]interface{}
}

// CredentialRepository stores encrypted credential records under
// credentials/{uid}/userCredentials. It deals only in opaque field maps; the
// codec runs above it.
type CredentialRepository interface {
	Create(ctx context.Context, userID string, data map[string]interface{}) (string, error)
	List(ctx context.Context, userID string) ([]StoredRecord, error)
	// Replace overwrites the full document; it fails with not-found semantics
	// when the record does not exist in the user's scope.
	Replace(ctx context.Context, userID, credentialID string, data map[string]interface{}) error
	// Delete checks existence first and fails with not-found semantics on an
	// absent record.
	Delete(ctx context.Context, userID, credentialID string) error
}

// ActivityRepository stores login/session events under
// activity-info/{uid}/userActivityInfo/{credentialId}/activities.
type ActivityRepository interface {
	Create(ctx context.Context, userID, credentialID string, entry *models.ActivityEntry) (string, error)
	ListByCredential(ctx context.Context, userID, credentialID string) ([]*models.ActivityEntry, error)
	// PartialUpdate merges only the patched fields into the stored entry.
	PartialUpdate(ctx context.Context, userID, credentialID, activityID string, patch map[string]interface{}) error
}

// CompromisedRepository stores breach records under
// compromised-info/{uid}/userCompromisedInfo.
type CompromisedRepository interface {
	Create(ctx context.Context, userID string, entry *models.CompromisedEntry) (string, error)
	List(ctx context.Context, userID string) ([]*models.CompromisedEntry, error)
	PartialUpdate(ctx context.Context, userID, entryID string, patch map[string]interface{}) error
}

// FeatureRepository appends password feature vectors under
// password-features/{uid}/userPasswordFeatures. Vectors are only appended,
// never updated or deleted.
type FeatureRepository interface {
	Create(ctx context.Context, userID string, feature *models.PasswordFeature) (string, error)
}

// AuditRepository appends audit trail events under audit-logs/{uid}/entries.
type AuditRepository interface {
	Create(ctx context.Context, userID string, entry models.AuditLog) error
}
