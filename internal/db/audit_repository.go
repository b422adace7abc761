package db

import (
	"context"
	"log"

	"cloud.google.com/go/firestore"

	"keycrypt-backend/internal/models"
)

const (
	auditCollection     = "audit-logs"
	auditEntriesSubcoll = "entries"
)

// firestoreAuditRepository implements AuditRepository on Firestore.
type firestoreAuditRepository struct {
	client *firestore.Client
}

// NewFirestoreAuditRepository creates an AuditRepository backed by the given
// Firestore client.
func NewFirestoreAuditRepository(client *firestore.Client) AuditRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for AuditRepository.")
	}
	return &firestoreAuditRepository{client: client}
}

func (r *firestoreAuditRepository) Create(ctx context.Context, userID string, entry models.AuditLog) error {
	if err := requireIDs(userID); err != nil {
		return err
	}
	_, _, err := r.client.Collection(auditCollection).
		Doc(userID).
		Collection(auditEntriesSubcoll).
		Add(ctx, entry)
	if err != nil {
		return translate("create audit log", err)
	}
	return nil
}
