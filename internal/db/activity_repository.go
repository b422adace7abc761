package db

import (
	"context"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"keycrypt-backend/internal/models"
)

const (
	activityCollection  = "activity-info"
	userActivitySubcoll = "userActivityInfo"
	activitiesSubcoll   = "activities"
)

// firestoreActivityRepository implements ActivityRepository on Firestore.
type firestoreActivityRepository struct {
	client *firestore.Client
}

// NewFirestoreActivityRepository creates an ActivityRepository backed by the
// given Firestore client.
func NewFirestoreActivityRepository(client *firestore.Client) ActivityRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for ActivityRepository.")
	}
	return &firestoreActivityRepository{client: client}
}

func (r *firestoreActivityRepository) scope(userID, credentialID string) *firestore.CollectionRef {
	return r.client.Collection(activityCollection).
		Doc(userID).
		Collection(userActivitySubcoll).
		Doc(credentialID).
		Collection(activitiesSubcoll)
}

func (r *firestoreActivityRepository) Create(ctx context.Context, userID, credentialID string, entry *models.ActivityEntry) (string, error) {
	if err := requireIDs(userID, credentialID); err != nil {
		return "", err
	}
	docRef, _, err := r.scope(userID, credentialID).Add(ctx, entry)
	if err != nil {
		return "", translate("create activity entry", err)
	}
	return docRef.ID, nil
}

func (r *firestoreActivityRepository) ListByCredential(ctx context.Context, userID, credentialID string) ([]*models.ActivityEntry, error) {
	if err := requireIDs(userID, credentialID); err != nil {
		return nil, err
	}
	iter := r.scope(userID, credentialID).Documents(ctx)
	defer iter.Stop()

	var entries []*models.ActivityEntry
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, translate("list activity entries", err)
		}
		var entry models.ActivityEntry
		if err := doc.DataTo(&entry); err != nil {
			return nil, translate("decode activity entry "+doc.Ref.ID, err)
		}
		entry.ID = doc.Ref.ID
		entries = append(entries, &entry)
	}
	return entries, nil
}

// PartialUpdate merges only the patched fields; the existence check keeps
// merge-set from creating a document for an unknown id.
func (r *firestoreActivityRepository) PartialUpdate(ctx context.Context, userID, credentialID, activityID string, patch map[string]interface{}) error {
	if err := requireIDs(userID, credentialID, activityID); err != nil {
		return err
	}
	docRef := r.scope(userID, credentialID).Doc(activityID)
	if _, err := docRef.Get(ctx); err != nil {
		return translate("update activity entry", err)
	}
	if _, err := docRef.Set(ctx, patch, firestore.MergeAll); err != nil {
		return translate("update activity entry", err)
	}
	return nil
}
