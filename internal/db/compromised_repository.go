package db

import (
	"context"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"keycrypt-backend/internal/models"
)

const (
	compromisedCollection  = "compromised-info"
	userCompromisedSubcoll = "userCompromisedInfo"
)

// firestoreCompromisedRepository implements CompromisedRepository on Firestore.
type firestoreCompromisedRepository struct {
	client *firestore.Client
}

// NewFirestoreCompromisedRepository creates a CompromisedRepository backed by
// the given Firestore client.
func NewFirestoreCompromisedRepository(client *firestore.Client) CompromisedRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for CompromisedRepository.")
	}
	return &firestoreCompromisedRepository{client: client}
}

func (r *firestoreCompromisedRepository) scope(userID string) *firestore.CollectionRef {
	return r.client.Collection(compromisedCollection).Doc(userID).Collection(userCompromisedSubcoll)
}

func (r *firestoreCompromisedRepository) Create(ctx context.Context, userID string, entry *models.CompromisedEntry) (string, error) {
	if err := requireIDs(userID); err != nil {
		return "", err
	}
	docRef, _, err := r.scope(userID).Add(ctx, entry)
	if err != nil {
		return "", translate("create compromised entry", err)
	}
	return docRef.ID, nil
}

func (r *firestoreCompromisedRepository) List(ctx context.Context, userID string) ([]*models.CompromisedEntry, error) {
	if err := requireIDs(userID); err != nil {
		return nil, err
	}
	iter := r.scope(userID).Documents(ctx)
	defer iter.Stop()

	var entries []*models.CompromisedEntry
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, translate("list compromised entries", err)
		}
		var entry models.CompromisedEntry
		if err := doc.DataTo(&entry); err != nil {
			return nil, translate("decode compromised entry "+doc.Ref.ID, err)
		}
		entry.ID = doc.Ref.ID
		entries = append(entries, &entry)
	}
	return entries, nil
}

func (r *firestoreCompromisedRepository) PartialUpdate(ctx context.Context, userID, entryID string, patch map[string]interface{}) error {
	if err := requireIDs(userID, entryID); err != nil {
		return err
	}
	docRef := r.scope(userID).Doc(entryID)
	if _, err := docRef.Get(ctx); err != nil {
		return translate("update compromised entry", err)
	}
	if _, err := docRef.Set(ctx, patch, firestore.MergeAll); err != nil {
		return translate("update compromised entry", err)
	}
	return nil
}
