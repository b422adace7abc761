package db

import (
	"context"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

const (
	credentialsCollection  = "credentials"
	userCredentialsSubcoll = "userCredentials"
)

// firestoreCredentialRepository implements CredentialRepository on Firestore.
type firestoreCredentialRepository struct {
	client *firestore.Client
}

// NewFirestoreCredentialRepository creates a CredentialRepository backed by
// the given Firestore client.
func NewFirestoreCredentialRepository(client *firestore.Client) CredentialRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for CredentialRepository.")
	}
	return &firestoreCredentialRepository{client: client}
}

func (r *firestoreCredentialRepository) scope(userID string) *firestore.CollectionRef {
	return r.client.Collection(credentialsCollection).Doc(userID).Collection(userCredentialsSubcoll)
}

// Create appends one encrypted record to the user's credential collection and
// returns the store-assigned document id.
func (r *firestoreCredentialRepository) Create(ctx context.Context, userID string, data map[string]interface{}) (string, error) {
	if err := requireIDs(userID); err != nil {
		return "", err
	}
	docRef, _, err := r.scope(userID).Add(ctx, data)
	if err != nil {
		return "", translate("create credential", err)
	}
	return docRef.ID, nil
}

// List fetches every document in the user's credential scope, in store order.
func (r *firestoreCredentialRepository) List(ctx context.Context, userID string) ([]StoredRecord, error) {
	if err := requireIDs(userID); err != nil {
		return nil, err
	}
	iter := r.scope(userID).Documents(ctx)
	defer iter.Stop()

	var records []StoredRecord
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, translate("list credentials", err)
		}
		records = append(records, StoredRecord{ID: doc.Ref.ID, Data: doc.Data()})
	}
	return records, nil
}

// Replace overwrites the full document after confirming it exists, so a PUT
// against an unknown id surfaces not-found instead of silently creating.
func (r *firestoreCredentialRepository) Replace(ctx context.Context, userID, credentialID string, data map[string]interface{}) error {
	if err := requireIDs(userID, credentialID); err != nil {
		return err
	}
	docRef := r.scope(userID).Doc(credentialID)
	if _, err := docRef.Get(ctx); err != nil {
		return translate("replace credential", err)
	}
	if _, err := docRef.Set(ctx, data); err != nil {
		return translate("replace credential", err)
	}
	return nil
}

// Delete removes the document after an existence check; deleting an absent
// record reports not-found rather than silent success.
func (r *firestoreCredentialRepository) Delete(ctx context.Context, userID, credentialID string) error {
	if err := requireIDs(userID, credentialID); err != nil {
		return err
	}
	docRef := r.scope(userID).Doc(credentialID)
	if _, err := docRef.Get(ctx); err != nil {
		return translate("delete credential", err)
	}
	if _, err := docRef.Delete(ctx); err != nil {
		return translate("delete credential", err)
	}
	return nil
}
