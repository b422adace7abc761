package db

import (
	"context"
	"log"

	"cloud.google.com/go/firestore"

	"keycrypt-backend/internal/models"
)

const (
	featuresCollection  = "password-features"
	userFeaturesSubcoll = "userPasswordFeatures"
)

// firestoreFeatureRepository implements FeatureRepository on Firestore.
type firestoreFeatureRepository struct {
	client *firestore.Client
}

// NewFirestoreFeatureRepository creates a FeatureRepository backed by the
// given Firestore client.
func NewFirestoreFeatureRepository(client *firestore.Client) FeatureRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for FeatureRepository.")
	}
	return &firestoreFeatureRepository{client: client}
}

// Create appends one feature vector; the collection is append-only, so there
// are no update or delete operations here.
func (r *firestoreFeatureRepository) Create(ctx context.Context, userID string, feature *models.PasswordFeature) (string, error) {
	if err := requireIDs(userID); err != nil {
		return "", err
	}
	docRef, _, err := r.client.Collection(featuresCollection).
		Doc(userID).
		Collection(userFeaturesSubcoll).
		Add(ctx, feature)
	if err != nil {
		return "", translate("create password feature", err)
	}
	return docRef.ID, nil
}
