package models

import "time"

// PasswordFeature is an ML-ready numeric feature vector derived from a
// password on the client. The password itself never appears here. Records are
// append-only: never updated or deleted.
type PasswordFeature struct {
	ID                  string    `json:"id" firestore:"-"`
	Length              int       `json:"length" firestore:"length" validate:"required,gt=0"`
	UniqueChars         int       `json:"uniqueChars" firestore:"uniqueChars" validate:"gte=0"`
	UpperRatio          float64   `json:"upperRatio" firestore:"upperRatio" validate:"gte=0,lte=1"`
	LowerRatio          float64   `json:"lowerRatio" firestore:"lowerRatio" validate:"gte=0,lte=1"`
	DigitRatio          float64   `json:"digitRatio" firestore:"digitRatio" validate:"gte=0,lte=1"`
	SymbolRatio         float64   `json:"symbolRatio" firestore:"symbolRatio" validate:"gte=0,lte=1"`
	Entropy             float64   `json:"entropy" firestore:"entropy" validate:"gte=0"`
	TransitionDiversity float64   `json:"transitionDiversity" firestore:"transitionDiversity" validate:"gte=0,lte=1"`
	SimilarityToUser    float64   `json:"similarityToUser" firestore:"similarityToUser" validate:"gte=0,lte=1"`
	Embedding           []float64 `json:"embedding,omitempty" firestore:"embedding,omitempty"`
	CreatedAt           time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
}
