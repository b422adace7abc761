package db

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"keycrypt-backend/internal/apperror"
)

// errEmptyUserID guards scoped path construction: an empty user id means no
// verified identity reached the repository, which must never happen.
var errEmptyUserID = fmt.Errorf("%w: user id is empty", apperror.ErrUnauthorized)

// translate classifies a Firestore client error into the shared taxonomy:
// grpc NotFound becomes apperror.ErrNotFound, everything else is a backend
// failure.
func translate(op string, err error) error {
	if status.Code(err) == codes.NotFound {
		return fmt.Errorf("%s: %w", op, apperror.ErrNotFound)
	}
	return fmt.Errorf("%s: %w: %v", op, apperror.ErrBackend, err)
}

// requireIDs validates that every path segment is non-empty before a document
// path is built from them.
func requireIDs(userID string, segments ...string) error {
	if userID == "" {
		return errEmptyUserID
	}
	for _, s := range segments {
		if s == "" {
			return errors.New("document path segment cannot be empty")
		}
	}
	return nil
}
