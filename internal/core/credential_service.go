package core

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"keycrypt-backend/internal/apperror"
	"keycrypt-backend/internal/crypto"
	"keycrypt-backend/internal/db"
	"keycrypt-backend/internal/models"
)

// credentialService implements CredentialService. It runs the
// validate -> encrypt -> write pipeline on the way in and decrypt-on-read on
// the way out; the repository below it only ever sees ciphertext.
type credentialService struct {
	repo     db.CredentialRepository
	codec    *crypto.Codec
	validate *validator.Validate
	audit    AuditService
}

// NewCredentialService creates a CredentialService.
func NewCredentialService(
	repo db.CredentialRepository,
	codec *crypto.Codec,
	validate *validator.Validate,
	audit AuditService,
) CredentialService {
	return &credentialService{
		repo:     repo,
		codec:    codec,
		validate: validate,
		audit:    audit,
	}
}

// prepare validates and encrypts one payload. Encryption is all-or-nothing,
// so no write is ever attempted with a half-encrypted record.
func (s *credentialService) prepare(payload *models.Credential) (map[string]interface{}, error) {
	payload.Normalize()
	if err := s.validate.Struct(payload); err != nil {
		return nil, apperror.FromValidator(err)
	}
	encrypted, err := s.codec.EncryptRecord(payload.Record())
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt credential: %w", err)
	}
	return encrypted, nil
}

func (s *credentialService) Create(ctx context.Context, userID string, payload models.Credential) (*models.Credential, error) {
	encrypted, err := s.prepare(&payload)
	if err != nil {
		return nil, err
	}
	id, err := s.repo.Create(ctx, userID, encrypted)
	if err != nil {
		return nil, err
	}
	payload.ID = id

	s.audit.Record(ctx, userID, models.AuditLog{
		Action:     "CREDENTIAL_CREATE",
		TargetType: "CREDENTIAL",
		TargetID:   id,
	})
	return &payload, nil
}

// CreateBulk processes payloads independently: a failure on one element never
// aborts the rest, and every failure keeps its original input index.
func (s *credentialService) CreateBulk(ctx context.Context, userID string, payloads []models.Credential) (*BulkResult, error) {
	result := &BulkResult{}
	for i := range payloads {
		payload := payloads[i]
		encrypted, err := s.prepare(&payload)
		if err != nil {
			result.Failures = append(result.Failures, BulkFailure{Index: i, Input: payloads[i], Error: err.Error()})
			continue
		}
		id, err := s.repo.Create(ctx, userID, encrypted)
		if err != nil {
			result.Failures = append(result.Failures, BulkFailure{Index: i, Input: payloads[i], Error: err.Error()})
			continue
		}
		result.CreatedIDs = append(result.CreatedIDs, id)
	}

	s.audit.Record(ctx, userID, models.AuditLog{
		Action:     "CREDENTIAL_IMPORT",
		TargetType: "CREDENTIAL",
		Details: map[string]interface{}{
			"created": len(result.CreatedIDs),
			"failed":  len(result.Failures),
		},
	})
	return result, nil
}

// List fetches and decrypts every credential in the user's scope. One
// undecryptable document fails the whole list: returning a partially
// decrypted vault would hide a data-integrity problem.
func (s *credentialService) List(ctx context.Context, userID string) ([]*models.Credential, error) {
	stored, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	credentials := make([]*models.Credential, 0, len(stored))
	for _, rec := range stored {
		plain, err := s.codec.DecryptRecord(rec.Data)
		if err != nil {
			return nil, fmt.Errorf("credential %s: %w", rec.ID, err)
		}
		credential, err := models.CredentialFromRecord(rec.ID, plain)
		if err != nil {
			return nil, fmt.Errorf("credential %s: %w: %v", rec.ID, apperror.ErrDecryption, err)
		}
		credentials = append(credentials, credential)
	}
	return credentials, nil
}

// Replace overwrites the full document, re-encrypting every field.
func (s *credentialService) Replace(ctx context.Context, userID, credentialID string, payload models.Credential) (*models.Credential, error) {
	encrypted, err := s.prepare(&payload)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Replace(ctx, userID, credentialID, encrypted); err != nil {
		return nil, err
	}
	payload.ID = credentialID

	s.audit.Record(ctx, userID, models.AuditLog{
		Action:     "CREDENTIAL_UPDATE",
		TargetType: "CREDENTIAL",
		TargetID:   credentialID,
	})
	return &payload, nil
}

func (s *credentialService) Delete(ctx context.Context, userID, credentialID string) error {
	if err := s.repo.Delete(ctx, userID, credentialID); err != nil {
		return err
	}
	s.audit.Record(ctx, userID, models.AuditLog{
		Action:     "CREDENTIAL_DELETE",
		TargetType: "CREDENTIAL",
		TargetID:   credentialID,
	})
	return nil
}
