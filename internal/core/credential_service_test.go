package core

import (
	"context"
	"crypto/rand"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"keycrypt-backend/internal/apperror"
	"keycrypt-backend/internal/crypto"
	"keycrypt-backend/internal/db"
	"keycrypt-backend/internal/models"
)

// fakeCredentialRepo keeps encrypted records in memory, scoped per user id,
// with the same not-found semantics as the Firestore repository.
type fakeCredentialRepo struct {
	byUser map[string]map[string]map[string]interface{}
	nextID int
	// seenUserIDs records the user id of every call, for isolation checks.
	seenUserIDs []string
	failCreate  bool
}

func newFakeCredentialRepo() *fakeCredentialRepo {
	return &fakeCredentialRepo{byUser: make(map[string]map[string]map[string]interface{})}
}

func (f *fakeCredentialRepo) scope(userID string) map[string]map[string]interface{} {
	f.seenUserIDs = append(f.seenUserIDs, userID)
	if f.byUser[userID] == nil {
		f.byUser[userID] = make(map[string]map[string]interface{})
	}
	return f.byUser[userID]
}

func (f *fakeCredentialRepo) Create(_ context.Context, userID string, data map[string]interface{}) (string, error) {
	if f.failCreate {
		return "", fmt.Errorf("create credential: %w", apperror.ErrBackend)
	}
	f.nextID++
	id := fmt.Sprintf("doc-%d", f.nextID)
	f.scope(userID)[id] = data
	return id, nil
}

func (f *fakeCredentialRepo) List(_ context.Context, userID string) ([]db.StoredRecord, error) {
	scope := f.scope(userID)
	records := make([]db.StoredRecord, 0, len(scope))
	for i := 1; i <= f.nextID; i++ {
		id := fmt.Sprintf("doc-%d", i)
		if data, ok := scope[id]; ok {
			records = append(records, db.StoredRecord{ID: id, Data: data})
		}
	}
	return records, nil
}

func (f *fakeCredentialRepo) Replace(_ context.Context, userID, credentialID string, data map[string]interface{}) error {
	scope := f.scope(userID)
	if _, ok := scope[credentialID]; !ok {
		return fmt.Errorf("replace credential: %w", apperror.ErrNotFound)
	}
	scope[credentialID] = data
	return nil
}

func (f *fakeCredentialRepo) Delete(_ context.Context, userID, credentialID string) error {
	scope := f.scope(userID)
	if _, ok := scope[credentialID]; !ok {
		return fmt.Errorf("delete credential: %w", apperror.ErrNotFound)
	}
	delete(scope, credentialID)
	return nil
}

type fakeAuditRepo struct {
	entries []models.AuditLog
}

func (f *fakeAuditRepo) Create(_ context.Context, _ string, entry models.AuditLog) error {
	f.entries = append(f.entries, entry)
	return nil
}

func newTestCodec(t *testing.T) *crypto.Codec {
	t.Helper()
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)
	cipher, err := crypto.NewCipher(key)
	require.NoError(t, err)
	return crypto.NewCodec(cipher, "keywords")
}

func newCredentialService(t *testing.T, repo db.CredentialRepository) CredentialService {
	t.Helper()
	audit := NewAuditService(&fakeAuditRepo{}, zap.NewNop())
	return NewCredentialService(repo, newTestCodec(t), models.NewValidator(), audit)
}

func TestCredentialService_CreateEncryptsAtRest(t *testing.T) {
	repo := newFakeCredentialRepo()
	svc := newCredentialService(t, repo)

	created, err := svc.Create(context.Background(), "user-a", models.Credential{
		Website:  "a.com",
		Username: "bob123",
		Password: "pass123",
		Keywords: []string{"mail", "work"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	stored := repo.byUser["user-a"][created.ID]
	require.NotNil(t, stored)
	// Every stored field is ciphertext; no plaintext at rest.
	assert.NotEqual(t, "a.com", stored["website"])
	assert.NotEqual(t, "bob123", stored["username"])
	assert.NotEqual(t, "pass123", stored["password"])
	keywords, ok := stored["keywords"].([]string)
	require.True(t, ok)
	require.Len(t, keywords, 2)
	assert.NotEqual(t, "mail", keywords[0])
}

func TestCredentialService_ListRoundTrips(t *testing.T) {
	repo := newFakeCredentialRepo()
	svc := newCredentialService(t, repo)
	ctx := context.Background()

	want := []models.Credential{
		{Website: "a.com", Username: "bob123", Password: "pass123"},
		{Website: "b.com", Username: "carol99", Password: "secret99", Keywords: []string{"bank"}},
	}
	for _, c := range want {
		_, err := svc.Create(ctx, "user-a", c)
		require.NoError(t, err)
	}

	got, err := svc.List(ctx, "user-a")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a.com", got[0].Website)
	assert.Equal(t, "pass123", got[0].Password)
	assert.Equal(t, []string{"bank"}, got[1].Keywords)
}

func TestCredentialService_ListFailsWholeOnCorruptDocument(t *testing.T) {
	repo := newFakeCredentialRepo()
	svc := newCredentialService(t, repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, "user-a", models.Credential{Website: "a.com", Username: "bob123", Password: "pass123"})
	require.NoError(t, err)

	// A document written under some other key is undecryptable here.
	repo.nextID++
	repo.byUser["user-a"][fmt.Sprintf("doc-%d", repo.nextID)] = map[string]interface{}{
		"website": "bm90IGEgcmVhbCBjaXBoZXJ0ZXh0IGF0IGFsbA==",
	}

	_, err = svc.List(ctx, "user-a")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrDecryption)
}

func TestCredentialService_ScopingIsolation(t *testing.T) {
	repo := newFakeCredentialRepo()
	svc := newCredentialService(t, repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, "user-a", models.Credential{Website: "a.com", Username: "bob123", Password: "pass123"})
	require.NoError(t, err)

	// User B sees nothing of user A's scope.
	got, err := svc.List(ctx, "user-b")
	require.NoError(t, err)
	assert.Empty(t, got)

	// Nor can B mutate or delete A's record by id.
	_, err = svc.Replace(ctx, "user-b", created.ID, models.Credential{Website: "x.com", Username: "mallory1", Password: "123456"})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	err = svc.Delete(ctx, "user-b", created.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	// The repository only ever saw the verified ids the service was handed.
	for _, uid := range repo.seenUserIDs {
		assert.Contains(t, []string{"user-a", "user-b"}, uid)
	}
}

func TestCredentialService_ReplaceReEncrypts(t *testing.T) {
	repo := newFakeCredentialRepo()
	svc := newCredentialService(t, repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, "user-a", models.Credential{Website: "a.com", Username: "bob123", Password: "pass123"})
	require.NoError(t, err)
	before := repo.byUser["user-a"][created.ID]["password"]

	_, err = svc.Replace(ctx, "user-a", created.ID, models.Credential{Website: "a.com", Username: "bob123", Password: "newpass1"})
	require.NoError(t, err)
	after := repo.byUser["user-a"][created.ID]["password"]
	assert.NotEqual(t, before, after)

	got, err := svc.List(ctx, "user-a")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "newpass1", got[0].Password)
}

func TestCredentialService_DeleteThenDelete(t *testing.T) {
	repo := newFakeCredentialRepo()
	svc := newCredentialService(t, repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, "user-a", models.Credential{Website: "a.com", Username: "bob123", Password: "pass123"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "user-a", created.ID))

	err = svc.Delete(ctx, "user-a", created.ID)
	require.Error(t, err, "second delete must not be a silent success")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestCredentialService_CreateRejectsInvalid(t *testing.T) {
	repo := newFakeCredentialRepo()
	svc := newCredentialService(t, repo)

	_, err := svc.Create(context.Background(), "user-a", models.Credential{Website: "a.com", Username: "ab", Password: "pass123"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrValidation)
	assert.Empty(t, repo.byUser["user-a"], "nothing may be written for an invalid payload")
}

func TestCredentialService_BulkPartialFailure(t *testing.T) {
	repo := newFakeCredentialRepo()
	svc := newCredentialService(t, repo)

	inputs := []models.Credential{
		{Website: "a.com", Username: "bob123", Password: "pass12"},
		{Website: "", Username: "x", Password: "y"},
		{Website: "b.com", Username: "carol99", Password: "pass23"},
	}
	result, err := svc.CreateBulk(context.Background(), "user-a", inputs)
	require.NoError(t, err)

	assert.Len(t, result.CreatedIDs, 2)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, 1, result.Failures[0].Index)
	assert.Equal(t, inputs[1], result.Failures[0].Input)
	assert.NotEmpty(t, result.Failures[0].Error)
	assert.Equal(t, BulkPartial, result.Status())
}

func TestCredentialService_BulkFailureIndices(t *testing.T) {
	repo := newFakeCredentialRepo()
	svc := newCredentialService(t, repo)

	// Index 1 has a too-short username, index 3 a malformed email username.
	inputs := []models.Credential{
		{Website: "a.com", Username: "alice77", Password: "pass12"},
		{Website: "b.com", Username: "ab", Password: "pass12"},
		{Website: "c.com", Username: "carol99", Password: "pass12"},
		{Website: "d.com", Username: "dave@", Password: "pass12"},
		{Website: "e.com", Username: "erin55", Password: "pass12"},
	}
	result, err := svc.CreateBulk(context.Background(), "user-a", inputs)
	require.NoError(t, err)

	assert.Len(t, result.CreatedIDs, 3)
	require.Len(t, result.Failures, 2)
	assert.Equal(t, 1, result.Failures[0].Index)
	assert.Equal(t, 3, result.Failures[1].Index)
	assert.Equal(t, BulkPartial, result.Status())
}

func TestCredentialService_BulkAllFailAndAllSucceed(t *testing.T) {
	repo := newFakeCredentialRepo()
	svc := newCredentialService(t, repo)
	ctx := context.Background()

	allBad, err := svc.CreateBulk(ctx, "user-a", []models.Credential{
		{Website: "", Username: "x", Password: "y"},
		{Website: "", Username: "z", Password: "w"},
	})
	require.NoError(t, err)
	assert.Empty(t, allBad.CreatedIDs)
	assert.Equal(t, BulkFailed, allBad.Status())

	allGood, err := svc.CreateBulk(ctx, "user-a", []models.Credential{
		{Website: "a.com", Username: "bob123", Password: "pass12"},
		{Website: "b.com", Username: "carol99", Password: "pass23"},
	})
	require.NoError(t, err)
	assert.Len(t, allGood.CreatedIDs, 2)
	assert.Empty(t, allGood.Failures)
	assert.Equal(t, BulkComplete, allGood.Status())
}

func TestCredentialService_BulkBackendFailureContinues(t *testing.T) {
	repo := newFakeCredentialRepo()
	svc := newCredentialService(t, repo)
	ctx := context.Background()

	repo.failCreate = true
	result, err := svc.CreateBulk(ctx, "user-a", []models.Credential{
		{Website: "a.com", Username: "bob123", Password: "pass12"},
	})
	require.NoError(t, err)
	assert.Equal(t, BulkFailed, result.Status())
	require.Len(t, result.Failures, 1)
	assert.Equal(t, 0, result.Failures[0].Index)
}
