package core

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"keycrypt-backend/internal/models"
)

type failingAuditRepo struct {
	calls int
}

func (f *failingAuditRepo) Create(context.Context, string, models.AuditLog) error {
	f.calls++
	return fmt.Errorf("firestore unavailable")
}

func TestAuditRecordStampsTimestampAndIP(t *testing.T) {
	repo := &fakeAuditRepo{}
	svc := NewAuditService(repo, zap.NewNop())

	ctx := WithClientIP(context.Background(), "203.0.113.7")
	svc.Record(ctx, "user-a", models.AuditLog{Action: "CREDENTIAL_CREATE", TargetID: "doc-1"})

	require.Len(t, repo.entries, 1)
	entry := repo.entries[0]
	assert.Equal(t, "CREDENTIAL_CREATE", entry.Action)
	assert.Equal(t, "203.0.113.7", entry.IPAddress)
	assert.False(t, entry.Timestamp.IsZero())
	assert.WithinDuration(t, time.Now().UTC(), entry.Timestamp, time.Minute)
}

func TestAuditRecordKeepsExplicitFields(t *testing.T) {
	repo := &fakeAuditRepo{}
	svc := NewAuditService(repo, zap.NewNop())

	when := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	ctx := WithClientIP(context.Background(), "203.0.113.7")
	svc.Record(ctx, "user-a", models.AuditLog{Action: "X", Timestamp: when, IPAddress: "198.51.100.1"})

	require.Len(t, repo.entries, 1)
	assert.Equal(t, when, repo.entries[0].Timestamp)
	assert.Equal(t, "198.51.100.1", repo.entries[0].IPAddress)
}

func TestAuditRecordSwallowsRepositoryFailure(t *testing.T) {
	repo := &failingAuditRepo{}
	svc := NewAuditService(repo, zap.NewNop())

	// Must not panic or propagate anything.
	svc.Record(context.Background(), "user-a", models.AuditLog{Action: "CREDENTIAL_DELETE"})
	assert.Equal(t, 1, repo.calls)
}
