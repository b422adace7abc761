package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialValidation(t *testing.T) {
	v := NewValidator()

	valid := Credential{Website: "a.com", Username: "bob123", Password: "pass123"}

	tests := []struct {
		name    string
		mutate  func(c *Credential)
		wantErr bool
	}{
		{"valid", func(c *Credential) {}, false},
		{"website url", func(c *Credential) { c.Website = "https://mail.google.com/inbox" }, false},
		{"website bare label", func(c *Credential) { c.Website = "Gmail" }, false},
		{"website empty", func(c *Credential) { c.Website = "" }, true},
		{"username length 2 rejected", func(c *Credential) { c.Username = "ab" }, true},
		{"username length 3 accepted", func(c *Credential) { c.Username = "abc" }, false},
		{"username email shape ok", func(c *Credential) { c.Username = "bob@example.com" }, false},
		{"username bare @ rejected", func(c *Credential) { c.Username = "bob@" }, true},
		{"username @ without domain dot rejected", func(c *Credential) { c.Username = "bob@host" }, true},
		{"password length 5 rejected", func(c *Credential) { c.Password = "12345" }, true},
		{"password length 6 accepted", func(c *Credential) { c.Password = "123456" }, false},
		{"password empty rejected", func(c *Credential) { c.Password = "" }, true},
		{"keywords optional", func(c *Credential) { c.Keywords = nil }, false},
		{"keywords present", func(c *Credential) { c.Keywords = []string{"work", "mail"} }, false},
		{"empty keyword element rejected", func(c *Credential) { c.Keywords = []string{"ok", ""} }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			err := v.Struct(&c)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCredentialRecordRoundTrip(t *testing.T) {
	c := &Credential{
		ID:       "doc-1",
		Website:  "a.com",
		Username: "bob123",
		Password: "pass123",
		Keywords: []string{"work"},
	}
	rec := c.Record()
	got, err := CredentialFromRecord("doc-1", rec)
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestCredentialRecordOmitsNilKeywords(t *testing.T) {
	c := &Credential{Website: "a.com", Username: "bob123", Password: "pass123"}
	rec := c.Record()
	_, present := rec["keywords"]
	assert.False(t, present)

	got, err := CredentialFromRecord("id", rec)
	require.NoError(t, err)
	assert.Nil(t, got.Keywords)
}

func TestCredentialFromRecord_MissingField(t *testing.T) {
	_, err := CredentialFromRecord("id", map[string]interface{}{"website": "a.com"})
	assert.Error(t, err)
}

func TestActivityPatchContainsOnlySetFields(t *testing.T) {
	yes := true
	dev := "Chrome on Windows"
	req := UpdateActivityRequest{Confirmed: &yes, Device: &dev}

	patch := req.Patch()
	assert.Equal(t, map[string]interface{}{"confirmed": true, "device": "Chrome on Windows"}, patch)
}
