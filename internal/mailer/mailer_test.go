package mailer

import (
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keycrypt-backend/internal/config"
)

func TestNewMailerDisabledWithoutSettings(t *testing.T) {
	assert.Nil(t, NewMailer(&config.Config{}))
	assert.Nil(t, NewMailer(&config.Config{SMTPHost: "smtp.example.com"}))
}

func TestSuspiciousActivityMessage(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte

	m := &Mailer{
		addr:   "smtp.example.com:2525",
		sender: "alerts@keycrypt.example",
		send: func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
			gotAddr = addr
			gotFrom = from
			gotTo = to
			gotMsg = msg
			return nil
		},
	}

	require.NoError(t, m.SuspiciousActivity("bob@example.com", "cred-1", 3))
	assert.Equal(t, "smtp.example.com:2525", gotAddr)
	assert.Equal(t, "alerts@keycrypt.example", gotFrom)
	assert.Equal(t, []string{"bob@example.com"}, gotTo)
	assert.Contains(t, string(gotMsg), "Subject: Suspicious activity detected")
	assert.Contains(t, string(gotMsg), "3 suspicious events on credential cred-1")
}

func TestSuspiciousActivitySingular(t *testing.T) {
	var gotMsg []byte
	m := &Mailer{
		addr:   "smtp.example.com:2525",
		sender: "alerts@keycrypt.example",
		send: func(_ string, _ smtp.Auth, _ string, _ []string, msg []byte) error {
			gotMsg = msg
			return nil
		},
	}
	require.NoError(t, m.SuspiciousActivity("bob@example.com", "cred-1", 1))
	assert.Contains(t, string(gotMsg), "1 suspicious event on credential cred-1")
}

func TestSuspiciousActivityEmptyRecipient(t *testing.T) {
	m := &Mailer{addr: "smtp.example.com:2525", sender: "alerts@keycrypt.example"}
	require.Error(t, m.SuspiciousActivity("", "cred-1", 1))
}
