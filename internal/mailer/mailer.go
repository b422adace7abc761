// Package mailer sends suspicious-activity alert emails over SMTP.
package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"keycrypt-backend/internal/config"
)

// Mailer sends alert emails through a configured SMTP relay. It implements
// the alerting surface the activity service expects.
type Mailer struct {
	addr   string
	auth   smtp.Auth
	sender string
	send   func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewMailer creates a Mailer from the SMTP settings, or nil when they are
// absent so alerting stays disabled.
func NewMailer(cfg *config.Config) *Mailer {
	if cfg.SMTPHost == "" || cfg.SMTPPort == "" || cfg.AlertSender == "" {
		return nil
	}
	var auth smtp.Auth
	if cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPHost)
	}
	return &Mailer{
		addr:   cfg.SMTPHost + ":" + cfg.SMTPPort,
		auth:   auth,
		sender: cfg.AlertSender,
		send:   smtp.SendMail,
	}
}

// SuspiciousActivity emails the user a short summary of how many suspicious
// entries an import flagged for one of their credentials.
func (m *Mailer) SuspiciousActivity(recipient, credentialID string, count int) error {
	if recipient == "" {
		return fmt.Errorf("recipient email address cannot be empty")
	}

	noun := "events"
	if count == 1 {
		noun = "event"
	}
	subject := "Suspicious activity detected on one of your credentials"
	body := fmt.Sprintf(
		"An activity import flagged %d suspicious %s on credential %s.\r\n"+
			"Review the activity history and confirm whether it was you.\r\n",
		count, noun, credentialID,
	)

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", m.sender)
	fmt.Fprintf(&msg, "To: %s\r\n", recipient)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	if err := m.send(m.addr, m.auth, m.sender, []string{recipient}, []byte(msg.String())); err != nil {
		return fmt.Errorf("failed to send alert email: %w", err)
	}
	return nil
}
