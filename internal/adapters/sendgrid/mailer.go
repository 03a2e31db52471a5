package sendgrid

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Mailer implements ports.Mailer on top of the SendGrid v3 API.
type Mailer struct {
	client *sendgrid.Client
	from   string
}

// New creates a SendGrid mailer. With an empty API key the mailer runs in
// disabled mode: Send logs and returns nil without contacting SendGrid.
func New(apiKey, from string) *Mailer {
	m := &Mailer{from: from}
	if apiKey != "" {
		m.client = sendgrid.NewSendClient(apiKey)
	}
	return m
}

// Enabled reports whether a SendGrid API key is configured.
func (m *Mailer) Enabled() bool {
	return m.client != nil
}

// Send delivers a single email with both HTML and plain-text parts.
func (m *Mailer) Send(ctx context.Context, to, subject, htmlBody, textBody string) error {
	if m.client == nil {
		slog.Warn("mail disabled, skipping send", "to", to, "subject", subject)
		return nil
	}

	msg := mail.NewSingleEmail(
		mail.NewEmail("AeroWatch", m.from),
		subject,
		mail.NewEmail("", to),
		textBody,
		htmlBody,
	)

	resp, err := m.client.SendWithContext(ctx, msg)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send: status %d: %s", resp.StatusCode, resp.Body)
	}

	slog.Debug("mail sent", "to", to, "status", resp.StatusCode)
	return nil
}
