// Package mail sends transactional email through SendGrid.
package mail

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/trygghms/hms-api/internal/application/ports"
	"github.com/trygghms/hms-api/pkg/config"
)

var _ ports.Mailer = (*SendGridMailer)(nil)

// SendGridMailer implements the Mailer port with the SendGrid v3 API.
type SendGridMailer struct {
	client    *sendgrid.Client
	fromName  string
	fromEmail string
}

// NewSendGridMailer builds the mailer from configuration.
func NewSendGridMailer(cfg config.MailConfig) *SendGridMailer {
	return &SendGridMailer{
		client:    sendgrid.NewSendClient(cfg.SendGridKey),
		fromName:  cfg.FromName,
		fromEmail: cfg.FromEmail,
	}
}

// Send delivers one message. Anything but a 2xx from SendGrid is an error.
func (m *SendGridMailer) Send(ctx context.Context, msg ports.Message) error {
	from := sgmail.NewEmail(m.fromName, m.fromEmail)
	to := sgmail.NewEmail(msg.ToName, msg.ToEmail)
	email := sgmail.NewSingleEmail(from, msg.Subject, to, msg.Text, msg.HTML)

	resp, err := m.client.SendWithContext(ctx, email)
	if err != nil {
		return fmt.Errorf("sendgrid: send to %s: %w", msg.ToEmail, err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid: send to %s: HTTP %d: %s", msg.ToEmail, resp.StatusCode, resp.Body)
	}
	return nil
}
