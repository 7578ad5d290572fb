package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"

	"github.com/jordan-wright/email"

	"github.com/SAHICA-Code/NovaBank/internal/infrastructure/config"
)

// SMTPMailer sends transactional mail through an SMTP relay. It implements
// port.Mailer. When no SMTP host is configured it degrades to logging the
// reset link, which keeps local development working without a relay.
type SMTPMailer struct {
	cfg    config.SMTPConfig
	logger *slog.Logger
}

// NewSMTPMailer creates a mailer from SMTP settings.
func NewSMTPMailer(cfg config.SMTPConfig, logger *slog.Logger) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, logger: logger}
}

// SendPasswordReset mails a password reset link to the given address.
func (m *SMTPMailer) SendPasswordReset(ctx context.Context, to, resetURL string) error {
	if m.cfg.Host == "" {
		m.logger.Info("smtp not configured, reset link not mailed",
			"to", to,
			"reset_url", resetURL,
		)
		return nil
	}

	msg := email.NewEmail()
	msg.From = m.cfg.From
	msg.To = []string{to}
	msg.Subject = "Reset your password"
	msg.Text = []byte(fmt.Sprintf(
		"A password reset was requested for your account.\n\n"+
			"Open the link below to choose a new password. The link expires in one hour.\n\n%s\n\n"+
			"If you did not request this, you can ignore this message.\n",
		resetURL,
	))

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	var auth smtp.Auth
	if m.cfg.User != "" {
		auth = smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	}

	if err := msg.Send(addr, auth); err != nil {
		return fmt.Errorf("send reset mail to %s: %w", to, err)
	}

	m.logger.Info("password reset mail sent", "to", to)
	return nil
}
