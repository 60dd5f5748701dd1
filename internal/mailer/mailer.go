// Package mailer delivers operator notifications over SMTP. Delivery is
// best-effort by contract; callers absorb failures.
package mailer

import (
	"context"
	"fmt"

	"tripdesk/internal/config"
	"tripdesk/internal/models"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"
)

type Mailer struct {
	cfg    config.MailConfig
	appURL string
	send   func(*gomail.Message) error
	log    zerolog.Logger
}

func New(cfg config.MailConfig, appURL string, logger *zerolog.Logger) *Mailer {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)

	var log zerolog.Logger
	if logger != nil {
		log = logger.With().Str("component", "mailer").Logger()
	}

	return &Mailer{
		cfg:    cfg,
		appURL: appURL,
		send:   func(m *gomail.Message) error { return dialer.DialAndSend(m) },
		log:    log,
	}
}

func (m *Mailer) deliver(ctx context.Context, msg *gomail.Message) error {
	// gomail has no context support; run the dial in a goroutine so a stuck
	// SMTP conversation cannot outlive the caller's deadline.
	done := make(chan error, 1)
	go func() { done <- m.send(msg) }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SendBookingSummary mails a type-specific HTML summary to the operator, with
// the submitter's address as reply-to when present.
func (m *Mailer) SendBookingSummary(ctx context.Context, b *models.Booking) error {
	subject, body, err := renderBooking(b)
	if err != nil {
		return fmt.Errorf("render booking mail: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", m.cfg.OperatorAddr)
	msg.SetHeader("Subject", subject)
	if b.Email != "" {
		msg.SetHeader("Reply-To", b.Email)
	}
	msg.SetBody("text/html", body)

	return m.deliver(ctx, msg)
}

// SendContactMessage forwards a contact-form submission to the operator.
func (m *Mailer) SendContactMessage(ctx context.Context, cm *models.ContactMessage) error {
	body, err := renderContact(cm)
	if err != nil {
		return fmt.Errorf("render contact mail: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", m.cfg.OperatorAddr)
	msg.SetHeader("Subject", fmt.Sprintf("Contact form: %s", cm.Subject))
	if cm.Email != "" {
		msg.SetHeader("Reply-To", cm.Email)
	}
	msg.SetBody("text/html", body)

	return m.deliver(ctx, msg)
}

// SendResetLink mails a password-reset link embedding the reset credential.
func (m *Mailer) SendResetLink(ctx context.Context, to, token string) error {
	body, err := renderResetLink(m.appURL, token)
	if err != nil {
		return fmt.Errorf("render reset mail: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Password reset request")
	msg.SetBody("text/html", body)

	return m.deliver(ctx, msg)
}

// SendPasswordChanged notifies the admin address after a reset completes.
func (m *Mailer) SendPasswordChanged(ctx context.Context, to string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Password reset completed")
	msg.SetBody("text/html",
		"<p>A password reset was completed for the admin account. "+
			"The configured admin password must be updated in the deployment configuration for the change to take effect.</p>")

	return m.deliver(ctx, msg)
}
