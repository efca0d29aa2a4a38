package notify

import (
	"context"
	"errors"

	"github.com/wneessen/go-mail"

	"github.com/complainthub/complaint-service/internal/config"
)

// Mailer delivers a formatted notification to a single recipient.
// Callers treat delivery as best-effort.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// SMTPMailer sends email through an authenticated SMTP relay.
type SMTPMailer struct {
	client *mail.Client
	from   string
}

// NewSMTPMailer builds the mail client. Missing credentials are a hard
// startup failure.
func NewSMTPMailer(cfg config.MailConfig) (*SMTPMailer, error) {
	if cfg.User == "" || cfg.Pass == "" {
		return nil, errors.New("smtp credentials required")
	}

	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.User),
		mail.WithPassword(cfg.Pass),
		mail.WithTimeout(cfg.SendTimeout()),
	)
	if err != nil {
		return nil, err
	}

	return &SMTPMailer{client: client, from: cfg.From}, nil
}

// Send composes and delivers a single HTML message.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	return m.client.DialAndSendWithContext(ctx, msg)
}
