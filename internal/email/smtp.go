package email

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"

	"github.com/camille-osteopathe/booking-api/internal/config"
)

type smtpSender struct {
	dialer *gomail.Dialer
}

// NewSMTPSender returns a Sender that delivers through a plain SMTP relay.
// Used by self-hosted deployments that do not want a provider account.
func NewSMTPSender(cfg config.SMTPConfig) Sender {
	return &smtpSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
	}
}

func (s *smtpSender) Send(ctx context.Context, msg Message) (string, error) {
	m := gomail.NewMessage()
	m.SetHeader("From", msg.From)
	m.SetHeader("To", msg.To)
	if msg.ReplyTo != "" {
		m.SetHeader("Reply-To", msg.ReplyTo)
	}
	m.SetHeader("Subject", msg.Subject)

	if msg.Text != "" {
		m.SetBody("text/plain", msg.Text)
		m.AddAlternative("text/html", msg.HTML)
	} else {
		m.SetBody("text/html", msg.HTML)
	}

	for _, a := range msg.Attachments {
		content := a.Content
		m.Attach(a.Filename, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(content)
			return err
		}))
	}

	// gomail has no context support; honor cancellation before dialing.
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		return "", fmt.Errorf("failed to send email via smtp: %w", err)
	}

	// SMTP assigns no message id we can observe; synthesize one so callers
	// always get a reference to log.
	return uuid.New().String(), nil
}
