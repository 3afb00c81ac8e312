package notifications

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"

	"github.com/demandlens/backend/internal/domain/providers"
	"github.com/demandlens/backend/pkg/config"
)

// SMTPSender sends email through a configured SMTP relay
type SMTPSender struct {
	cfg *config.SMTPConfig
}

// Ensure SMTPSender implements EmailSender
var _ providers.EmailSender = (*SMTPSender)(nil)

// NewSMTPSender creates a new SMTP email sender
func NewSMTPSender(cfg *config.SMTPConfig) (*SMTPSender, error) {
	if cfg == nil || cfg.Host == "" {
		return nil, errors.New("smtp host is required")
	}
	return &SMTPSender{cfg: cfg}, nil
}

// Send delivers one email. The returned id is generated locally since SMTP
// relays do not hand back a message id.
func (s *SMTPSender) Send(ctx context.Context, msg *providers.EmailMessage) (string, error) {
	if msg == nil || msg.To == "" {
		return "", errors.New("email recipient is required")
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	if msg.TextBody != "" {
		m.SetBody("text/plain", msg.TextBody)
		if msg.HTMLBody != "" {
			m.AddAlternative("text/html", msg.HTMLBody)
		}
	} else {
		m.SetBody("text/html", msg.HTMLBody)
	}

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		return "", fmt.Errorf("failed to send email: %w", err)
	}

	return uuid.New().String(), nil
}
