package mailer

import (
	"context"
	"fmt"

	"github.com/mailgun/mailgun-go/v4"
)

type MailgunSender struct {
	mg   *mailgun.MailgunImpl
	from string
}

func NewMailgunSender(domain, key, from string) (*MailgunSender, error) {
	if domain == "" || key == "" || from == "" {
		return nil, fmt.Errorf("%w: mailgun requires a domain, a key and a from address", ErrInvalidConfig)
	}
	return &MailgunSender{mg: mailgun.NewMailgun(domain, key), from: from}, nil
}

func (s *MailgunSender) Send(ctx context.Context, msg Message) error {
	message := s.mg.NewMessage(s.from, msg.Subject, msg.Text, msg.To)
	if msg.HTML != "" {
		message.SetHtml(msg.HTML)
	}

	if _, _, err := s.mg.Send(ctx, message); err != nil {
		return fmt.Errorf("mailgun: %w", err)
	}
	return nil
}
