package mailer

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type SendGridSender struct {
	client *sendgrid.Client
	from   string
}

func NewSendGridSender(key, from string) (*SendGridSender, error) {
	if key == "" || from == "" {
		return nil, fmt.Errorf("%w: sendgrid requires a key and a from address", ErrInvalidConfig)
	}
	return &SendGridSender{client: sendgrid.NewSendClient(key), from: from}, nil
}

func (s *SendGridSender) Send(ctx context.Context, msg Message) error {
	html := msg.HTML
	if html == "" {
		html = msg.Text
	}
	message := mail.NewSingleEmail(
		mail.NewEmail("Planner", s.from),
		msg.Subject,
		mail.NewEmail("", msg.To),
		msg.Text,
		html,
	)

	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid: %w", err)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("sendgrid: unexpected status %d", response.StatusCode)
	}
	return nil
}
