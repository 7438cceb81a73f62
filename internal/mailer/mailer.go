// Package mailer sends transactional e-mail through the configured provider.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yukikurage/planner-api/internal/config"
)

type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Sender delivers one message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

var ErrInvalidConfig = errors.New("invalid email configuration")

// New builds the sender for cfg.Provider. Remote providers are wrapped in a
// circuit breaker so a failing provider is skipped for cfg.BreakerTimeout.
func New(cfg config.EmailConfig, log logrus.FieldLogger) (Sender, error) {
	var (
		sender Sender
		err    error
	)

	switch cfg.Provider {
	case "", "log":
		return NewLogSender(log), nil
	case "sendgrid":
		sender, err = NewSendGridSender(cfg.SendGridKey, cfg.From)
	case "mailgun":
		sender, err = NewMailgunSender(cfg.MailgunDomain, cfg.MailgunKey, cfg.From)
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", ErrInvalidConfig, cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	timeout := cfg.BreakerTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return NewBreakerSender(cfg.Provider, sender, timeout, log), nil
}

// LogSender writes messages to the log instead of sending them.
type LogSender struct {
	log logrus.FieldLogger
}

func NewLogSender(log logrus.FieldLogger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(_ context.Context, msg Message) error {
	s.log.WithFields(logrus.Fields{
		"to":      msg.To,
		"subject": msg.Subject,
	}).Info(msg.Text)
	return nil
}
