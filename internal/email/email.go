package email

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

type Sender interface {
	Send(ctx context.Context, to, subject, html string) error
}

// LogSender logs emails instead of sending them — used in ENV=local so the
// verification codes show up in the server log.
type LogSender struct {
	logger *slog.Logger
}

func (s *LogSender) Send(_ context.Context, to, subject, html string) error {
	s.logger.Info("email (local dev)", "to", to, "subject", subject, "body", html)
	return nil
}

// ResendSender sends emails via the Resend API — used in staging/production.
type ResendSender struct {
	client *resend.Client
	from   string
}

func (s *ResendSender) Send(ctx context.Context, to, subject, html string) error {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}
	_, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

// NewSender returns a LogSender for ENV=local and a ResendSender otherwise.
// Returns nil when no API key is configured outside local; callers treat a
// nil Sender as "mail service unavailable".
func NewSender(env, apiKey, from string, logger *slog.Logger) Sender {
	if env == "local" {
		return &LogSender{logger: logger}
	}
	if apiKey == "" {
		return nil
	}
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}
