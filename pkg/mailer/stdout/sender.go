// Package stdout implements mailer.Sender for local development: messages
// are logged instead of delivered. It is the default provider when no API
// key is configured, so the relay can run end-to-end without credentials.
package stdout

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmitrymomot/mailrelay/pkg/mailer"
)

const providerName = "stdout"

// Sender implements mailer.Sender by logging messages.
type Sender struct {
	log *slog.Logger
}

// New creates a new stdout sender writing through the given logger.
func New(log *slog.Logger) *Sender {
	return &Sender{log: log}
}

// Name implements mailer.Sender.
func (s *Sender) Name() string { return providerName }

// Send implements mailer.Sender. It never fails.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) (*mailer.Result, error) {
	id := uuid.NewString()

	s.log.InfoContext(ctx, "email delivered to stdout",
		slog.String("message_id", id),
		slog.String("from", email.Sender.String()),
		slog.Int("to", len(email.To)),
		slog.Int("cc", len(email.CC)),
		slog.String("subject", email.Subject),
		slog.String("category", email.Category),
	)

	return &mailer.Result{
		MessageID: id,
		Raw:       map[string]any{"messageId": id, "provider": providerName},
	}, nil
}
