// Package resend implements mailer.Sender using the Resend API SDK.
package resend

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v3"

	"github.com/dmitrymomot/mailrelay/pkg/mailer"
)

const providerName = "resend"

// Sender implements mailer.Sender using the Resend API.
type Sender struct {
	client *resend.Client
}

// New creates a new Resend sender.
func New(cfg Config) *Sender {
	return &Sender{client: resend.NewClient(cfg.APIKey)}
}

// Name implements mailer.Sender.
func (s *Sender) Name() string { return providerName }

// Send implements mailer.Sender.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) (*mailer.Result, error) {
	req := buildRequest(email)

	sent, err := s.client.Emails.SendWithContext(ctx, req)
	if err != nil {
		// The SDK surfaces API failures as plain errors without a parseable
		// body, so there is no structured ProviderError to build here.
		return nil, fmt.Errorf("resend: failed to send email: %w", err)
	}

	return &mailer.Result{
		MessageID: sent.Id,
		Raw:       map[string]any{"id": sent.Id},
	}, nil
}

// buildRequest maps the relay's message model onto Resend's wire shape,
// which takes RFC 5322 address strings rather than address objects.
func buildRequest(email *mailer.Email) *resend.SendEmailRequest {
	req := &resend.SendEmailRequest{
		From:    email.Sender.String(),
		To:      addressStrings(email.To),
		Subject: email.Subject,
		Html:    email.HTML,
	}
	if len(email.CC) > 0 {
		req.Cc = addressStrings(email.CC)
	}
	if email.Category != "" {
		req.Tags = []resend.Tag{{Name: "category", Value: email.Category}}
	}
	return req
}

func addressStrings(addrs []mailer.Address) []string {
	out := make([]string, len(addrs))
	for i, a := range addrs {
		out[i] = a.String()
	}
	return out
}
