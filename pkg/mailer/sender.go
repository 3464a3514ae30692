package mailer

import "context"

// Sender is the minimal interface that delivery providers implement.
// It accepts a validated Email and performs exactly one delivery attempt;
// retry policy, if any, belongs to the caller.
type Sender interface {
	// Send delivers the message and returns the provider's response data.
	// A failed attempt returns a *ProviderError when the provider produced
	// a structured error body, or a plain error otherwise.
	Send(ctx context.Context, email *Email) (*Result, error)

	// Name returns the provider's short name, used in logs and error messages.
	Name() string
}
