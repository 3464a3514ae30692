package mailrelay

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/mailrelay/pkg/mailer"
)

// Option configures the App.
type Option func(*App)

// WithLogger sets the application logger.
func WithLogger(log *slog.Logger) Option {
	return func(a *App) {
		if log != nil {
			a.log = log
		}
	}
}

// WithSender sets the delivery provider.
func WithSender(sender mailer.Sender) Option {
	return func(a *App) {
		a.sender = sender
	}
}

// WithShutdownTimeout overrides the graceful shutdown timeout.
func WithShutdownTimeout(d time.Duration) Option {
	return func(a *App) {
		if d > 0 {
			a.shutdownTimeout = d
		}
	}
}
