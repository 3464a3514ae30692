// Package logger builds the service's slog logger: JSON to stdout, with
// optional Sentry forwarding and per-request context attributes.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config holds logging configuration.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	Level string `env:"LOG_LEVEL" envDefault:"info" yaml:"level"`

	// SentryDSN enables forwarding warnings and errors to Sentry when set.
	SentryDSN string `env:"SENTRY_DSN" yaml:"sentry_dsn"`
	// SentryEnvironment tags Sentry events, defaults to the app environment.
	SentryEnvironment string `env:"SENTRY_ENVIRONMENT" yaml:"sentry_environment"`
}

// ContextExtractor extracts a slog attribute from a request context.
// Used to stamp request-scoped values (e.g. request IDs) onto every log line.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

// New creates the service logger. Output is JSON on stdout; when a Sentry
// DSN is configured, warnings and errors are forwarded there as well.
// Extractors run per log call so request-scoped attributes stay fresh.
func New(cfg Config, extractors ...ContextExtractor) *slog.Logger {
	stdout := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(cfg.Level),
	})

	handler := withSentry(cfg, stdout)

	return slog.New(newContextHandler(handler, extractors))
}

// NewNope creates a no-op logger that discards all output.
// Use this as a default when logging is not configured.
func NewNope() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// contextHandler injects context-extracted attributes into every record
// before delegating to the wrapped handler.
type contextHandler struct {
	next       slog.Handler
	extractors []ContextExtractor
}

func newContextHandler(next slog.Handler, extractors []ContextExtractor) slog.Handler {
	clean := make([]ContextExtractor, 0, len(extractors))
	for _, ex := range extractors {
		if ex != nil {
			clean = append(clean, ex)
		}
	}
	if len(clean) == 0 {
		return next
	}
	return &contextHandler{next: next, extractors: clean}
}

func (h *contextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *contextHandler) Handle(ctx context.Context, rec slog.Record) error {
	for _, ex := range h.extractors {
		if attr, ok := ex(ctx); ok {
			rec.AddAttrs(attr)
		}
	}
	return h.next.Handle(ctx, rec)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{next: h.next.WithAttrs(attrs), extractors: h.extractors}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{next: h.next.WithGroup(name), extractors: h.extractors}
}
