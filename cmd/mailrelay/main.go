// Package main is the entry point for the mail relay server.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/dmitrymomot/mailrelay"
	"github.com/dmitrymomot/mailrelay/middlewares"
	"github.com/dmitrymomot/mailrelay/pkg/logger"
	"github.com/dmitrymomot/mailrelay/pkg/mailer"
	"github.com/dmitrymomot/mailrelay/pkg/mailer/brevo"
	"github.com/dmitrymomot/mailrelay/pkg/mailer/resend"
	"github.com/dmitrymomot/mailrelay/pkg/mailer/stdout"
)

func main() {
	configPath := flag.String("config", "", "path to YAML configuration file (optional)")
	flag.Parse()

	// Missing .env is fine; the environment may be set by the runtime.
	_ = godotenv.Load()

	cfg, err := mailrelay.LoadConfig(*configPath)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	if cfg.Logger.SentryEnvironment == "" {
		cfg.Logger.SentryEnvironment = cfg.Environment
	}
	log := logger.New(cfg.Logger, middlewares.RequestIDExtractor()).With("app", "mailrelay")

	sender, err := selectSender(cfg, log)
	if err != nil {
		log.Error("failed to select email provider", "error", err)
		os.Exit(1)
	}

	app := mailrelay.New(cfg,
		mailrelay.WithLogger(log),
		mailrelay.WithSender(sender),
	)

	if err := app.Run(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}

// selectSender builds the delivery provider from configuration. In
// development a missing provider API key degrades to the stdout provider
// so the relay stays runnable without credentials; production fails fast.
func selectSender(cfg mailrelay.Config, log *slog.Logger) (mailer.Sender, error) {
	switch cfg.Provider {
	case "brevo":
		if cfg.Brevo.APIKey == "" {
			return fallbackSender(cfg, log, "BREVO_API_KEY")
		}
		return brevo.New(cfg.Brevo), nil
	case "resend":
		if cfg.Resend.APIKey == "" {
			return fallbackSender(cfg, log, "RESEND_API_KEY")
		}
		return resend.New(cfg.Resend), nil
	case "stdout":
		if !cfg.IsDevelopment() {
			return nil, fmt.Errorf("stdout provider is not allowed in production")
		}
		return stdout.New(log), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.Provider)
	}
}

func fallbackSender(cfg mailrelay.Config, log *slog.Logger, missing string) (mailer.Sender, error) {
	if !cfg.IsDevelopment() {
		return nil, fmt.Errorf("%s is required in production", missing)
	}
	log.Warn("provider API key not set, falling back to stdout provider",
		"provider", cfg.Provider,
		"missing", missing,
	)
	return stdout.New(log), nil
}
