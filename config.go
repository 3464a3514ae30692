package mailrelay

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/mailrelay/pkg/logger"
	"github.com/dmitrymomot/mailrelay/pkg/mailer"
	"github.com/dmitrymomot/mailrelay/pkg/mailer/brevo"
	"github.com/dmitrymomot/mailrelay/pkg/mailer/resend"
	"github.com/dmitrymomot/mailrelay/pkg/origin"
)

// EnvDevelopment and EnvProduction are the recognized runtime modes.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// DefaultAPIKey is the development fallback shared secret.
// It must be overridden in production; Validate enforces this.
const DefaultAPIKey = "dev-relay-key"

// BaseAllowedOrigins is the built-in origin allow-list, merged with any
// configured extras at startup.
var BaseAllowedOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
	"http://127.0.0.1:3000",
	"http://127.0.0.1:5173",
}

// Config holds the relay configuration, populated from the environment
// with an optional YAML overlay file.
type Config struct {
	Port        int    `env:"PORT" envDefault:"3000" yaml:"port"`
	Environment string `env:"APP_ENV" envDefault:"development" yaml:"environment"`

	// APIKey is the shared secret callers present in X-API-Key.
	APIKey string `env:"RELAY_API_KEY" yaml:"api_key"`

	// AllowedOrigins are extra origins merged with BaseAllowedOrigins.
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," yaml:"allowed_origins"`

	// Provider selects the delivery backend: brevo, resend, or stdout.
	Provider string `env:"EMAIL_PROVIDER" envDefault:"brevo" yaml:"provider"`

	// SenderEmail/SenderName form the default sender identity applied when
	// the payload carries no override.
	SenderEmail string `env:"DEFAULT_FROM_EMAIL" envDefault:"noreply@example.com" yaml:"sender_email"`
	SenderName  string `env:"DEFAULT_FROM_NAME" envDefault:"Mail Relay" yaml:"sender_name"`

	Logger logger.Config `yaml:"logging"`
	Brevo  brevo.Config  `yaml:"brevo"`
	Resend resend.Config `yaml:"resend"`
}

// LoadConfig reads configuration from the environment, then overlays the
// YAML file at path when one is given.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	if cfg.APIKey == "" {
		cfg.APIKey = DefaultAPIKey
	}

	return cfg, cfg.Validate()
}

// Validate rejects configurations that must not reach production.
func (c Config) Validate() error {
	if c.Environment != EnvDevelopment && c.Environment != EnvProduction {
		return fmt.Errorf("unknown environment %q", c.Environment)
	}
	if c.Environment == EnvProduction && c.APIKey == DefaultAPIKey {
		return fmt.Errorf("RELAY_API_KEY must be set in production")
	}
	return nil
}

// IsDevelopment reports whether the relay runs in development mode
// (verbose errors, stack traces in responses).
func (c Config) IsDevelopment() bool {
	return c.Environment == EnvDevelopment
}

// Origins builds the immutable allow-list: base list plus configured
// extras, normalized and deduplicated.
func (c Config) Origins() *origin.Set {
	return origin.NewSet(BaseAllowedOrigins, c.AllowedOrigins)
}

// DefaultSender returns the fallback sender identity.
func (c Config) DefaultSender() mailer.Address {
	return mailer.Address{Email: c.SenderEmail, Name: c.SenderName}
}
