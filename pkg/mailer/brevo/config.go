package brevo

// Config holds Brevo email provider configuration.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	APIKey  string `env:"BREVO_API_KEY" yaml:"api_key"`
	BaseURL string `env:"BREVO_BASE_URL" envDefault:"https://api.brevo.com/v3" yaml:"base_url"`
}
