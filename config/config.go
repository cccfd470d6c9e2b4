// Package config loads server configuration from the environment.
// A .env file in the working directory is honored for local development.
package config

import (
	"fmt"

	env "github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Host    string `env:"HOST,default=localhost"`
	Port    int    `env:"PORT,default=8501" validate:"gt=0,lte=65535"`
	DevMode bool   `env:"DEV_MODE,default=false"`

	// AuthToken protects the HTTP and WebSocket surface.
	// Empty disables authentication (local single-user use).
	AuthToken string `env:"AUTH_TOKEN"`

	DataDir   string `env:"DATA_DIR,default=./data" validate:"required"`
	MarketDir string `env:"MARKET_DIR,default=./data/market" validate:"required"`

	// AnthropicAPIKey selects the chat backend: set it and the chat panel
	// talks to the hosted model, leave it empty and the panel echoes.
	AnthropicAPIKey string `env:"ANTHROPIC_API_KEY"`
	AnthropicModel  string `env:"ANTHROPIC_MODEL,default=claude-3-7-sonnet-latest"`

	LogLevel  string `env:"LOG_LEVEL,default=info" validate:"oneof=debug info warn error"`
	LogFile   string `env:"LOG_FILE"`
	LogFormat string `env:"LOG_FORMAT,default=text" validate:"oneof=text json"`

	// MaxMessageLen caps incoming chat message length in runes.
	MaxMessageLen int `env:"MAX_MESSAGE_LENGTH,default=4000" validate:"gt=0"`
}

// Load reads .env (if present), then the process environment, then validates.
func Load() (Config, error) {
	// Missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// LLMEnabled reports whether a hosted-model credential is configured.
func (c Config) LLMEnabled() bool {
	return c.AnthropicAPIKey != ""
}

// Addr returns the listen address.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
