package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const prodString = "prod"

// Config holds all application configuration loaded from environment.
type Config struct {
	AppEnv      string `envconfig:"APP_ENV" default:"dev"`
	HTTPAddr    string `envconfig:"HTTP_ADDR" default:":8080"`
	ProdOrigins string `envconfig:"PROD_ORIGINS" default:""`

	DB           DBConfig
	Auth         AuthConfig
	Stripe       StripeConfig
	Notification NotificationConfig
	Storage      StorageConfig
	Log          LogConfig
}

type DBConfig struct {
	DSN string `envconfig:"DB_DSN" required:"true"`
}

// AuthConfig covers the boundary with the external identity provider: the
// session tokens it signs and the webhook it syncs users over.
type AuthConfig struct {
	SessionSecret  string        `envconfig:"AUTH_SESSION_SECRET" required:"true"`
	SessionTTL     time.Duration `envconfig:"AUTH_SESSION_TTL" default:"15m"`
	WebhookSecret  string        `envconfig:"AUTH_WEBHOOK_SECRET" default:""`
	WebhookMaxSkew time.Duration `envconfig:"AUTH_WEBHOOK_MAX_SKEW" default:"5m"`
}

type StripeConfig struct {
	SecretKey     string `envconfig:"STRIPE_SECRET_KEY" default:""`
	WebhookSecret string `envconfig:"STRIPE_WEBHOOK_SECRET" default:""`
	Currency      string `envconfig:"STRIPE_CURRENCY" default:"usd"`
}

type NotificationConfig struct {
	AMQPURL string `envconfig:"AMQP_URL" default:""`
}

type StorageConfig struct {
	BasePath string `envconfig:"STORAGE_BASE_PATH" default:"./uploads"`
	BaseURL  string `envconfig:"STORAGE_BASE_URL" default:"/uploads"`
}

type LogConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
}

// IsProduction reports whether the app runs with production settings.
func (c *Config) IsProduction() bool {
	return c.AppEnv == prodString
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to process env config: %w", err)
	}

	return cfg, nil
}

// SlogLevel maps the configured level string onto a slog.Level.
func (c LogConfig) SlogLevel() slog.Level {
	switch c.Level {
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
