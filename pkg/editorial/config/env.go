package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// EnvConfig maps environment variables onto server configuration.
type EnvConfig struct {
	Port        string `env:"PORT" env-default:"8080"`
	Environment string `env:"ENVIRONMENT" env-default:"development"`

	DatabaseURL string `env:"DATABASE_URL" env-default:""`

	Notifier      string `env:"REVALIDATE_NOTIFIER" env-default:"log"`
	WebhookURL    string `env:"REVALIDATE_WEBHOOK_URL" env-default:""`
	WebhookSecret string `env:"REVALIDATE_WEBHOOK_SECRET" env-default:""`
	RedisAddr     string `env:"REDIS_ADDR" env-default:""`
	RedisPassword string `env:"REDIS_PASSWORD" env-default:""`

	EnableHookLogging bool          `env:"ENABLE_HOOK_LOGGING" env-default:"true"`
	NotifyTimeout     time.Duration `env:"NOTIFY_TIMEOUT" env-default:"10s"`
}

// LoadFromEnv builds a ServerConfig from environment variables. An empty
// DATABASE_URL selects the in-memory repository; a postgres URL selects
// the Postgres one.
func LoadFromEnv() (*ServerConfig, error) {
	var env EnvConfig
	if err := cleanenv.ReadEnv(&env); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}

	cfg := defaults()
	cfg.Port = env.Port
	cfg.Environment = env.Environment
	cfg.Notifier = env.Notifier
	cfg.WebhookURL = env.WebhookURL
	cfg.WebhookSecret = env.WebhookSecret
	cfg.RedisAddr = env.RedisAddr
	cfg.RedisPassword = env.RedisPassword
	cfg.EnableHookLogging = env.EnableHookLogging
	cfg.NotifyTimeout = env.NotifyTimeout

	if env.DatabaseURL != "" && env.DatabaseURL != "memory" {
		cfg.DatabaseType = "postgres"
		cfg.DatabaseURL = env.DatabaseURL
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
