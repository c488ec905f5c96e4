// Package config assembles an editorial.Service from declarative
// configuration, resolving the repository and notifier backends.
package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/draftpress/editorial/pkg/editorial"
	"github.com/draftpress/editorial/pkg/editorial/notify"
	"github.com/draftpress/editorial/pkg/editorial/repo/memory"
	repopg "github.com/draftpress/editorial/pkg/editorial/repo/postgres"
)

// Option applies configuration to a ServerConfig instance.
type Option func(*ServerConfig) error

// Load constructs a ServerConfig by applying the supplied options on top
// of library defaults.
func Load(opts ...Option) (*ServerConfig, error) {
	cfg := defaults()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaults() ServerConfig {
	return ServerConfig{
		Port:              "8080",
		Environment:       "development",
		DatabaseType:      "memory",
		Notifier:          "log",
		EnableHookLogging: true,
	}
}

// ServerConfig represents server configuration for the editorial service
type ServerConfig struct {
	Port        string
	Environment string // development, production, testing

	// Database configuration
	DatabaseURL  string
	DatabaseType string // "memory", "postgres"

	// Revalidation configuration
	Notifier      string // "none", "log", "webhook", "redis"
	WebhookURL    string
	WebhookSecret string
	RedisAddr     string
	RedisPassword string

	// Server options
	EnableHookLogging bool
	NotifyTimeout     time.Duration
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}

	if c.DatabaseType != "memory" && c.DatabaseType != "postgres" {
		return errors.New("database_type must be 'memory' or 'postgres'")
	}
	if c.DatabaseType == "postgres" && c.DatabaseURL == "" {
		return errors.New("database_url is required when using postgres")
	}

	switch c.Notifier {
	case "none", "log":
	case "webhook":
		if c.WebhookURL == "" {
			return errors.New("webhook_url is required when using the webhook notifier")
		}
	case "redis":
		if c.RedisAddr == "" {
			return errors.New("redis_addr is required when using the redis notifier")
		}
	default:
		return fmt.Errorf("unsupported notifier '%s' (use none, log, webhook or redis)", c.Notifier)
	}

	return nil
}

// BuildService creates a Service instance from the server configuration
func (c *ServerConfig) BuildService() (editorial.Service, error) {
	var options []editorial.Option

	repo, err := c.buildRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to build repository: %w", err)
	}
	options = append(options, editorial.WithRepository(repo))

	notifier, err := c.buildNotifier()
	if err != nil {
		return nil, fmt.Errorf("failed to build notifier: %w", err)
	}
	options = append(options, editorial.WithNotifier(notifier))

	if c.EnableHookLogging {
		options = append(options, editorial.WithHooks(editorial.LoggingHooks(slog.Default())))
	}
	if c.NotifyTimeout > 0 {
		options = append(options, editorial.WithNotifyTimeout(c.NotifyTimeout))
	}

	return editorial.New(options...)
}

// buildRepository creates a Repository based on the configuration
func (c *ServerConfig) buildRepository() (editorial.Repository, error) {
	switch c.DatabaseType {
	case "memory":
		return memory.New(), nil
	case "postgres":
		pool, err := pgxpool.New(context.Background(), c.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to create pgx pool: %w", err)
		}
		return repopg.NewWithPool(pool), nil
	default:
		return nil, fmt.Errorf("unsupported database type: %s", c.DatabaseType)
	}
}

// buildNotifier creates a RevalidationNotifier based on the configuration
func (c *ServerConfig) buildNotifier() (editorial.RevalidationNotifier, error) {
	switch c.Notifier {
	case "none":
		return editorial.NewNoopNotifier(), nil
	case "log":
		return editorial.NewLoggingNotifier(slog.Default()), nil
	case "webhook":
		return notify.NewWebhookNotifier(c.WebhookURL, c.WebhookSecret), nil
	case "redis":
		client, err := notify.Connect(c.RedisAddr, c.RedisPassword)
		if err != nil {
			return nil, err
		}
		return notify.NewCacheNotifier(client), nil
	default:
		return nil, fmt.Errorf("unsupported notifier: %s", c.Notifier)
	}
}

// PingPostgres verifies connectivity to Postgres.
func PingPostgres(databaseURL string) error {
	if databaseURL == "" {
		return errors.New("database_url is required")
	}
	pool, err := pgxpool.New(context.Background(), databaseURL)
	if err != nil {
		return fmt.Errorf("failed to create pgx pool: %w", err)
	}
	defer pool.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}
