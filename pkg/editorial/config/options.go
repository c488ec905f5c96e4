package config

import (
	"fmt"
	"time"
)

// WithPort sets the server port
func WithPort(port string) Option {
	return func(c *ServerConfig) error {
		if port == "" {
			return fmt.Errorf("port cannot be empty")
		}
		c.Port = port
		return nil
	}
}

// WithEnvironment sets the environment (development, production, testing)
func WithEnvironment(env string) Option {
	return func(c *ServerConfig) error {
		if env == "" {
			return fmt.Errorf("environment cannot be empty")
		}
		c.Environment = env
		return nil
	}
}

// WithDatabase configures the database backend
func WithDatabase(dbType, url string) Option {
	return func(c *ServerConfig) error {
		if dbType != "memory" && dbType != "postgres" {
			return fmt.Errorf("database type must be 'memory' or 'postgres', got: %s", dbType)
		}
		if dbType == "postgres" && url == "" {
			return fmt.Errorf("database URL is required for postgres")
		}
		c.DatabaseType = dbType
		c.DatabaseURL = url
		return nil
	}
}

// WithWebhookNotifier configures the webhook revalidation notifier
func WithWebhookNotifier(url, secret string) Option {
	return func(c *ServerConfig) error {
		if url == "" {
			return fmt.Errorf("webhook URL cannot be empty")
		}
		c.Notifier = "webhook"
		c.WebhookURL = url
		c.WebhookSecret = secret
		return nil
	}
}

// WithRedisNotifier configures the Redis cache-invalidation notifier
func WithRedisNotifier(addr, password string) Option {
	return func(c *ServerConfig) error {
		if addr == "" {
			return fmt.Errorf("redis address cannot be empty")
		}
		c.Notifier = "redis"
		c.RedisAddr = addr
		c.RedisPassword = password
		return nil
	}
}

// WithoutNotifier disables revalidation dispatch entirely
func WithoutNotifier() Option {
	return func(c *ServerConfig) error {
		c.Notifier = "none"
		return nil
	}
}

// WithHookLogging toggles lifecycle hook logging
func WithHookLogging(enabled bool) Option {
	return func(c *ServerConfig) error {
		c.EnableHookLogging = enabled
		return nil
	}
}

// WithNotifyTimeout bounds each revalidation dispatch
func WithNotifyTimeout(d time.Duration) Option {
	return func(c *ServerConfig) error {
		if d <= 0 {
			return fmt.Errorf("notify timeout must be positive")
		}
		c.NotifyTimeout = d
		return nil
	}
}
