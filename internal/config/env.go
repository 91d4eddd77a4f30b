package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	return Load(nil)
}

// parses configuration from the given variables, or from the process
// environment when environ is nil
func Load(environ map[string]string) (*Config, error) {
	cfg := &Config{}

	opts := env.Options{}
	if environ != nil {
		opts.Environment = environ
	}

	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	cfg.UpstreamAPIToken = strings.TrimSpace(cfg.UpstreamAPIToken)
	cfg.AdminSecret = strings.TrimSpace(cfg.AdminSecret)
	cfg.UpstreamBaseURL = strings.TrimRight(strings.TrimSpace(cfg.UpstreamBaseURL), "/")
	cfg.UsageCounter = strings.ToLower(strings.TrimSpace(cfg.UsageCounter))

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.UpstreamAPIToken == "" {
		return fmt.Errorf("UPSTREAM_API_TOKEN environment variable is required")
	}

	// an unset admin secret would leave the admin surface open
	if c.AdminSecret == "" {
		return fmt.Errorf("ADMIN_SECRET environment variable is required")
	}

	if c.UpstreamBaseURL == "" {
		return fmt.Errorf("UPSTREAM_BASE_URL must not be empty")
	}

	if c.DefaultModel == "" {
		return fmt.Errorf("DEFAULT_MODEL must not be empty")
	}

	if c.UpstreamTimeout <= 0 {
		return fmt.Errorf("UPSTREAM_TIMEOUT must be positive, got %s", c.UpstreamTimeout)
	}

	if c.UpstreamRPS <= 0 || c.UpstreamBurst <= 0 {
		return fmt.Errorf("UPSTREAM_RPS and UPSTREAM_BURST must be positive")
	}

	if c.UpstreamMaxImageBytes <= 0 {
		return fmt.Errorf("UPSTREAM_MAX_IMAGE_BYTES must be positive")
	}

	switch c.UsageCounter {
	case CounterMemory, CounterOff:
	case CounterRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required when USAGE_COUNTER=redis")
		}
	default:
		return fmt.Errorf("USAGE_COUNTER must be one of memory, redis, off; got %q", c.UsageCounter)
	}

	return nil
}
