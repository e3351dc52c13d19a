// Package config loads server configuration from an optional YAML file and
// the environment. Environment variables always win over file values; a
// .env.local file is loaded first for local development.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL    string        `env:"DATABASE_URL" yaml:"database_url"`
	Port           string        `env:"PORT" yaml:"port"`
	SessionSecret  string        `env:"SESSION_SECRET" yaml:"session_secret"`
	SessionTTL     time.Duration `env:"SESSION_TTL" yaml:"session_ttl"`
	AllowedOrigins []string      `env:"ALLOWED_ORIGINS" yaml:"allowed_origins" envSeparator:","`
	CookieSecure   bool          `env:"COOKIE_SECURE" yaml:"cookie_secure"`
}

// Load builds the configuration. Order: .env.local (if present), then the
// YAML file named by CONFIG_FILE (if set), then environment variables on top.
func Load() (*Config, error) {
	_ = godotenv.Load(".env.local")

	cfg := &Config{}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	// env.Parse only touches fields whose variable is actually set, so file
	// values survive unless overridden.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	if cfg.Port == "" {
		cfg.Port = "5050"
	}
	if cfg.SessionTTL == 0 {
		cfg.SessionTTL = 24 * time.Hour
	}

	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET is required")
	}
	return nil
}
