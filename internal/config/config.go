// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"os"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// SurrealDB connection (the hosted document database)
	SurrealURL  string
	SurrealNS   string
	SurrealDB   string
	SurrealUser string
	SurrealPass string

	// Valkey (Redis-compatible cache + session store)
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string

	// Admin identity. AdminEmail is the single principal allowed to mutate
	// content; AdminPasswordHash is its bcrypt hash. AdminTOTPSecret is
	// optional — when set, sign-in requires a TOTP code as a second factor.
	AdminEmail        string
	AdminPasswordHash string
	AdminTOTPSecret   string

	// Email relay (EmailJS-compatible transactional send API)
	RelayServiceID  string
	RelayTemplateID string
	RelayPublicKey  string
	RelayPrivateKey string
	RelayBaseURL    string

	// Site identity used in notification emails and links.
	SiteBaseURL string
	FromName    string
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error if critical values
// are missing in production mode.
func Load() (*Config, error) {
	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		SurrealURL:  envOrDefault("SURREAL_URL", "ws://localhost:8000/rpc"),
		SurrealNS:   envOrDefault("SURREAL_NS", "inkpress"),
		SurrealDB:   envOrDefault("SURREAL_DB", "inkpress"),
		SurrealUser: envOrDefault("SURREAL_USER", "root"),
		SurrealPass: envOrDefault("SURREAL_PASS", "root"),

		ValkeyHost:     envOrDefault("VALKEY_HOST", "localhost"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		AdminEmail:        envOrDefault("ADMIN_EMAIL", "admin@localhost"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		AdminTOTPSecret:   os.Getenv("ADMIN_TOTP_SECRET"),

		RelayServiceID:  os.Getenv("RELAY_SERVICE_ID"),
		RelayTemplateID: os.Getenv("RELAY_TEMPLATE_ID"),
		RelayPublicKey:  os.Getenv("RELAY_PUBLIC_KEY"),
		RelayPrivateKey: os.Getenv("RELAY_PRIVATE_KEY"),
		RelayBaseURL:    os.Getenv("RELAY_BASE_URL"),

		SiteBaseURL: envOrDefault("SITE_BASE_URL", "http://localhost:8080"),
		FromName:    envOrDefault("SITE_FROM_NAME", "Inkpress"),
	}

	if cfg.Env == "production" {
		if cfg.AdminPasswordHash == "" {
			return nil, fmt.Errorf("ADMIN_PASSWORD_HASH must be set in production")
		}
		if cfg.SurrealPass == "root" {
			return nil, fmt.Errorf("SURREAL_PASS must be set in production")
		}
	}

	return cfg, nil
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// ValkeyAddr returns the Valkey address (host:port).
func (c *Config) ValkeyAddr() string {
	return fmt.Sprintf("%s:%s", c.ValkeyHost, c.ValkeyPort)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// RelayConfigured reports whether the email relay credentials are present.
// The blog works without them; fan-out sends are skipped with a warning.
func (c *Config) RelayConfigured() bool {
	return c.RelayServiceID != "" && c.RelayTemplateID != "" && c.RelayPublicKey != ""
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
