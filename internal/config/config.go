// Package config provides server configuration loaded from environment variables.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds mcpd runtime configuration.
type Config struct {
	// ListenAddress is the HTTP bind address.
	ListenAddress string `envconfig:"MCPD_LISTEN_ADDRESS" default:":4000"`

	// Manifest is the path to the model manifest.
	Manifest string `envconfig:"MCPD_MANIFEST" default:"manifest.toml"`

	// TLS is enabled when both files exist.
	TLSCertFile string `envconfig:"SSL_SERVER_CERTIFICATE"`
	TLSKeyFile  string `envconfig:"SSL_SERVER_KEY"`

	// Service tags logs and metrics.
	Service string `envconfig:"SERVICE_NAME" default:"mcpd"`
}

// Load reads configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
