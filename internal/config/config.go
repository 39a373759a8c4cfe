// Sponsordesk - Newsletter Sponsorship Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sponsordesk

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration loaded from defaults, an optional
// YAML file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in defaults for every setting
//  2. Config File: Optional YAML config file (config.yaml)
//  3. Environment Variables: Override any mapped setting
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("Failed to load configuration")
//	}
//	server := http.Server{Addr: cfg.Server.Addr()}
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Security SecurityConfig `koanf:"security"`
	Beehiiv  BeehiivConfig  `koanf:"beehiiv"`
	Store    StoreConfig    `koanf:"store"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SecurityConfig holds admin authentication and request limiting settings.
//
// JWTSecret and AdminPassword may be empty at startup. Handlers report the
// missing secret when a request needs it, so read-only public endpoints keep
// working on a partially configured deployment.
type SecurityConfig struct {
	JWTSecret         string        `koanf:"jwt_secret"`
	AdminPassword     string        `koanf:"admin_password"`
	TokenTTL          time.Duration `koanf:"token_ttl"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// BeehiivConfig holds the newsletter platform credentials and the knobs for
// the analytics aggregator.
type BeehiivConfig struct {
	APIKey  string `koanf:"api_key"`
	PubID   string `koanf:"pub_id"`
	BaseURL string `koanf:"base_url"`

	// StatsPostLimit is how many recent posts feed the public stats averages.
	StatsPostLimit int `koanf:"stats_post_limit"`

	// OpensPostLimit is how many recent posts are fetched for the opens summary,
	// and OpensDiscardRecent how many of the newest are dropped because their
	// open counts are still accumulating.
	OpensPostLimit     int `koanf:"opens_post_limit"`
	OpensDiscardRecent int `koanf:"opens_discard_recent"`

	MaxSyncPages int           `koanf:"max_sync_pages"`
	PageSize     int           `koanf:"page_size"`
	CacheTTL     time.Duration `koanf:"cache_ttl"`

	Timeout           time.Duration `koanf:"timeout"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`
	Burst             int           `koanf:"burst"`
}

// StoreConfig selects and tunes the key-value backend.
type StoreConfig struct {
	// Backend is "memory" or "badger".
	Backend    string        `koanf:"backend"`
	Path       string        `koanf:"path"`
	GCInterval time.Duration `koanf:"gc_interval"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes file:line in log output.
	// Default: false
	Caller bool `koanf:"caller"`
}

// Load reads configuration using Koanf. It is the entry point used by main.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
