// Sponsordesk - Newsletter Sponsorship Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sponsordesk

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/sponsordesk/config.yaml",
	"/etc/sponsordesk/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            3000,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Security: SecurityConfig{
			JWTSecret:         "",
			AdminPassword:     "",
			TokenTTL:          7 * 24 * time.Hour,
			CORSOrigins:       []string{"*"},
			RateLimitDisabled: false,
		},
		Beehiiv: BeehiivConfig{
			BaseURL:            "https://api.beehiiv.com/v2",
			StatsPostLimit:     20,
			OpensPostLimit:     8,
			OpensDiscardRecent: 2,
			MaxSyncPages:       50,
			PageSize:           10,
			CacheTTL:           24 * time.Hour,
			Timeout:            30 * time.Second,
			RequestsPerSecond:  10,
			Burst:              5,
		},
		Store: StoreConfig{
			Backend:    "memory",
			Path:       "./data/kv",
			GCInterval: 10 * time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load alias environment variables (PORT, DISABLE_RATE_LIMIT)
	if err := k.Load(env.Provider("", ".", envAliasTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Layer 4: Load environment variables (highest priority)
	// BEEHIIV_PUB_ID -> beehiiv.pub_id
	// STORE_BACKEND  -> store.backend
	// A canonical name beats its alias regardless of environment order.
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars arrive as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
// Unmapped variables are ignored so that unrelated environment does not leak
// into the configuration.
var envMappings = map[string]string{
	// Server
	"http_port":             "server.port",
	"http_host":             "server.host",
	"http_timeout":          "server.timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",

	// Security
	"jwt_secret":          "security.jwt_secret",
	"admin_password":      "security.admin_password",
	"token_ttl":           "security.token_ttl",
	"cors_origins":        "security.cors_origins",
	"rate_limit_disabled": "security.rate_limit_disabled",

	// Beehiiv
	"beehiiv_api_key":              "beehiiv.api_key",
	"beehiiv_pub_id":               "beehiiv.pub_id",
	"beehiiv_base_url":             "beehiiv.base_url",
	"beehiiv_stats_post_limit":     "beehiiv.stats_post_limit",
	"beehiiv_opens_post_limit":     "beehiiv.opens_post_limit",
	"beehiiv_opens_discard_recent": "beehiiv.opens_discard_recent",
	"beehiiv_max_sync_pages":       "beehiiv.max_sync_pages",
	"beehiiv_page_size":            "beehiiv.page_size",
	"beehiiv_cache_ttl":            "beehiiv.cache_ttl",
	"beehiiv_timeout":              "beehiiv.timeout",
	"beehiiv_requests_per_second":  "beehiiv.requests_per_second",
	"beehiiv_burst":                "beehiiv.burst",

	// Store
	"store_backend":     "store.backend",
	"store_path":        "store.path",
	"store_gc_interval": "store.gc_interval",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envAliases maps alternative environment variable names (lowercased) to
// koanf paths. They load before envMappings, so when both an alias and its
// canonical name are set the canonical one wins: HTTP_PORT over PORT and
// RATE_LIMIT_DISABLED over DISABLE_RATE_LIMIT.
var envAliases = map[string]string{
	"port":               "server.port",
	"disable_rate_limit": "security.rate_limit_disabled",
}

func envAliasTransformFunc(key string) string {
	return envAliases[strings.ToLower(key)]
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - BEEHIIV_API_KEY -> beehiiv.api_key
//   - JWT_SECRET -> security.jwt_secret
//   - LOG_LEVEL -> logging.level
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}
