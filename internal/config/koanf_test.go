// Sponsordesk - Newsletter Sponsorship Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sponsordesk

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 3000 {
		t.Errorf("Server.Port = %d, want 3000", cfg.Server.Port)
	}
	if cfg.Security.TokenTTL != 7*24*time.Hour {
		t.Errorf("Security.TokenTTL = %v, want 168h", cfg.Security.TokenTTL)
	}
	if len(cfg.Security.CORSOrigins) != 1 || cfg.Security.CORSOrigins[0] != "*" {
		t.Errorf("Security.CORSOrigins = %v, want [*]", cfg.Security.CORSOrigins)
	}
	if cfg.Beehiiv.BaseURL != "https://api.beehiiv.com/v2" {
		t.Errorf("Beehiiv.BaseURL = %q", cfg.Beehiiv.BaseURL)
	}
	if cfg.Beehiiv.OpensPostLimit != 8 || cfg.Beehiiv.OpensDiscardRecent != 2 {
		t.Errorf("opens window = %d/%d, want 8/2", cfg.Beehiiv.OpensPostLimit, cfg.Beehiiv.OpensDiscardRecent)
	}
	if cfg.Beehiiv.StatsPostLimit != 20 {
		t.Errorf("Beehiiv.StatsPostLimit = %d, want 20", cfg.Beehiiv.StatsPostLimit)
	}
	if cfg.Beehiiv.MaxSyncPages != 50 {
		t.Errorf("Beehiiv.MaxSyncPages = %d, want 50", cfg.Beehiiv.MaxSyncPages)
	}
	if cfg.Beehiiv.CacheTTL != 24*time.Hour {
		t.Errorf("Beehiiv.CacheTTL = %v, want 24h", cfg.Beehiiv.CacheTTL)
	}
	if cfg.Store.Backend != "memory" {
		t.Errorf("Store.Backend = %q, want memory", cfg.Store.Backend)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaultConfig().Validate() error = %v", err)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		env  string
		want string
	}{
		{"BEEHIIV_API_KEY", "beehiiv.api_key"},
		{"BEEHIIV_PUB_ID", "beehiiv.pub_id"},
		{"JWT_SECRET", "security.jwt_secret"},
		{"ADMIN_PASSWORD", "security.admin_password"},
		{"STORE_BACKEND", "store.backend"},
		{"LOG_LEVEL", "logging.level"},
		{"HTTP_PORT", "server.port"},
		{"PORT", ""},
		{"PATH", ""},
		{"HOME", ""},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Parallel()
			if got := envTransformFunc(tt.env); got != tt.want {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.env, got, tt.want)
			}
		})
	}
}

// setCleanConfigEnv points CONFIG_PATH at a file that does not exist so tests
// never pick up a stray config.yaml.
func setCleanConfigEnv(t *testing.T) {
	t.Helper()
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	for _, names := range []map[string]string{envMappings, envAliases} {
		for env := range names {
			t.Setenv(strings.ToUpper(env), "")
			os.Unsetenv(strings.ToUpper(env))
		}
	}
}

func TestLoadWithKoanfEnvAliases(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		wantPort int
		wantOff  bool
	}{
		{"alias alone", map[string]string{"PORT": "4000", "DISABLE_RATE_LIMIT": "true"}, 4000, true},
		{"canonical alone", map[string]string{"HTTP_PORT": "5000", "RATE_LIMIT_DISABLED": "true"}, 5000, true},
		{"canonical wins", map[string]string{
			"PORT": "4000", "HTTP_PORT": "5000",
			"DISABLE_RATE_LIMIT": "true", "RATE_LIMIT_DISABLED": "false",
		}, 5000, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setCleanConfigEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := LoadWithKoanf()
			if err != nil {
				t.Fatalf("LoadWithKoanf() error = %v", err)
			}
			if cfg.Server.Port != tt.wantPort {
				t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, tt.wantPort)
			}
			if cfg.Security.RateLimitDisabled != tt.wantOff {
				t.Errorf("Security.RateLimitDisabled = %v, want %v", cfg.Security.RateLimitDisabled, tt.wantOff)
			}
		})
	}
}

func TestLoadWithKoanfEnvVars(t *testing.T) {
	setCleanConfigEnv(t)
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("BEEHIIV_API_KEY", "bh_key")
	t.Setenv("BEEHIIV_PUB_ID", "pub_123")
	t.Setenv("BEEHIIV_OPENS_DISCARD_RECENT", "3")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Beehiiv.APIKey != "bh_key" || cfg.Beehiiv.PubID != "pub_123" {
		t.Errorf("Beehiiv credentials = %q/%q", cfg.Beehiiv.APIKey, cfg.Beehiiv.PubID)
	}
	if cfg.Beehiiv.OpensDiscardRecent != 3 {
		t.Errorf("Beehiiv.OpensDiscardRecent = %d, want 3", cfg.Beehiiv.OpensDiscardRecent)
	}
	if len(cfg.Security.CORSOrigins) != 2 || cfg.Security.CORSOrigins[1] != "https://b.example" {
		t.Errorf("Security.CORSOrigins = %v", cfg.Security.CORSOrigins)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}

	// Defaults survive for unset values
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want 0.0.0.0 (default)", cfg.Server.Host)
	}
	if cfg.Beehiiv.OpensPostLimit != 8 {
		t.Errorf("Beehiiv.OpensPostLimit = %d, want 8 (default)", cfg.Beehiiv.OpensPostLimit)
	}
}

func TestLoadWithKoanfConfigFile(t *testing.T) {
	setCleanConfigEnv(t)

	configContent := `
server:
  port: 8888
  host: "127.0.0.1"

beehiiv:
  pub_id: "pub_from_file"
  stats_post_limit: 30

store:
  backend: badger
  path: /tmp/sponsordesk-kv
`
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0o600); err != nil {
		t.Fatalf("Failed to create config file: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, configPath)
	t.Setenv("HTTP_PORT", "7777")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	// env beats file
	if cfg.Server.Port != 7777 {
		t.Errorf("Server.Port = %d, want 7777", cfg.Server.Port)
	}
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Server.Host = %q, want 127.0.0.1", cfg.Server.Host)
	}
	if cfg.Beehiiv.PubID != "pub_from_file" {
		t.Errorf("Beehiiv.PubID = %q, want pub_from_file", cfg.Beehiiv.PubID)
	}
	if cfg.Beehiiv.StatsPostLimit != 30 {
		t.Errorf("Beehiiv.StatsPostLimit = %d, want 30", cfg.Beehiiv.StatsPostLimit)
	}
	if cfg.Store.Backend != "badger" || cfg.Store.Path != "/tmp/sponsordesk-kv" {
		t.Errorf("Store = %+v", cfg.Store)
	}
}

func TestLoadWithKoanfValidation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "port out of range",
			env:     map[string]string{"HTTP_PORT": "70000"},
			wantErr: "HTTP_PORT",
		},
		{
			name:    "discard not below opens limit",
			env:     map[string]string{"BEEHIIV_OPENS_POST_LIMIT": "4", "BEEHIIV_OPENS_DISCARD_RECENT": "4"},
			wantErr: "BEEHIIV_OPENS_DISCARD_RECENT",
		},
		{
			name:    "unknown store backend",
			env:     map[string]string{"STORE_BACKEND": "redis"},
			wantErr: "STORE_BACKEND",
		},
		{
			name:    "bad base url",
			env:     map[string]string{"BEEHIIV_BASE_URL": "ftp://api.example"},
			wantErr: "BEEHIIV_BASE_URL",
		},
		{
			name:    "bad log level",
			env:     map[string]string{"LOG_LEVEL": "loud"},
			wantErr: "LOG_LEVEL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setCleanConfigEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := LoadWithKoanf()
			if err == nil {
				t.Fatal("LoadWithKoanf() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}

func TestFindConfigFile(t *testing.T) {
	dir := t.TempDir()
	custom := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(custom, []byte("server:\n  port: 1234\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Run("env path exists", func(t *testing.T) {
		t.Setenv(ConfigPathEnvVar, custom)
		if got := findConfigFile(); got != custom {
			t.Errorf("findConfigFile() = %q, want %q", got, custom)
		}
	})

	t.Run("env path missing falls through", func(t *testing.T) {
		t.Setenv(ConfigPathEnvVar, filepath.Join(dir, "nope.yaml"))
		if got := findConfigFile(); got == filepath.Join(dir, "nope.yaml") {
			t.Errorf("findConfigFile() returned a missing path")
		}
	})
}

func TestServerAddr(t *testing.T) {
	t.Parallel()
	s := ServerConfig{Host: "127.0.0.1", Port: 8080}
	if got := s.Addr(); got != "127.0.0.1:8080" {
		t.Errorf("Addr() = %q, want 127.0.0.1:8080", got)
	}
}
