// Sponsordesk - Newsletter Sponsorship Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sponsordesk

package config

import (
	"fmt"
	"net/url"
)

// Validate checks that configuration values are well formed
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	if err := c.validateBeehiiv(); err != nil {
		return err
	}

	if err := c.validateStore(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateServer validates server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	return nil
}

// validateSecurity validates security configuration
func (c *Config) validateSecurity() error {
	if c.Security.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	if len(c.Security.CORSOrigins) == 0 {
		return fmt.Errorf("CORS_ORIGINS must list at least one origin (use * to allow all)")
	}
	return nil
}

// validateBeehiiv validates the analytics client and aggregation limits
func (c *Config) validateBeehiiv() error {
	b := c.Beehiiv
	if err := validateHTTPURL(b.BaseURL, "BEEHIIV_BASE_URL"); err != nil {
		return err
	}
	if b.StatsPostLimit < 1 {
		return fmt.Errorf("BEEHIIV_STATS_POST_LIMIT must be at least 1")
	}
	if b.OpensPostLimit < 1 {
		return fmt.Errorf("BEEHIIV_OPENS_POST_LIMIT must be at least 1")
	}
	if b.OpensDiscardRecent < 0 || b.OpensDiscardRecent >= b.OpensPostLimit {
		return fmt.Errorf("BEEHIIV_OPENS_DISCARD_RECENT must be between 0 and BEEHIIV_OPENS_POST_LIMIT-1, got %d", b.OpensDiscardRecent)
	}
	if b.MaxSyncPages < 1 {
		return fmt.Errorf("BEEHIIV_MAX_SYNC_PAGES must be at least 1")
	}
	if b.PageSize < 1 {
		return fmt.Errorf("BEEHIIV_PAGE_SIZE must be at least 1")
	}
	if b.CacheTTL <= 0 {
		return fmt.Errorf("BEEHIIV_CACHE_TTL must be positive")
	}
	if b.RequestsPerSecond <= 0 || b.Burst < 1 {
		return fmt.Errorf("BEEHIIV_REQUESTS_PER_SECOND and BEEHIIV_BURST must be positive")
	}
	return nil
}

// validateStore validates the key-value backend selection
func (c *Config) validateStore() error {
	switch c.Store.Backend {
	case "memory":
		return nil
	case "badger":
		if c.Store.Path == "" {
			return fmt.Errorf("STORE_PATH is required when STORE_BACKEND=badger")
		}
		return nil
	default:
		return fmt.Errorf("STORE_BACKEND must be one of: memory, badger, got %q", c.Store.Backend)
	}
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// validateHTTPURL validates that a URL is an absolute http or https URL with a host.
// Unlike a server base URL, an API base may carry a version path such as /v2.
func validateHTTPURL(rawURL, fieldName string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %s", fieldName, parsedURL.Scheme)
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}

	if parsedURL.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters, remove: ?%s", fieldName, parsedURL.RawQuery)
	}

	return nil
}
