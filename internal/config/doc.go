// Sponsordesk - Newsletter Sponsorship Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sponsordesk

/*
Package config provides centralized configuration management for Sponsordesk.

Configuration is loaded with Koanf v2 from three layers, highest priority last:
built-in defaults, an optional YAML file, and environment variables.

# Environment Variables

Server:
  - HTTP_HOST / HTTP_PORT: Bind address (default: 0.0.0.0:3000); PORT is read when HTTP_PORT is unset
  - HTTP_TIMEOUT: Read timeout (default: 30s); the write timeout adds BEEHIIV_MAX_SYNC_PAGES x BEEHIIV_TIMEOUT so a full sync can finish

Security:
  - JWT_SECRET: HMAC secret used to sign admin tokens
  - ADMIN_PASSWORD: Shared admin password for /api/auth
  - TOKEN_TTL: Admin token lifetime (default: 168h)
  - CORS_ORIGINS: Comma-separated allowed origins (default: *)
  - RATE_LIMIT_DISABLED: Turn off per-IP request limits; DISABLE_RATE_LIMIT is read when it is unset

Beehiiv:
  - BEEHIIV_API_KEY / BEEHIIV_PUB_ID: Credentials for the public stats endpoints
  - BEEHIIV_OPENS_POST_LIMIT: Posts fetched for the opens summary (default: 8)
  - BEEHIIV_OPENS_DISCARD_RECENT: Newest posts excluded from the average (default: 2)
  - BEEHIIV_CACHE_TTL: Lifetime of cached opens and dormant counts (default: 24h)

Store:
  - STORE_BACKEND: memory or badger (default: memory)
  - STORE_PATH: BadgerDB directory (default: ./data/kv)

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

# Config File

	server:
	  port: 8080
	beehiiv:
	  opens_discard_recent: 3
	store:
	  backend: badger
	  path: /var/lib/sponsordesk
*/
package config
