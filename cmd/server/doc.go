// Sponsordesk - Newsletter Sponsorship Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sponsordesk

/*
Command server runs the sponsordesk HTTP API: public audience stats for the
sponsorship site, the admin Beehiiv sync endpoints, editable pricing and
package documents, sponsor inquiries and shareable sponsor dashboards.

# Startup

 1. Configuration: Koanf v2 (defaults, then config.yaml, then environment)
 2. Logging: zerolog, JSON or console
 3. Key-value store: in-memory or BadgerDB
 4. Beehiiv client behind a circuit breaker, analytics aggregator
 5. Content stores, admin auth, chi router
 6. Supervisor tree: HTTP server, plus value-log GC for BadgerDB

# Configuration

	# Server
	HTTP_PORT=3000
	HTTP_TIMEOUT=30s
	HTTP_SHUTDOWN_TIMEOUT=10s

	# Admin
	ADMIN_PASSWORD=<password>
	JWT_SECRET=<secret>
	TOKEN_TTL=168h
	CORS_ORIGINS=https://sponsor.example.com

	# Beehiiv (public stats)
	BEEHIIV_API_KEY=<key>
	BEEHIIV_PUB_ID=pub_<id>
	BEEHIIV_CACHE_TTL=24h

	# Storage
	STORE_BACKEND=badger
	STORE_PATH=/var/lib/sponsordesk
	STORE_GC_INTERVAL=10m

	# Logging
	LOG_LEVEL=info
	LOG_FORMAT=json

Missing secrets do not stop the server. Public endpoints keep working and
the affected endpoints report the missing variable when called.

# Signals

SIGINT and SIGTERM cancel the supervisor tree. The HTTP server stops
accepting connections and waits up to HTTP_SHUTDOWN_TIMEOUT for in-flight
requests before the store is closed.
*/
package main
