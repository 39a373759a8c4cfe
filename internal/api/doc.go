// Sponsordesk - Newsletter Sponsorship Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sponsordesk

/*
Package api provides the HTTP surface of the service on a chi router.

Every response body is JSON. Errors use a single shape:

	{"error": "Unauthorized"}

# Routes

Public:

	POST   /api/auth               admin login, returns {token}
	GET    /api/packages-config    packages page document
	GET    /api/pricing-config     pricing assumptions document
	POST   /api/inquiry            record a sponsorship inquiry
	GET    /api/sponsor-data       published sponsor snapshot (?token=)
	GET    /api/stats              audience summary (CDN cacheable)
	GET    /api/newsletter-opens   recent per-issue opens (CDN cacheable)
	GET    /health                 liveness
	GET    /metrics                Prometheus exposition

Admin (Authorization: Bearer <token>):

	POST   /api/packages-config    replace the document
	DELETE /api/packages-config    reset to defaults
	POST   /api/pricing-config     replace the document
	DELETE /api/pricing-config     reset to defaults
	GET    /api/inquiry            list inquiries, newest first
	POST   /api/publish            publish a sponsor snapshot
	POST   /api/sync               page through posts with stats
	POST   /api/quick-sync         latest page plus known posts
	POST   /api/debug              raw stats fields of the latest posts

A method not listed for a path returns 405 {"error":"Method not allowed"}.

# Middleware

Applied to every route, in order: request ID, real IP, panic recovery,
CORS (go-chi/cors), Prometheus instrumentation. Per-IP limits from
go-chi/httprate guard login (5 per 5 minutes), writes (30 per minute) and
sync (10 per minute); they can be disabled with security.rate_limit_disabled.
*/
package api
