// Sponsordesk - Newsletter Sponsorship Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sponsordesk

/*
Package auth implements single-role admin authentication.

There is one capability: a caller who knows the shared admin password can
exchange it for a token carrying role "admin", and that token unlocks every
privileged route. There are no users, sessions or per-route permissions.

Key Components:

  - TokenService: stateless HMAC-SHA256 tokens of the form
    base64url(json).base64url(signature), with an exp claim in Unix
    milliseconds (default lifetime 7 days)
  - AdminAuthenticator: bcrypt check of the configured admin password
  - Middleware: RequireAdmin guard returning 401 {"error":"Unauthorized"}
  - Handlers: POST /api/auth login

Usage:

	tokens := auth.NewTokenService(cfg.Security.JWTSecret, cfg.Security.TokenTTL)
	admin, err := auth.NewAdminAuthenticator(cfg.Security.AdminPassword)
	if err != nil {
	    return err
	}

	mw := auth.NewMiddleware(tokens, logging.NewSecurityLogger())
	r.With(mw.RequireAdmin).Post("/api/publish", h.Publish)

Missing secrets are not startup errors. A login without ADMIN_PASSWORD returns
500, a login without JWT_SECRET fails to sign, and with no JWT_SECRET every
bearer token is rejected.
*/
package auth
