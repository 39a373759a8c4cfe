// Sponsordesk - Newsletter Sponsorship Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sponsordesk

/*
Package logging provides centralized zerolog-based logging for Sponsordesk.

# Quick Start

	logging.Init(logging.Config{Level: "info", Format: "json", Timestamp: true})

	logging.Info().Msg("Server starting")
	logging.Error().Err(err).Msg("Operation failed")
	logging.Ctx(ctx).Warn().Str("kind", kind).Msg("Falling back to defaults")

Always terminate log chains with .Msg() or .Send(); an unterminated event is
never written.

# Request IDs

The API request ID middleware stores the chi request ID in the context with
ContextWithRequestID, and Ctx attaches it to every line logged for that
request.

# slog Bridge

NewSlogLogger adapts the global logger to log/slog for sutureslog, so
supervisor events share the same JSON stream.

# Security Events

SecurityLogger records admin login outcomes and rejected bearer tokens. Secret
material is never logged.
*/
package logging
