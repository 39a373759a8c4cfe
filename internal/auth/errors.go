// Sponsordesk - Newsletter Sponsorship Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sponsordesk

package auth

import "errors"

var (
	// ErrSecretNotConfigured is returned when a token is requested but no
	// signing secret is configured.
	ErrSecretNotConfigured = errors.New("JWT_SECRET not configured")

	// ErrAdminPasswordNotConfigured is returned when a login is attempted but
	// no admin password is configured.
	ErrAdminPasswordNotConfigured = errors.New("ADMIN_PASSWORD not configured")

	// ErrInvalidPassword is returned for a wrong admin password.
	ErrInvalidPassword = errors.New("Invalid password")

	// ErrPasswordRequired is returned when the login body has no password.
	ErrPasswordRequired = errors.New("Password required")
)
