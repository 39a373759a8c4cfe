// Sponsordesk - Newsletter Sponsorship Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sponsordesk

package content

import "errors"

var (
	// ErrEmailRequired is returned when an inquiry has no email address.
	ErrEmailRequired = errors.New("Email required")

	// ErrMissingShareTokenOrData is returned by Publish when either value is empty.
	ErrMissingShareTokenOrData = errors.New("Missing shareToken or data")

	// ErrMissingToken is returned by Fetch when no share token is given.
	ErrMissingToken = errors.New("Missing token")

	// ErrUnknownKind is returned for a config document kind that has no
	// storage key.
	ErrUnknownKind = errors.New("unknown config document kind")

	// ErrInvalidDocument is returned when a document body is not valid JSON.
	ErrInvalidDocument = errors.New("document is not valid JSON")
)
