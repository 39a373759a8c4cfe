// Sponsordesk - Newsletter Sponsorship Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sponsordesk

package models

import "github.com/goccy/go-json"

// ErrorResponse is the body of every error response.
//
//	{"error": "Unauthorized"}
type ErrorResponse struct {
	Error string `json:"error"`
}

// OKResponse acknowledges a successful write.
type OKResponse struct {
	OK bool `json:"ok"`
}

// ResetResponse is returned when a config document is reset to its defaults.
type ResetResponse struct {
	OK       bool            `json:"ok"`
	Defaults json.RawMessage `json:"defaults"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}
