// Sponsordesk - Newsletter Sponsorship Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sponsordesk

package models

import "github.com/goccy/go-json"

// Inquiry is a sponsorship lead captured from the public site.
//
// ID is the creation time in Unix milliseconds as a decimal string and
// CreatedAt is the same instant in ISO-8601 UTC with millisecond precision.
type Inquiry struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Company   string `json:"company"`
	Tier      string `json:"tier"`
	Takeover  bool   `json:"takeover"`
	Message   string `json:"message"`
	CreatedAt string `json:"createdAt"`
}

// InquiryRequest is the body of POST /api/inquiry. Takeover is kept raw and
// coerced by truthiness, so "yes" and 1 both count as true.
type InquiryRequest struct {
	Name     string          `json:"name"`
	Email    string          `json:"email" validate:"required"`
	Company  string          `json:"company"`
	Tier     string          `json:"tier"`
	Takeover json.RawMessage `json:"takeover"`
	Message  string          `json:"message"`
}

// PublishRequest is the body of POST /api/publish.
type PublishRequest struct {
	ShareToken string          `json:"shareToken" validate:"required"`
	Data       json.RawMessage `json:"data" validate:"json_present"`
}
