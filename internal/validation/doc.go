// Sponsordesk - Newsletter Sponsorship Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sponsordesk

/*
Package validation wraps go-playground/validator v10 for request bodies.

A single validator instance is shared by all handlers; it caches struct
metadata, so it is built once. Errors name fields by their JSON tag, which
lets a handler map a failure to the exact public message:

	type InquiryRequest struct {
	    Email string `json:"email" validate:"required"`
	}

	if verr := validation.ValidateStruct(&req); verr != nil && verr.HasField("email") {
	    respondError(w, http.StatusBadRequest, "Email required")
	}

# Custom Validators

  - json_present: a json.RawMessage that is present and truthy (not null,
    false, 0 or the empty string)
*/
package validation
