// Sponsordesk - Newsletter Sponsorship Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sponsordesk

package beehiiv

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrAPIKeyNotSet is returned when no API key is available for a call.
	ErrAPIKeyNotSet = errors.New("BEEHIIV_API_KEY not set")

	// ErrPubIDNotSet is returned when no publication ID is available for a call.
	ErrPubIDNotSet = errors.New("BEEHIIV_PUB_ID not set")
)

// APIError is a non-2xx response from Beehiiv. Body holds up to 64KB of the
// response body as text.
type APIError struct {
	StatusCode int
	Body       string
}

// Error formats the status with the first 300 characters of the body.
func (e *APIError) Error() string {
	return fmt.Sprintf("Beehiiv API error %d: %s", e.StatusCode, e.Truncate(300))
}

// Truncate returns at most n characters of the body.
func (e *APIError) Truncate(n int) string {
	return TruncateChars(e.Body, n)
}

// Retryable reports whether the status indicates an upstream fault rather
// than a problem with the request itself.
func (e *APIError) Retryable() bool {
	return e.StatusCode >= http.StatusInternalServerError || e.StatusCode == http.StatusTooManyRequests
}

// AsAPIError unwraps err to an *APIError.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// TruncateChars returns at most the first n characters of s.
func TruncateChars(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
