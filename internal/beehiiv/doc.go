// Sponsordesk - Newsletter Sponsorship Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sponsordesk

/*
Package beehiiv is a client for the parts of the Beehiiv v2 REST API that feed
the sponsorship site: the publication, its posts, subscription counts and
segments.

Client Features:
  - Bearer API key authentication, per call
  - 30-second request timeout
  - Token-bucket rate limiting (golang.org/x/time/rate)
  - Circuit breaker (sony/gobreaker) that ignores caller errors such as 401
  - Error bodies bounded to 64KB and surfaced as *APIError
  - Posts kept as json.RawMessage so sync responses pass them through

Responses with no fixed schema are returned as Document, a decoded JSON object
read through Lookup and Number:

	pub, err := client.GetPublication(ctx, creds)
	if err != nil {
	    return err
	}
	active, ok := pub.Number("data", "stats", "active_subscriptions")
*/
package beehiiv
