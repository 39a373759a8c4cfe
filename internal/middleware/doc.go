// Sponsordesk - Newsletter Sponsorship Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sponsordesk

/*
Package middleware provides the request-scoped HTTP middleware shared by every
route.

Key Components:

  - RequestID: UUID request IDs, echoed in X-Request-ID and attached to the
    logging context
  - PrometheusMetrics: request count, latency and in-flight gauge, labelled by
    chi route pattern

Both are plain func(http.Handler) http.Handler and are installed with chi's
r.Use:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)

Authentication lives in internal/auth; CORS and rate limiting come from
go-chi/cors and go-chi/httprate and are configured in internal/api.
*/
package middleware
