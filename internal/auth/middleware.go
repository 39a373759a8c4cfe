// Sponsordesk - Newsletter Sponsorship Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sponsordesk

package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/tomtom215/sponsordesk/internal/logging"
	"github.com/tomtom215/sponsordesk/internal/metrics"
)

type contextKey string

// ClaimsContextKey holds the verified token payload in the request context.
const ClaimsContextKey contextKey = "claims"

// Middleware guards privileged routes with a bearer token.
type Middleware struct {
	tokens   *TokenService
	security *logging.SecurityLogger
}

// NewMiddleware creates the bearer-token middleware.
func NewMiddleware(tokens *TokenService, security *logging.SecurityLogger) *Middleware {
	if security == nil {
		security = logging.NewSecurityLogger()
	}
	return &Middleware{tokens: tokens, security: security}
}

// RequireAdmin rejects requests without a valid token with 401
// {"error":"Unauthorized"}.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := m.tokens.Verify(BearerToken(r))
		if claims == nil {
			metrics.AuthFailures.WithLabelValues("token").Inc()
			m.security.LogTokenRejected(r.RemoteAddr, r.URL.Path)
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// BearerToken returns the Authorization header with the first "Bearer "
// removed. A header without the prefix is returned unchanged.
func BearerToken(r *http.Request) string {
	return strings.Replace(r.Header.Get("Authorization"), "Bearer ", "", 1)
}

// ClaimsFromContext returns the verified payload stored by RequireAdmin.
func ClaimsFromContext(ctx context.Context) (map[string]any, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(map[string]any)
	return claims, ok
}
