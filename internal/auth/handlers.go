// Sponsordesk - Newsletter Sponsorship Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sponsordesk

package auth

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/sponsordesk/internal/logging"
	"github.com/tomtom215/sponsordesk/internal/metrics"
)

// maxLoginBody bounds the login request body.
const maxLoginBody = 64 << 10

// LoginRequest is the body of POST /api/auth.
type LoginRequest struct {
	Password string `json:"password"`
}

// LoginResponse carries the issued token.
type LoginResponse struct {
	Token string `json:"token"`
}

// Handlers serves the admin login endpoint.
type Handlers struct {
	admin    *AdminAuthenticator
	tokens   *TokenService
	security *logging.SecurityLogger
}

// NewHandlers creates the login handler set.
func NewHandlers(admin *AdminAuthenticator, tokens *TokenService, security *logging.SecurityLogger) *Handlers {
	if security == nil {
		security = logging.NewSecurityLogger()
	}
	return &Handlers{admin: admin, tokens: tokens, security: security}
}

// Login exchanges the admin password for a token with role "admin".
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxLoginBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	ip, ua := r.RemoteAddr, r.UserAgent()

	if err := h.admin.Check(req.Password); err != nil {
		switch {
		case errors.Is(err, ErrPasswordRequired):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrAdminPasswordNotConfigured):
			logging.Error().Msg("Login attempted but ADMIN_PASSWORD is not configured")
			writeError(w, http.StatusInternalServerError, err.Error())
		default:
			metrics.AuthFailures.WithLabelValues("password").Inc()
			h.security.LogLoginFailure(ip, ua, "invalid password")
			writeError(w, http.StatusUnauthorized, err.Error())
		}
		return
	}

	token, err := h.tokens.Create(map[string]any{
		"role": AdminRole,
		"iat":  h.tokens.now().UnixMilli(),
	})
	if err != nil {
		logging.Error().Err(err).Msg("Failed to create admin token")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.security.LogLoginSuccess(ip, ua)
	writeJSON(w, http.StatusOK, LoginResponse{Token: token})
}
