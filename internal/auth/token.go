// Sponsordesk - Newsletter Sponsorship Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sponsordesk

package auth

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the lifetime of an admin token when none is configured.
const DefaultTokenTTL = 7 * 24 * time.Hour

// ExpiryClaim is the payload field holding the expiry in Unix milliseconds.
const ExpiryClaim = "exp"

// TokenService creates and verifies signed admin tokens.
//
// A token has the form base64url(json).base64url(hmac), where the HMAC is
// SHA-256 over the encoded payload keyed with the server secret. Tokens are
// stateless and cannot be revoked before they expire.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService creates a token service. An empty secret is accepted so
// that the server can start without one; Create then fails and Verify
// rejects every token.
//
//	tokens := auth.NewTokenService(cfg.Security.JWTSecret, cfg.Security.TokenTTL)
//	token, err := tokens.Create(map[string]any{"role": "admin"})
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// WithClock replaces the time source. Used by tests.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	s.now = now
	return s
}

// TTL returns the token lifetime.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Create signs payload with an exp claim of now+ttl. The caller's map is not
// modified.
func (s *TokenService) Create(payload map[string]any) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrSecretNotConfigured
	}

	claims := make(map[string]any, len(payload)+1)
	for k, v := range payload {
		claims[k] = v
	}
	claims[ExpiryClaim] = s.now().Add(s.ttl).UnixMilli()

	raw, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("failed to encode token payload: %w", err)
	}
	data := base64.RawURLEncoding.EncodeToString(raw)

	sig, err := jwt.SigningMethodHS256.Sign(data, s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return data + "." + base64.RawURLEncoding.EncodeToString(sig), nil
}

// Verify returns the payload of a valid, unexpired token, or nil. It never
// panics on malformed input. Numeric claims decode as float64.
func (s *TokenService) Verify(token string) map[string]any {
	if token == "" || len(s.secret) == 0 {
		return nil
	}

	parts := strings.Split(token, ".")
	if len(parts) != 2 {
		return nil
	}
	data, encodedSig := parts[0], parts[1]

	sig, err := base64.RawURLEncoding.DecodeString(encodedSig)
	if err != nil {
		return nil
	}
	if err := jwt.SigningMethodHS256.Verify(data, sig, s.secret); err != nil {
		return nil
	}

	raw, err := base64.RawURLEncoding.DecodeString(data)
	if err != nil {
		return nil
	}
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil || payload == nil {
		return nil
	}

	if exp, ok := payload[ExpiryClaim].(float64); ok && float64(s.now().UnixMilli()) > exp {
		return nil
	}
	return payload
}
