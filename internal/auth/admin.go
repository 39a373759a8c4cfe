// Sponsordesk - Newsletter Sponsorship Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sponsordesk

package auth

import (
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// AdminBcryptCost is the bcrypt cost used to hash the admin password.
const AdminBcryptCost = 12

// AdminRole is the only role a token can carry.
const AdminRole = "admin"

// AdminAuthenticator checks the shared admin password.
//
// The configured password is hashed once at construction so that each login
// costs one bcrypt comparison. Both sides are SHA-256 digested first because
// bcrypt only considers the first 72 bytes of its input.
type AdminAuthenticator struct {
	passwordHash []byte
}

// NewAdminAuthenticator hashes password with AdminBcryptCost. An empty
// password yields an authenticator that rejects every login with
// ErrAdminPasswordNotConfigured.
func NewAdminAuthenticator(password string) (*AdminAuthenticator, error) {
	return NewAdminAuthenticatorWithCost(password, AdminBcryptCost)
}

// NewAdminAuthenticatorWithCost is NewAdminAuthenticator with an explicit
// bcrypt cost.
func NewAdminAuthenticatorWithCost(password string, cost int) (*AdminAuthenticator, error) {
	if password == "" {
		return &AdminAuthenticator{}, nil
	}

	hash, err := bcrypt.GenerateFromPassword(digest(password), cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}
	return &AdminAuthenticator{passwordHash: hash}, nil
}

// Configured reports whether an admin password is set.
func (a *AdminAuthenticator) Configured() bool {
	return len(a.passwordHash) > 0
}

// Check compares password against the configured admin password.
func (a *AdminAuthenticator) Check(password string) error {
	if password == "" {
		return ErrPasswordRequired
	}
	if !a.Configured() {
		return ErrAdminPasswordNotConfigured
	}
	if bcrypt.CompareHashAndPassword(a.passwordHash, digest(password)) != nil {
		return ErrInvalidPassword
	}
	return nil
}

func digest(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	out := make([]byte, 0, 64)
	return fmt.Appendf(out, "%x", sum[:])
}
