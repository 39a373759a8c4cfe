// Sponsordesk - Newsletter Sponsorship Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sponsordesk

package logging

import (
	"strings"

	"github.com/rs/zerolog"
)

// SecurityEvent represents an authentication-relevant event for audit logging.
type SecurityEvent struct {
	// Event is the type of event (login_success, login_failed, token_rejected).
	Event     string
	Role      string
	IPAddress string
	UserAgent string
	Success   bool
	Reason    string
}

// SecurityLogger writes admin authentication events under the "auth" component.
// Passwords and tokens are never passed in; only outcomes and client metadata.
type SecurityLogger struct {
	logger zerolog.Logger
}

// NewSecurityLogger creates a security logger on the global logger.
func NewSecurityLogger() *SecurityLogger {
	return &SecurityLogger{logger: WithComponent("auth")}
}

// NewSecurityLoggerWithLogger creates a security logger with a custom zerolog logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewSecurityLoggerWithLogger(logger zerolog.Logger) *SecurityLogger {
	return &SecurityLogger{logger: logger.With().Str("component", "auth").Logger()}
}

// LogEvent logs a security event.
func (l *SecurityLogger) LogEvent(event *SecurityEvent) {
	e := l.logger.Info()
	if !event.Success {
		e = l.logger.Warn()
	}
	e = e.Str("event", event.Event).Bool("success", event.Success)

	if event.Role != "" {
		e = e.Str("role", event.Role)
	}
	if event.IPAddress != "" {
		e = e.Str("ip", event.IPAddress)
	}
	if event.UserAgent != "" {
		e = e.Str("user_agent", truncateString(event.UserAgent, 100))
	}
	if event.Reason != "" {
		e = e.Str("reason", SanitizeLogValue(event.Reason))
	}
	e.Msg("security event")
}

// LogLoginSuccess logs a successful admin login.
func (l *SecurityLogger) LogLoginSuccess(ip, userAgent string) {
	l.LogEvent(&SecurityEvent{
		Event:     "login_success",
		Role:      "admin",
		IPAddress: ip,
		UserAgent: userAgent,
		Success:   true,
	})
}

// LogLoginFailure logs a rejected admin login.
func (l *SecurityLogger) LogLoginFailure(ip, userAgent, reason string) {
	l.LogEvent(&SecurityEvent{
		Event:     "login_failed",
		IPAddress: ip,
		UserAgent: userAgent,
		Reason:    reason,
	})
}

// LogTokenRejected logs a privileged request whose bearer token failed verification.
func (l *SecurityLogger) LogTokenRejected(ip, path string) {
	l.LogEvent(&SecurityEvent{
		Event:     "token_rejected",
		IPAddress: ip,
		Reason:    path,
	})
}

// SanitizeLogValue strips control characters that could forge log lines and
// bounds the length of client-supplied values.
func SanitizeLogValue(s string) string {
	s = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return ' '
		}
		return r
	}, s)
	return truncateString(s, 200)
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
