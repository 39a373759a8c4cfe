// Sponsordesk - Newsletter Sponsorship Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sponsordesk

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"golang.org/x/crypto/bcrypt"

	"github.com/tomtom215/sponsordesk/internal/auth"
	"github.com/tomtom215/sponsordesk/internal/beehiiv"
	"github.com/tomtom215/sponsordesk/internal/content"
	"github.com/tomtom215/sponsordesk/internal/models"
	"github.com/tomtom215/sponsordesk/internal/store"
)

const testAdminPassword = "correct horse battery staple"

var errNotStubbed = errors.New("not stubbed")

// fakeAnalytics implements Analytics with per-method hooks. Unset hooks
// fail with errNotStubbed.
type fakeAnalytics struct {
	stats     func() (*models.StatsSummary, error)
	opens     func() (*models.OpensSummary, error)
	fullSync  func(creds beehiiv.Credentials, maxPages *int) (*models.FullSyncResult, error)
	quickSync func(creds beehiiv.Credentials, known []string) (*models.QuickSyncResult, error)
	debug     func(creds beehiiv.Credentials) (*models.DebugSummary, error)
}

func (f *fakeAnalytics) Stats(context.Context) (*models.StatsSummary, error) {
	if f.stats == nil {
		return nil, errNotStubbed
	}
	return f.stats()
}

func (f *fakeAnalytics) OpensSummary(context.Context) (*models.OpensSummary, error) {
	if f.opens == nil {
		return nil, errNotStubbed
	}
	return f.opens()
}

func (f *fakeAnalytics) FullSync(_ context.Context, creds beehiiv.Credentials, maxPages *int) (*models.FullSyncResult, error) {
	if f.fullSync == nil {
		return nil, errNotStubbed
	}
	return f.fullSync(creds, maxPages)
}

func (f *fakeAnalytics) QuickSync(_ context.Context, creds beehiiv.Credentials, known []string) (*models.QuickSyncResult, error) {
	if f.quickSync == nil {
		return nil, errNotStubbed
	}
	return f.quickSync(creds, known)
}

func (f *fakeAnalytics) DebugPosts(_ context.Context, creds beehiiv.Credentials) (*models.DebugSummary, error) {
	if f.debug == nil {
		return nil, errNotStubbed
	}
	return f.debug(creds)
}

// testServer is a fully wired router over an in-memory store.
type testServer struct {
	handler http.Handler
	store   store.Store
	token   string
}

func newTestServer(t *testing.T, analytics Analytics) *testServer {
	t.Helper()
	return newTestServerWithStore(t, analytics, store.NewMemoryStore())
}

func newTestServerWithStore(t *testing.T, analytics Analytics, kv store.Store) *testServer {
	t.Helper()

	if analytics == nil {
		analytics = &fakeAnalytics{}
	}

	tokens := auth.NewTokenService("test-signing-secret", 0)
	admin, err := auth.NewAdminAuthenticatorWithCost(testAdminPassword, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("NewAdminAuthenticatorWithCost() error = %v", err)
	}

	token, err := tokens.Create(map[string]any{"role": auth.AdminRole})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitDisabled = true

	handler := NewHandler(
		analytics,
		content.NewConfigDocs(kv),
		content.NewInquiries(kv),
		content.NewSnapshots(kv),
	)
	router := NewRouter(handler, auth.NewMiddleware(tokens, nil), auth.NewHandlers(admin, tokens, nil), NewChiMiddleware(cfg))

	return &testServer{handler: router.SetupChi(), store: kv, token: token}
}

// do sends a request with body sent verbatim.
func (s *testServer) do(t *testing.T, method, target, body string, authed bool) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

// errorMessage decodes {"error": ...} from a response.
func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body models.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response %q is not an error body: %v", rec.Body.String(), err)
	}
	return body.Error
}

func assertError(t *testing.T, rec *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	if rec.Code != status {
		t.Errorf("status = %d, want %d (body %s)", rec.Code, status, rec.Body.String())
	}
	if got := errorMessage(t, rec); got != message {
		t.Errorf("error = %q, want %q", got, message)
	}
}
