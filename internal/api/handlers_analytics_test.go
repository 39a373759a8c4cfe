// Sponsordesk - Newsletter Sponsorship Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sponsordesk

package api

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/sponsordesk/internal/analytics"
	"github.com/tomtom215/sponsordesk/internal/beehiiv"
	"github.com/tomtom215/sponsordesk/internal/models"
)

var _ Analytics = (*analytics.Aggregator)(nil)

func assertPublicStatsHeaders(t *testing.T, h http.Header) {
	t.Helper()
	if got := h.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
	if got := h.Get("Cache-Control"); got != "s-maxage=300, stale-while-revalidate=600" {
		t.Errorf("Cache-Control = %q", got)
	}
}

func TestStatsEndpoint(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, &fakeAnalytics{
		stats: func() (*models.StatsSummary, error) {
			return &models.StatsSummary{
				ActiveSubscribers: 12000,
				AvgOpensPerSend:   5400,
				AvgCtr:            3.2,
				PostsAnalyzed:     18,
				FetchedAt:         "2026-03-09T14:30:05.250Z",
			}, nil
		},
	})

	rec := srv.do(t, http.MethodGet, "/api/stats", "", false)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	assertPublicStatsHeaders(t, rec.Header())

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["activeSubscribers"] != float64(12000) {
		t.Errorf("activeSubscribers = %v", body["activeSubscribers"])
	}
	// Unknown dormant count is null, never zero.
	if v, ok := body["dormantCount"]; !ok || v != nil {
		t.Errorf("dormantCount = %v (present %v), want null", v, ok)
	}
	if v, ok := body["engagedMoms"]; !ok || v != nil {
		t.Errorf("engagedMoms = %v (present %v), want null", v, ok)
	}
}

func TestStatsEndpointsFailWithHeaders(t *testing.T) {
	t.Parallel()

	boom := errors.New("BEEHIIV_API_KEY not configured")
	srv := newTestServer(t, &fakeAnalytics{
		stats: func() (*models.StatsSummary, error) { return nil, boom },
		opens: func() (*models.OpensSummary, error) { return nil, boom },
	})

	for _, path := range []string{"/api/stats", "/api/newsletter-opens"} {
		rec := srv.do(t, http.MethodGet, path, "", false)
		assertError(t, rec, http.StatusInternalServerError, boom.Error())
		assertPublicStatsHeaders(t, rec.Header())
	}
}

func TestNewsletterOpensEndpoint(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, &fakeAnalytics{
		opens: func() (*models.OpensSummary, error) {
			return &models.OpensSummary{
				Posts: []models.OpensPost{
					{Title: "Issue 42", PublishDate: json.RawMessage(`1767225600`), TotalOpens: 5100},
				},
				AvgOpensPerSend: 5100,
				PostsAnalyzed:   1,
			}, nil
		},
	})

	rec := srv.do(t, http.MethodGet, "/api/newsletter-opens", "", false)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	assertPublicStatsHeaders(t, rec.Header())

	var got models.OpensSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got.Posts) != 1 || got.Posts[0].TotalOpens != 5100 || string(got.Posts[0].PublishDate) != "1767225600" {
		t.Errorf("posts = %+v", got.Posts)
	}
}

func TestSyncEndpointsRequireCredentials(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, nil)

	for _, path := range []string{"/api/sync", "/api/quick-sync", "/api/debug"} {
		for _, body := range []string{`{}`, `{"apiKey":"k"}`, `{"pubId":"p"}`, `{"apiKey":"","pubId":"p"}`} {
			rec := srv.do(t, http.MethodPost, path, body, true)
			assertError(t, rec, http.StatusBadRequest, "Missing apiKey or pubId")
		}
		rec := srv.do(t, http.MethodPost, path, `not json`, true)
		assertError(t, rec, http.StatusBadRequest, "Invalid JSON body")
	}
}

func TestSyncPassesRequestThrough(t *testing.T) {
	t.Parallel()

	var gotCreds beehiiv.Credentials
	var gotMaxPages *int
	var gotKnown []string

	srv := newTestServer(t, &fakeAnalytics{
		fullSync: func(creds beehiiv.Credentials, maxPages *int) (*models.FullSyncResult, error) {
			gotCreds, gotMaxPages = creds, maxPages
			scanned, total := 1, 1
			return &models.FullSyncResult{
				Posts:          []json.RawMessage{json.RawMessage(`{"id":"post_1"}`)},
				TotalFetched:   1,
				TotalAvailable: 1,
				PagesScanned:   &scanned,
				TotalPages:     &total,
			}, nil
		},
		quickSync: func(creds beehiiv.Credentials, known []string) (*models.QuickSyncResult, error) {
			gotKnown = known
			return &models.QuickSyncResult{Posts: []json.RawMessage{}, ExistingRefreshed: len(known)}, nil
		},
	})

	rec := srv.do(t, http.MethodPost, "/api/sync", `{"apiKey":"key_1","pubId":"pub_1","maxPages":3}`, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("sync status = %d: %s", rec.Code, rec.Body.String())
	}
	if gotCreds.APIKey != "key_1" || gotCreds.PubID != "pub_1" {
		t.Errorf("credentials = %+v", gotCreds)
	}
	if gotMaxPages == nil || *gotMaxPages != 3 {
		t.Errorf("maxPages = %v, want 3", gotMaxPages)
	}
	var full models.FullSyncResult
	if err := json.Unmarshal(rec.Body.Bytes(), &full); err != nil {
		t.Fatal(err)
	}
	if full.TotalFetched != 1 || full.PagesScanned == nil || full.Warning != "" {
		t.Errorf("sync body = %s", rec.Body.String())
	}

	rec = srv.do(t, http.MethodPost, "/api/sync", `{"apiKey":"k","pubId":"p"}`, true)
	if rec.Code != http.StatusOK || gotMaxPages != nil {
		t.Errorf("absent maxPages should reach the aggregator as nil, got %v", gotMaxPages)
	}

	rec = srv.do(t, http.MethodPost, "/api/quick-sync", `{"apiKey":"k","pubId":"p","knownPostIds":["a","b"]}`, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("quick-sync status = %d: %s", rec.Code, rec.Body.String())
	}
	if strings.Join(gotKnown, ",") != "a,b" {
		t.Errorf("knownPostIds = %v", gotKnown)
	}
}

func TestSyncErrorMapping(t *testing.T) {
	t.Parallel()

	body := strings.Repeat("e", 600)
	apiErr := &beehiiv.APIError{StatusCode: http.StatusForbidden, Body: body}
	transportErr := errors.New("dial tcp: connection refused")

	tests := []struct {
		name       string
		path       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"sync upstream", "/api/sync", apiErr, http.StatusForbidden, "Beehiiv API error 403: " + body[:300]},
		{"sync transport", "/api/sync", transportErr, http.StatusInternalServerError, "Server error: " + transportErr.Error()},
		{"quick upstream", "/api/quick-sync", apiErr, http.StatusForbidden, "Beehiiv API error: " + body[:300]},
		{"quick transport", "/api/quick-sync", transportErr, http.StatusInternalServerError, "Server error: " + transportErr.Error()},
		{"debug upstream", "/api/debug", apiErr, http.StatusForbidden, body[:500]},
		{"debug transport", "/api/debug", transportErr, http.StatusInternalServerError, transportErr.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.err
			srv := newTestServer(t, &fakeAnalytics{
				fullSync:  func(beehiiv.Credentials, *int) (*models.FullSyncResult, error) { return nil, err },
				quickSync: func(beehiiv.Credentials, []string) (*models.QuickSyncResult, error) { return nil, err },
				debug:     func(beehiiv.Credentials) (*models.DebugSummary, error) { return nil, err },
			})

			rec := srv.do(t, http.MethodPost, tt.path, `{"apiKey":"k","pubId":"p"}`, true)
			assertError(t, rec, tt.wantStatus, tt.wantMsg)
		})
	}
}

func TestSyncPartialResultIsOK(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, &fakeAnalytics{
		fullSync: func(beehiiv.Credentials, *int) (*models.FullSyncResult, error) {
			return &models.FullSyncResult{
				Posts:          []json.RawMessage{json.RawMessage(`{"id":"p1"}`)},
				TotalFetched:   1,
				TotalAvailable: 50,
				Warning:        "Stopped at page 1 due to API error: boom",
			}, nil
		},
	})

	rec := srv.do(t, http.MethodPost, "/api/sync", `{"apiKey":"k","pubId":"p"}`, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatal(err)
	}
	if _, ok := raw["pagesScanned"]; ok {
		t.Error("partial result should omit pagesScanned")
	}
	if _, ok := raw["warning"]; !ok {
		t.Error("partial result should carry a warning")
	}
}
