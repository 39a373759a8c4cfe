// Sponsordesk - Newsletter Sponsorship Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sponsordesk

package api

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/sponsordesk/internal/auth"
	"github.com/tomtom215/sponsordesk/internal/content"
	"github.com/tomtom215/sponsordesk/internal/models"
	"github.com/tomtom215/sponsordesk/internal/store"
)

func TestLoginIssuesVerifiableToken(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, nil)

	rec := srv.do(t, http.MethodPost, "/api/auth", `{"password":"wrong"}`, false)
	assertError(t, rec, http.StatusUnauthorized, "Invalid password")

	rec = srv.do(t, http.MethodPost, "/api/auth", `{}`, false)
	assertError(t, rec, http.StatusBadRequest, "Password required")

	rec = srv.do(t, http.MethodPost, "/api/auth", `{"password":"`+testAdminPassword+`"}`, false)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d: %s", rec.Code, rec.Body.String())
	}
	var login auth.LoginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &login); err != nil || login.Token == "" {
		t.Fatalf("login body = %s", rec.Body.String())
	}

	// The issued token opens admin routes.
	srv.token = login.Token
	if rec := srv.do(t, http.MethodGet, "/api/inquiry", "", true); rec.Code != http.StatusOK {
		t.Errorf("GET /api/inquiry with issued token = %d", rec.Code)
	}
}

func TestEveryConfigKindIsRouted(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, nil)
	for _, kind := range content.Kinds() {
		defaults, _ := content.Defaults(kind)
		rec := srv.do(t, http.MethodGet, "/api/"+string(kind), "", false)
		if rec.Code != http.StatusOK || !bytes.Equal(rec.Body.Bytes(), defaults) {
			t.Errorf("GET /api/%s = %d, want defaults", kind, rec.Code)
		}
	}
}

func TestConfigEndpoints(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		path string
		kind content.Kind
	}{
		{"/api/packages-config", content.KindPackages},
		{"/api/pricing-config", content.KindPricing},
	} {
		t.Run(tc.path, func(t *testing.T) {
			t.Parallel()

			srv := newTestServer(t, nil)
			defaults, _ := content.Defaults(tc.kind)

			rec := srv.do(t, http.MethodGet, tc.path, "", false)
			if rec.Code != http.StatusOK || !bytes.Equal(rec.Body.Bytes(), defaults) {
				t.Fatalf("initial GET = %d, want defaults", rec.Code)
			}

			rec = srv.do(t, http.MethodPost, tc.path, `{"anchorCPM": 55}`, true)
			if rec.Code != http.StatusOK || rec.Body.String() != `{"ok":true}` {
				t.Fatalf("POST = %d %s", rec.Code, rec.Body.String())
			}

			rec = srv.do(t, http.MethodGet, tc.path, "", false)
			if rec.Body.String() != `{"anchorCPM":55}` {
				t.Errorf("GET after POST = %s", rec.Body.String())
			}

			rec = srv.do(t, http.MethodDelete, tc.path, "", true)
			if rec.Code != http.StatusOK {
				t.Fatalf("DELETE = %d %s", rec.Code, rec.Body.String())
			}
			var reset struct {
				OK       bool            `json:"ok"`
				Defaults json.RawMessage `json:"defaults"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &reset); err != nil {
				t.Fatal(err)
			}
			if !reset.OK || !jsonEqual(t, reset.Defaults, defaults) {
				t.Errorf("DELETE body = %s", rec.Body.String())
			}

			rec = srv.do(t, http.MethodGet, tc.path, "", false)
			if !bytes.Equal(rec.Body.Bytes(), defaults) {
				t.Error("GET after DELETE should serve defaults")
			}
		})
	}
}

func TestConfigPostRejectsInvalidJSON(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, nil)
	rec := srv.do(t, http.MethodPost, "/api/packages-config", `{"broken":`, true)
	assertError(t, rec, http.StatusBadRequest, "Invalid JSON body")
}

func TestInquiryEndpoints(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, nil)

	rec := srv.do(t, http.MethodPost, "/api/inquiry", `{"name":"No Email"}`, false)
	assertError(t, rec, http.StatusBadRequest, "Email required")

	rec = srv.do(t, http.MethodGet, "/api/inquiry", "", true)
	if rec.Code != http.StatusOK || rec.Body.String() != "[]" {
		t.Fatalf("empty list = %d %s, want []", rec.Code, rec.Body.String())
	}

	for _, body := range []string{
		`{"email":"first@example.com","tier":"growth"}`,
		`{"email":"second@example.com","takeover":"yes","company":"Acme"}`,
	} {
		rec = srv.do(t, http.MethodPost, "/api/inquiry", body, false)
		if rec.Code != http.StatusOK || rec.Body.String() != `{"ok":true}` {
			t.Fatalf("POST %s = %d %s", body, rec.Code, rec.Body.String())
		}
	}

	rec = srv.do(t, http.MethodGet, "/api/inquiry", "", true)
	var list []models.Inquiry
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatalf("list has %d inquiries, want 2", len(list))
	}
	if list[0].Email != "second@example.com" || !list[0].Takeover || list[0].Company != "Acme" {
		t.Errorf("newest inquiry = %+v", list[0])
	}
	if list[1].Tier != "growth" || list[1].Takeover {
		t.Errorf("oldest inquiry = %+v", list[1])
	}
}

func TestPublishAndSponsorData(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, nil)

	rec := srv.do(t, http.MethodPost, "/api/publish", `{"shareToken":"acme-q3","data":{"brand":"Acme","clicks":120}}`, true)
	if rec.Code != http.StatusOK || rec.Body.String() != `{"ok":true}` {
		t.Fatalf("publish = %d %s", rec.Code, rec.Body.String())
	}

	rec = srv.do(t, http.MethodGet, "/api/sponsor-data?token=acme-q3", "", false)
	if rec.Code != http.StatusOK || rec.Body.String() != `{"brand":"Acme","clicks":120}` {
		t.Errorf("sponsor-data = %d %s", rec.Code, rec.Body.String())
	}

	rec = srv.do(t, http.MethodGet, "/api/sponsor-data?token=unknown", "", false)
	assertError(t, rec, http.StatusNotFound, "Not found")

	rec = srv.do(t, http.MethodGet, "/api/sponsor-data", "", false)
	assertError(t, rec, http.StatusBadRequest, "Missing token")
}

func TestPublishValidation(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, nil)

	for _, body := range []string{
		`{"data":{"a":1}}`,
		`{"shareToken":"t"}`,
		`{"shareToken":"t","data":null}`,
		`{"shareToken":"t","data":0}`,
		`{"shareToken":"","data":{"a":1}}`,
	} {
		rec := srv.do(t, http.MethodPost, "/api/publish", body, true)
		assertError(t, rec, http.StatusBadRequest, "Missing shareToken or data")
	}
}

func TestPublishStoreFailure(t *testing.T) {
	t.Parallel()

	srv := newTestServerWithStore(t, nil, failingStore{})
	rec := srv.do(t, http.MethodPost, "/api/publish", `{"shareToken":"t","data":{"a":1}}`, true)
	assertError(t, rec, http.StatusInternalServerError, "KV error: "+errStore.Error())

	rec = srv.do(t, http.MethodGet, "/api/sponsor-data?token=t", "", false)
	assertError(t, rec, http.StatusInternalServerError, "KV error: "+errStore.Error())
}

func TestConfigGetFallsBackWhenStoreFails(t *testing.T) {
	t.Parallel()

	srv := newTestServerWithStore(t, nil, failingStore{})
	defaults, _ := content.Defaults(content.KindPricing)

	rec := srv.do(t, http.MethodGet, "/api/pricing-config", "", false)
	if rec.Code != http.StatusOK || !bytes.Equal(rec.Body.Bytes(), defaults) {
		t.Errorf("GET on failing store = %d, want 200 with defaults", rec.Code)
	}

	rec = srv.do(t, http.MethodPost, "/api/pricing-config", `{}`, true)
	assertError(t, rec, http.StatusInternalServerError, errStore.Error())

	rec = srv.do(t, http.MethodGet, "/api/inquiry", "", true)
	assertError(t, rec, http.StatusInternalServerError, errStore.Error())
}

func jsonEqual(t *testing.T, a, b []byte) bool {
	t.Helper()
	var x, y any
	if err := json.Unmarshal(a, &x); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(b, &y); err != nil {
		t.Fatal(err)
	}
	ax, _ := json.Marshal(x)
	by, _ := json.Marshal(y)
	return bytes.Equal(ax, by)
}

var errStore = errors.New("store unavailable")

// failingStore fails every operation.
type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, error)            { return nil, errStore }
func (failingStore) Set(context.Context, string, []byte) error              { return errStore }
func (failingStore) Delete(context.Context, string) error                   { return errStore }
func (failingStore) Update(context.Context, string, store.UpdateFunc) error { return errStore }
func (failingStore) Close() error                                           { return nil }
