// Sponsordesk - Newsletter Sponsorship Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sponsordesk

package beehiiv

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/sponsordesk/internal/config"
	"github.com/tomtom215/sponsordesk/internal/metrics"
)

// DefaultBaseURL is the Beehiiv v2 REST API root.
const DefaultBaseURL = "https://api.beehiiv.com/v2"

// maxErrorBodySize limits how much of an error response is read.
const maxErrorBodySize = 64 * 1024

// readBodyForError reads at most maxErrorBodySize bytes of an error body.
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	return body
}

// Client is the subset of the Beehiiv v2 API used by Sponsordesk.
//
// Every method takes the credentials to use, so the same client serves both
// server-configured and caller-supplied publications. A non-2xx response is
// returned as *APIError.
type Client interface {
	// GetPublication fetches the publication with expand[]=stats.
	GetPublication(ctx context.Context, creds Credentials) (Document, error)
	ListPosts(ctx context.Context, creds Credentials, q PostsQuery) (*PostsPage, error)
	// GetPost fetches one post with expand[]=stats.
	GetPost(ctx context.Context, creds Credentials, postID string) (*PostEnvelope, error)
	// ListSubscriptions queries the subscriptions listing with arbitrary
	// filter parameters; callers usually read total_results.
	ListSubscriptions(ctx context.Context, creds Credentials, params url.Values) (Document, error)
	ListSegments(ctx context.Context, creds Credentials) (Document, error)
}

// HTTPClient talks to the Beehiiv REST API directly.
//
// Requests pass through a token-bucket limiter shared by all callers so that
// bursts of admin syncs stay under the upstream rate limit.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewHTTPClient builds a client from configuration.
func NewHTTPClient(cfg *config.BeehiivConfig) *HTTPClient {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	return &HTTPClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(limit, burst),
	}
}

// GetPublication implements Client.
func (c *HTTPClient) GetPublication(ctx context.Context, creds Credentials) (Document, error) {
	var doc Document
	err := c.getJSON(ctx, creds, "publication", "", url.Values{"expand[]": {"stats"}}, &doc)
	return doc, err
}

// ListPosts implements Client.
func (c *HTTPClient) ListPosts(ctx context.Context, creds Credentials, q PostsQuery) (*PostsPage, error) {
	var page PostsPage
	if err := c.getJSON(ctx, creds, "posts", "/posts", q.values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetPost implements Client.
func (c *HTTPClient) GetPost(ctx context.Context, creds Credentials, postID string) (*PostEnvelope, error) {
	var post PostEnvelope
	path := "/posts/" + url.PathEscape(postID)
	if err := c.getJSON(ctx, creds, "post", path, url.Values{"expand[]": {"stats"}}, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// ListSubscriptions implements Client.
func (c *HTTPClient) ListSubscriptions(ctx context.Context, creds Credentials, params url.Values) (Document, error) {
	var doc Document
	err := c.getJSON(ctx, creds, "subscriptions", "/subscriptions", params, &doc)
	return doc, err
}

// ListSegments implements Client.
func (c *HTTPClient) ListSegments(ctx context.Context, creds Credentials) (Document, error) {
	var doc Document
	err := c.getJSON(ctx, creds, "segments", "/segments", nil, &doc)
	return doc, err
}

// getJSON performs an authenticated GET under /publications/{pubId} and
// decodes the body into out. endpoint labels metrics.
func (c *HTTPClient) getJSON(ctx context.Context, creds Credentials, endpoint, path string, query url.Values, out interface{}) error {
	if err := creds.Validate(); err != nil {
		return err
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("beehiiv rate limiter: %w", err)
	}

	reqURL := c.baseURL + "/publications/" + url.PathEscape(creds.PubID) + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+creds.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordBeehiivRequest(endpoint, "transport_error", time.Since(start))
		return fmt.Errorf("beehiiv %s request failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.RecordBeehiivRequest(endpoint, "http_error", time.Since(start))
		return &APIError{StatusCode: resp.StatusCode, Body: string(readBodyForError(resp.Body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		metrics.RecordBeehiivRequest(endpoint, "decode_error", time.Since(start))
		return fmt.Errorf("failed to decode beehiiv %s response: %w", endpoint, err)
	}

	metrics.RecordBeehiivRequest(endpoint, "ok", time.Since(start))
	return nil
}
