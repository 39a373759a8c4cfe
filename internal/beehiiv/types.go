// Sponsordesk - Newsletter Sponsorship Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sponsordesk

package beehiiv

import (
	"net/url"
	"strconv"

	"github.com/goccy/go-json"
)

// Credentials identify the API key and publication for a call. The public
// stats endpoints use server configuration; the admin sync endpoints pass
// caller-supplied values.
type Credentials struct {
	APIKey string
	PubID  string
}

// Validate reports the first missing credential.
func (c Credentials) Validate() error {
	if c.APIKey == "" {
		return ErrAPIKeyNotSet
	}
	if c.PubID == "" {
		return ErrPubIDNotSet
	}
	return nil
}

// PostsQuery selects confirmed newsletter posts, newest first.
type PostsQuery struct {
	Limit int
	// Page is 1-based; zero omits the parameter.
	Page int
	// Platform filters by delivery platform; "all" includes web and email.
	Platform    string
	ExpandStats bool
}

// LatestPosts is the query used by the public stats endpoints.
func LatestPosts(limit int) PostsQuery {
	return PostsQuery{Limit: limit, ExpandStats: true}
}

// SyncPage is the query used by the admin sync endpoints.
func SyncPage(page, pageSize int) PostsQuery {
	return PostsQuery{Limit: pageSize, Page: page, Platform: "all", ExpandStats: true}
}

func (q PostsQuery) values() url.Values {
	v := url.Values{}
	if q.ExpandStats {
		v.Set("expand[]", "stats")
	}
	v.Set("status", "confirmed")
	if q.Platform != "" {
		v.Set("platform", q.Platform)
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	v.Set("order_by", "publish_date")
	v.Set("direction", "desc")
	v.Set("content_tags[]", "newsletter")
	return v
}

// PostsPage is one page of the posts listing. Posts are kept raw so that
// sync responses pass them through byte for byte.
type PostsPage struct {
	Data         []json.RawMessage `json:"data"`
	TotalResults json.RawMessage   `json:"total_results,omitempty"`
	TotalPages   json.RawMessage   `json:"total_pages,omitempty"`
}

// PageCount returns total_pages as an int, or 0 when it is absent or not a
// number.
func (p *PostsPage) PageCount() int {
	var n float64
	if len(p.TotalPages) == 0 || json.Unmarshal(p.TotalPages, &n) != nil {
		return 0
	}
	return int(n)
}

// PostEnvelope wraps a single post. Data is nil when upstream omits it.
type PostEnvelope struct {
	Data json.RawMessage `json:"data"`
}

// Document is a decoded JSON object whose schema is not fixed. Fields are
// read through Lookup so that callers can fall back across alternative
// paths as the upstream schema drifts.
type Document map[string]any

// Lookup walks path through nested objects.
func (d Document) Lookup(path ...string) (any, bool) {
	var cur any = map[string]any(d)
	for _, key := range path {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		if cur, ok = obj[key]; !ok {
			return nil, false
		}
	}
	return cur, true
}

// Number returns the value at path if it is a JSON number.
func (d Document) Number(path ...string) (float64, bool) {
	v, ok := d.Lookup(path...)
	if !ok {
		return 0, false
	}
	n, ok := v.(float64)
	return n, ok
}

// Objects returns the value at path as a list of objects. Non-object
// elements are skipped.
func (d Document) Objects(path ...string) []Document {
	v, ok := d.Lookup(path...)
	if !ok {
		return nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]Document, 0, len(list))
	for _, item := range list {
		if obj, ok := item.(map[string]any); ok {
			out = append(out, Document(obj))
		}
	}
	return out
}

// DecodeDocument parses a raw JSON object. A value that is not an object
// yields an empty Document.
func DecodeDocument(raw json.RawMessage) Document {
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil || doc == nil {
		return Document{}
	}
	return Document(doc)
}
