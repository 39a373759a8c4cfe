// Sponsordesk - Newsletter Sponsorship Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sponsordesk

package analytics

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/sponsordesk/internal/beehiiv"
)

var errTransport = errors.New("connection reset by peer")

// fakeClient is an in-memory beehiiv.Client. Unset hooks return errTransport.
type fakeClient struct {
	mu    sync.Mutex
	calls map[string]int

	publication   func() (beehiiv.Document, error)
	listPosts     func(q beehiiv.PostsQuery) (*beehiiv.PostsPage, error)
	getPost       func(id string) (*beehiiv.PostEnvelope, error)
	subscriptions func(params url.Values) (beehiiv.Document, error)
	segments      func() (beehiiv.Document, error)
}

func (f *fakeClient) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[name]++
}

func (f *fakeClient) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeClient) GetPublication(_ context.Context, _ beehiiv.Credentials) (beehiiv.Document, error) {
	f.record("publication")
	if f.publication == nil {
		return nil, errTransport
	}
	return f.publication()
}

func (f *fakeClient) ListPosts(_ context.Context, _ beehiiv.Credentials, q beehiiv.PostsQuery) (*beehiiv.PostsPage, error) {
	f.record("posts")
	if f.listPosts == nil {
		return nil, errTransport
	}
	return f.listPosts(q)
}

func (f *fakeClient) GetPost(_ context.Context, _ beehiiv.Credentials, id string) (*beehiiv.PostEnvelope, error) {
	f.record("post:" + id)
	if f.getPost == nil {
		return nil, errTransport
	}
	return f.getPost(id)
}

func (f *fakeClient) ListSubscriptions(_ context.Context, _ beehiiv.Credentials, params url.Values) (beehiiv.Document, error) {
	switch {
	case params.Has("custom_fields[dormant]"):
		f.record("subscriptions:A")
	case params.Has("custom_field_dormant"):
		f.record("subscriptions:B")
	default:
		f.record("subscriptions:active")
	}
	if f.subscriptions == nil {
		return nil, errTransport
	}
	return f.subscriptions(params)
}

func (f *fakeClient) ListSegments(_ context.Context, _ beehiiv.Credentials) (beehiiv.Document, error) {
	f.record("segments")
	if f.segments == nil {
		return nil, errTransport
	}
	return f.segments()
}

func doc(s string) beehiiv.Document {
	return beehiiv.DecodeDocument(json.RawMessage(s))
}

func page(totalPages int, posts ...string) *beehiiv.PostsPage {
	p := &beehiiv.PostsPage{TotalPages: json.RawMessage(fmt.Sprint(totalPages))}
	for _, post := range posts {
		p.Data = append(p.Data, json.RawMessage(post))
	}
	return p
}

var testCreds = beehiiv.Credentials{APIKey: "key", PubID: "pub"}

// testClock is a manually advanced clock.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, 5, 4, 10, 0, 0, 123e6, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestAggregator(client *fakeClient) (*Aggregator, *testClock) {
	clock := newTestClock()
	agg := NewAggregator(client, Settings{
		Creds:              testCreds,
		OpensDiscardRecent: 2,
	}).WithClock(clock.Now)
	return agg, clock
}
