// Sponsordesk - Newsletter Sponsorship Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sponsordesk

package analytics

import (
	"time"

	"github.com/tomtom215/sponsordesk/internal/beehiiv"
	"github.com/tomtom215/sponsordesk/internal/cache"
	"github.com/tomtom215/sponsordesk/internal/config"
	"github.com/tomtom215/sponsordesk/internal/models"
)

const (
	// DefaultSyncPages is the page cap when a full sync request names none.
	DefaultSyncPages = 5

	opensCacheName   = "opens_summary"
	dormantCacheName = "dormant_count"
)

// Settings tunes the aggregator. Zero values fall back to the defaults in
// config.
type Settings struct {
	// Creds are the server-configured credentials used by the public stats
	// and opens endpoints.
	Creds beehiiv.Credentials

	StatsPostLimit     int
	OpensPostLimit     int
	OpensDiscardRecent int
	MaxSyncPages       int
	PageSize           int
	CacheTTL           time.Duration
}

// SettingsFromConfig maps the beehiiv config section to Settings.
func SettingsFromConfig(cfg *config.BeehiivConfig) Settings {
	return Settings{
		Creds:              beehiiv.Credentials{APIKey: cfg.APIKey, PubID: cfg.PubID},
		StatsPostLimit:     cfg.StatsPostLimit,
		OpensPostLimit:     cfg.OpensPostLimit,
		OpensDiscardRecent: cfg.OpensDiscardRecent,
		MaxSyncPages:       cfg.MaxSyncPages,
		PageSize:           cfg.PageSize,
		CacheTTL:           cfg.CacheTTL,
	}
}

func (s Settings) withDefaults() Settings {
	if s.StatsPostLimit <= 0 {
		s.StatsPostLimit = 20
	}
	if s.OpensPostLimit <= 0 {
		s.OpensPostLimit = 8
	}
	if s.OpensDiscardRecent < 0 {
		s.OpensDiscardRecent = 0
	}
	if s.MaxSyncPages <= 0 {
		s.MaxSyncPages = 50
	}
	if s.PageSize <= 0 {
		s.PageSize = 10
	}
	if s.CacheTTL <= 0 {
		s.CacheTTL = 24 * time.Hour
	}
	return s
}

// Aggregator turns Beehiiv API responses into the site's audience numbers.
//
// It holds the two process-wide caches: the opens summary and the dormant
// subscriber count. Each instance of the server has its own copy, so cached
// values are per-instance and best effort.
type Aggregator struct {
	client   beehiiv.Client
	settings Settings
	now      func() time.Time

	opens   *cache.Entry[*models.OpensSummary]
	dormant *cache.Entry[*int]
}

// NewAggregator creates an aggregator over client.
//
//	agg := analytics.NewAggregator(beehiiv.NewClient(&cfg.Beehiiv), analytics.SettingsFromConfig(&cfg.Beehiiv))
//	summary, err := agg.Stats(ctx)
func NewAggregator(client beehiiv.Client, settings Settings) *Aggregator {
	settings = settings.withDefaults()
	return &Aggregator{
		client:   client,
		settings: settings,
		now:      time.Now,
		opens:    cache.NewEntry[*models.OpensSummary](opensCacheName, settings.CacheTTL),
		dormant:  cache.NewEntry[*int](dormantCacheName, settings.CacheTTL),
	}
}

// WithClock replaces the time source for timestamps and both caches.
func (a *Aggregator) WithClock(now func() time.Time) *Aggregator {
	a.now = now
	a.opens.WithClock(now)
	a.dormant.WithClock(now)
	return a
}

// Settings returns the effective settings.
func (a *Aggregator) Settings() Settings {
	return a.settings
}

func (a *Aggregator) timestamp() string {
	return a.now().UTC().Format("2006-01-02T15:04:05.000Z")
}
