// Sponsordesk - Newsletter Sponsorship Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sponsordesk

/*
Package cache provides the process-wide TTL entries used by the analytics
aggregator.

Each Entry holds one value together with the time it was stored and its TTL.
The aggregator keeps two entries, the opens summary and the dormant subscriber
count, both with a 24 hour TTL by default.

# Usage

	entry := cache.NewEntry[*models.OpensSummary]("opens_summary", 24*time.Hour)

	summary, err := entry.GetOrCompute(ctx, func(ctx context.Context) (*models.OpensSummary, error) {
	    return fetchOpensSummary(ctx)
	})

A failed compute leaves the previous state untouched and is not cached, so the
next request retries the upstream call.

# Metrics

Lookups are counted in cache_hits_total and cache_misses_total, labelled with
the entry name.
*/
package cache
