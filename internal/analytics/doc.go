// Sponsordesk - Newsletter Sponsorship Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sponsordesk

/*
Package analytics computes the audience numbers shown on the sponsorship site
and backs the admin sync tools.

# Public Summaries

Stats and OpensSummary use the server-configured publication:

  - Stats: active subscribers, dormant and engaged counts, and average
    opens, clicks and CTR over the latest posts
  - OpensSummary: average opens per send, skipping the newest posts whose
    numbers are still moving

# Fallback Chains

Beehiiv's response shapes vary between plans and API revisions, so several
values are read through ordered fallbacks that stop at the first defined
result:

  - active subscribers: three publication stats fields, then the
    total_results of an active subscriptions listing
  - dormant count: a custom_fields[dormant] filter, a custom_field_dormant
    filter, then a segment whose name contains "dormant"

An exhausted dormant chain reports null rather than zero.

# Caching

The opens summary and the dormant count are cached in-process for 24 hours
by default. Failures are never cached.

# Admin Sync

FullSync, QuickSync and DebugPosts take caller-supplied credentials. Post
objects are passed through as raw JSON.
*/
package analytics
