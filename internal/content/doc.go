// Sponsordesk - Newsletter Sponsorship Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sponsordesk

/*
Package content stores the site's editable documents in the key-value store.

Three kinds of content live here:

  - ConfigDocs: the packages page and pricing assumptions documents. Reads
    fall back to built-in defaults, embedded from defaults/*.json, whenever
    nothing usable is stored.
  - Inquiries: sponsorship leads from the public contact form, kept as a
    single JSON array under the "inquiries" key, newest first.
  - Snapshots: sponsor dashboards published by an admin and fetched by share
    token under "sponsor:<token>".

All documents are opaque JSON. Nothing in this package interprets the
packages, pricing or snapshot payloads.
*/
package content
