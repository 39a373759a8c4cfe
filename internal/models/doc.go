// Sponsordesk - Newsletter Sponsorship Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sponsordesk

/*
Package models defines the JSON wire types shared by the API handlers and the
domain packages.

Model Categories:

 1. Responses: ErrorResponse, OKResponse, ResetResponse, HealthResponse
 2. Content: Inquiry
 3. Analytics: StatsSummary, OpensSummary, OpensPost
 4. Sync: FullSyncResult, QuickSyncResult, DebugSummary

Field names follow the public API exactly, which is why some types use
camelCase tags and the debug types use snake_case. Upstream post objects are
carried as json.RawMessage and passed through untouched.
*/
package models
