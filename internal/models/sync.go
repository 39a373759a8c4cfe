// Sponsordesk - Newsletter Sponsorship Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sponsordesk

package models

import "github.com/goccy/go-json"

// SyncCredentials are the caller-supplied Beehiiv credentials carried by the
// admin sync endpoints.
type SyncCredentials struct {
	APIKey string `json:"apiKey" validate:"required"`
	PubID  string `json:"pubId" validate:"required"`
}

// FullSyncRequest is the body of POST /api/sync. A nil MaxPages means the
// default page cap.
type FullSyncRequest struct {
	SyncCredentials
	MaxPages *int `json:"maxPages"`
}

// QuickSyncRequest is the body of POST /api/quick-sync.
type QuickSyncRequest struct {
	SyncCredentials
	KnownPostIDs []string `json:"knownPostIds"`
}

// FullSyncResult is the paginated sync result.
//
// A partial result carries Warning and omits PagesScanned and TotalPages.
type FullSyncResult struct {
	Posts          []json.RawMessage `json:"posts"`
	TotalFetched   int               `json:"totalFetched"`
	TotalAvailable int               `json:"totalAvailable"`
	PagesScanned   *int              `json:"pagesScanned,omitempty"`
	TotalPages     *int              `json:"totalPages,omitempty"`
	Warning        string            `json:"warning,omitempty"`
}

// QuickSyncResult is the latest page plus individually refreshed known posts.
type QuickSyncResult struct {
	Posts             []json.RawMessage `json:"posts"`
	TotalFetched      int               `json:"totalFetched"`
	NewChecked        int               `json:"newChecked"`
	ExistingRefreshed int               `json:"existingRefreshed"`
}

// DebugSummary describes the latest page of posts for troubleshooting stats.
type DebugSummary struct {
	TotalResults json.RawMessage `json:"total_results,omitempty"`
	TotalPages   json.RawMessage `json:"total_pages,omitempty"`
	Posts        []DebugPost     `json:"posts"`
}

// DebugPost is a condensed post. Pass-through fields are omitted when
// upstream does not send them.
type DebugPost struct {
	ID          json.RawMessage `json:"id,omitempty"`
	Title       json.RawMessage `json:"title,omitempty"`
	Status      json.RawMessage `json:"status,omitempty"`
	Platform    json.RawMessage `json:"platform,omitempty"`
	PublishDate json.RawMessage `json:"publish_date,omitempty"`
	HasStats    bool            `json:"has_stats"`
	EmailOpens  float64         `json:"email_opens"`
	EmailClicks float64         `json:"email_clicks"`
	ClickURLs   []DebugClickURL `json:"click_urls"`
}

// DebugClickURL is one tracked link within a post.
type DebugClickURL struct {
	URL         json.RawMessage `json:"url,omitempty"`
	BaseURL     json.RawMessage `json:"base_url,omitempty"`
	TotalClicks json.RawMessage `json:"total_clicks,omitempty"`
}
