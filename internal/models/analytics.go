// Sponsordesk - Newsletter Sponsorship Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sponsordesk

package models

import "github.com/goccy/go-json"

// StatsSummary is the public audience summary served by GET /api/stats.
//
// DormantCount and EngagedMoms are null when no dormant-count strategy
// succeeded; unknown is never reported as zero.
type StatsSummary struct {
	ActiveSubscribers int     `json:"activeSubscribers"`
	DormantCount      *int    `json:"dormantCount"`
	EngagedMoms       *int    `json:"engagedMoms"`
	AvgOpensPerSend   int     `json:"avgOpensPerSend"`
	AvgClicksPerSend  int     `json:"avgClicksPerSend"`
	AvgCtr            float64 `json:"avgCtr"`
	PostsAnalyzed     int     `json:"postsAnalyzed"`
	FetchedAt         string  `json:"fetchedAt"`
}

// OpensSummary is the open-rate summary served by GET /api/newsletter-opens.
type OpensSummary struct {
	Posts           []OpensPost `json:"posts"`
	AvgOpensPerSend int         `json:"avgOpensPerSend"`
	PostsAnalyzed   int         `json:"postsAnalyzed"`
	FetchedAt       string      `json:"fetchedAt"`
}

// OpensPost is one post that counted towards the opens average.
// PublishDate is passed through from upstream and is null when absent.
type OpensPost struct {
	Title       string          `json:"title"`
	PublishDate json.RawMessage `json:"publish_date"`
	TotalOpens  int             `json:"total_opens"`
}
