// Sponsordesk - Newsletter Sponsorship Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sponsordesk

package analytics

import (
	"context"

	"github.com/tomtom215/sponsordesk/internal/beehiiv"
	"github.com/tomtom215/sponsordesk/internal/models"
)

// DebugPosts summarizes the latest page of posts with the stats fields the
// aggregator reads, for checking what Beehiiv is actually returning.
func (a *Aggregator) DebugPosts(ctx context.Context, creds beehiiv.Credentials) (*models.DebugSummary, error) {
	page, err := a.client.ListPosts(ctx, creds, beehiiv.SyncPage(1, a.settings.PageSize))
	if err != nil {
		return nil, err
	}

	posts := make([]models.DebugPost, 0, len(page.Data))
	for _, raw := range page.Data {
		posts = append(posts, debugPost(beehiiv.DecodeDocument(raw)))
	}

	return &models.DebugSummary{
		TotalResults: page.TotalResults,
		TotalPages:   page.TotalPages,
		Posts:        posts,
	}, nil
}

func debugPost(post beehiiv.Document) models.DebugPost {
	clicks := post.Objects("stats", "clicks")
	urls := make([]models.DebugClickURL, 0, len(clicks))
	for _, c := range clicks {
		urls = append(urls, models.DebugClickURL{
			URL:         rawValue(c, "url"),
			BaseURL:     rawValue(c, "base_url"),
			TotalClicks: rawValue(c, "total_clicks"),
		})
	}

	return models.DebugPost{
		ID:          rawValue(post, "id"),
		Title:       rawValue(post, "title"),
		Status:      rawValue(post, "status"),
		Platform:    rawValue(post, "platform"),
		PublishDate: rawValue(post, "publish_date"),
		HasStats:    truthy(post.Lookup("stats")),
		EmailOpens:  numberOrZero(post, "stats", "email", "opens"),
		EmailClicks: numberOrZero(post, "stats", "email", "clicks"),
		ClickURLs:   urls,
	}
}
