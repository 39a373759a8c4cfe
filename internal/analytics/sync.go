// Sponsordesk - Newsletter Sponsorship Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sponsordesk

package analytics

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/tomtom215/sponsordesk/internal/beehiiv"
	"github.com/tomtom215/sponsordesk/internal/logging"
	"github.com/tomtom215/sponsordesk/internal/models"
)

// PageLimit clamps a requested page cap to [1, max]. A nil request means
// DefaultSyncPages.
func PageLimit(requested *int, max int) int {
	limit := DefaultSyncPages
	if requested != nil {
		limit = *requested
	}
	if limit < 1 {
		limit = 1
	}
	if limit > max {
		limit = max
	}
	return limit
}

// FullSync pages through the caller's newsletter posts, newest first, until
// the upstream page count or the page cap is reached.
//
// If a page fails after earlier pages succeeded, for any reason, the posts
// gathered so far are returned with a warning instead of an error. A failure
// on the first page is returned as is, *beehiiv.APIError when upstream
// answered with a status.
func (a *Aggregator) FullSync(ctx context.Context, creds beehiiv.Credentials, maxPages *int) (*models.FullSyncResult, error) {
	pageLimit := PageLimit(maxPages, a.settings.MaxSyncPages)
	pageSize := a.settings.PageSize

	posts := make([]json.RawMessage, 0, pageLimit*pageSize)
	totalPages := 1
	page := 1

	for page <= totalPages && page <= pageLimit {
		resp, err := a.client.ListPosts(ctx, creds, beehiiv.SyncPage(page, pageSize))
		if err != nil {
			if len(posts) == 0 {
				return nil, err
			}
			logging.Ctx(ctx).Warn().Err(err).Int("page", page).Int("fetched", len(posts)).
				Msg("Full sync stopped early; returning partial results")
			return &models.FullSyncResult{
				Posts:          posts,
				TotalFetched:   len(posts),
				TotalAvailable: totalPages * pageSize,
				Warning:        fmt.Sprintf("Stopped at page %d due to API error: %s", page-1, pageErrorDetail(err)),
			}, nil
		}

		posts = append(posts, resp.Data...)
		totalPages = resp.PageCount()
		if totalPages == 0 {
			totalPages = 1
		}
		page++
	}

	scanned := page - 1
	return &models.FullSyncResult{
		Posts:          posts,
		TotalFetched:   len(posts),
		TotalAvailable: totalPages * pageSize,
		PagesScanned:   &scanned,
		TotalPages:     &totalPages,
	}, nil
}

// QuickSync fetches the latest page and refreshes known posts that are not
// on it, one at a time. A known post that cannot be fetched is skipped.
func (a *Aggregator) QuickSync(ctx context.Context, creds beehiiv.Credentials, knownIDs []string) (*models.QuickSyncResult, error) {
	latest, err := a.client.ListPosts(ctx, creds, beehiiv.SyncPage(1, a.settings.PageSize))
	if err != nil {
		return nil, err
	}

	onLatest := make(map[string]struct{}, len(latest.Data))
	for _, raw := range latest.Data {
		if id, ok := beehiiv.DecodeDocument(raw)["id"].(string); ok {
			onLatest[id] = struct{}{}
		}
	}

	log := logging.Ctx(ctx)
	refreshed := make([]json.RawMessage, 0, len(knownIDs))
	for _, id := range knownIDs {
		if _, ok := onLatest[id]; ok {
			continue
		}

		post, err := a.client.GetPost(ctx, creds, id)
		if err != nil {
			log.Debug().Err(err).Str("post_id", id).Msg("Skipping known post that failed to refresh")
			continue
		}
		if !rawTruthy(post.Data) {
			log.Debug().Str("post_id", id).Msg("Skipping known post with no data")
			continue
		}
		refreshed = append(refreshed, post.Data)
	}

	posts := make([]json.RawMessage, 0, len(latest.Data)+len(refreshed))
	posts = append(posts, latest.Data...)
	posts = append(posts, refreshed...)

	return &models.QuickSyncResult{
		Posts:             posts,
		TotalFetched:      len(posts),
		NewChecked:        len(latest.Data),
		ExistingRefreshed: len(refreshed),
	}, nil
}

// pageErrorDetail is the first 100 characters of the upstream body when
// Beehiiv answered with a status, otherwise of the error itself.
func pageErrorDetail(err error) string {
	if apiErr, ok := beehiiv.AsAPIError(err); ok {
		return apiErr.Truncate(100)
	}
	return beehiiv.TruncateChars(err.Error(), 100)
}
