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

var jsonNull = json.RawMessage("null")

// OpensSummary returns the average opens per send over recent newsletters.
//
// The newest OpensDiscardRecent posts are dropped because their open counts
// are still accumulating. The whole result is cached for the cache TTL, and
// a fresh cached value is served even if credentials have since been
// removed. Errors are not cached.
func (a *Aggregator) OpensSummary(ctx context.Context) (*models.OpensSummary, error) {
	return a.opens.GetOrCompute(ctx, a.computeOpensSummary)
}

func (a *Aggregator) computeOpensSummary(ctx context.Context) (*models.OpensSummary, error) {
	creds := a.settings.Creds
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	page, err := a.client.ListPosts(ctx, creds, beehiiv.LatestPosts(a.settings.OpensPostLimit))
	if err != nil {
		return nil, fmt.Errorf("fetch posts: %w", err)
	}

	log := logging.Ctx(ctx)
	log.Debug().Int("fetched", len(page.Data)).Msg("Fetched newsletter posts for opens summary")

	qualifying := page.Data
	if discard := a.settings.OpensDiscardRecent; discard >= len(qualifying) {
		qualifying = nil
	} else {
		qualifying = qualifying[discard:]
	}

	posts := make([]models.OpensPost, 0, len(qualifying))
	total := 0
	for _, raw := range qualifying {
		p := opensPost(beehiiv.DecodeDocument(raw))
		total += p.TotalOpens
		posts = append(posts, p)
	}

	avg := 0
	if len(posts) > 0 {
		avg = round(float64(total) / float64(len(posts)))
	}

	if len(posts) > 0 && avg == 0 {
		log.Warn().Int("posts", len(posts)).
			Msg("All posts returned 0 opens; the Beehiiv stats field path may have changed")
	}

	return &models.OpensSummary{
		Posts:           posts,
		AvgOpensPerSend: avg,
		PostsAnalyzed:   len(posts),
		FetchedAt:       a.timestamp(),
	}, nil
}

// opensPost condenses a post to its title, publish date and total opens.
func opensPost(post beehiiv.Document) models.OpensPost {
	title := "Untitled"
	for _, key := range []string{"title", "subtitle"} {
		if s, ok := post[key].(string); ok && s != "" {
			title = s
			break
		}
	}

	publishDate := jsonNull
	for _, key := range []string{"publish_date", "created_at"} {
		if truthy(post.Lookup(key)) {
			publishDate = rawValue(post, key)
			break
		}
	}

	return models.OpensPost{
		Title:       title,
		PublishDate: publishDate,
		TotalOpens:  round(numberOrZero(post, "stats", "email", "opens")),
	}
}
