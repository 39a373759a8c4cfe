// Sponsordesk - Newsletter Sponsorship Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sponsordesk

package analytics

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/goccy/go-json"

	"github.com/tomtom215/sponsordesk/internal/beehiiv"
	"github.com/tomtom215/sponsordesk/internal/logging"
	"github.com/tomtom215/sponsordesk/internal/models"
)

// Stats builds the public audience summary from the server-configured
// publication.
//
// The publication and the latest posts are fetched concurrently. Averages
// count only posts that carry a stats object. The dormant count is nullable;
// when it is unknown, engagedMoms is null too.
func (a *Aggregator) Stats(ctx context.Context) (*models.StatsSummary, error) {
	creds := a.settings.Creds
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	var (
		wg               sync.WaitGroup
		pub              beehiiv.Document
		posts            *beehiiv.PostsPage
		pubErr, postsErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		pub, pubErr = a.client.GetPublication(ctx, creds)
	}()
	go func() {
		defer wg.Done()
		posts, postsErr = a.client.ListPosts(ctx, creds, beehiiv.LatestPosts(a.settings.StatsPostLimit))
	}()
	wg.Wait()

	if pubErr != nil {
		return nil, fmt.Errorf("fetch publication: %w", pubErr)
	}
	if postsErr != nil {
		return nil, fmt.Errorf("fetch posts: %w", postsErr)
	}

	avgOpens, avgClicks, analyzed := averagePostStats(posts.Data)

	avgCtr := 0.0
	if avgOpens > 0 {
		avgCtr = round2(float64(avgClicks) / float64(avgOpens) * 100)
	}

	active, _ := firstDefined(ctx,
		docPath(pub, "data", "stats", "active_subscriptions"),
		docPath(pub, "data", "stats", "active_subscribers"),
		docPath(pub, "data", "stats", "total_active_subscriptions"),
		a.activeSubscriptionCount(creds),
	)
	activeSubscribers := round(active)

	dormant := a.DormantCount(ctx)
	var engaged *int
	if dormant != nil {
		n := activeSubscribers - *dormant
		engaged = &n
	}

	logging.Ctx(ctx).Debug().
		Int("active_subscribers", activeSubscribers).
		Interface("dormant_count", dormant).
		Int("posts_analyzed", analyzed).
		Msg("Computed audience stats")

	return &models.StatsSummary{
		ActiveSubscribers: activeSubscribers,
		DormantCount:      dormant,
		EngagedMoms:       engaged,
		AvgOpensPerSend:   avgOpens,
		AvgClicksPerSend:  avgClicks,
		AvgCtr:            avgCtr,
		PostsAnalyzed:     analyzed,
		FetchedAt:         a.timestamp(),
	}, nil
}

// averagePostStats averages opens and clicks over posts that have stats.
func averagePostStats(posts []json.RawMessage) (avgOpens, avgClicks, counted int) {
	var totalOpens, totalClicks float64
	for _, raw := range posts {
		post := beehiiv.DecodeDocument(raw)
		if !truthy(post.Lookup("stats")) {
			continue
		}

		totalOpens += firstPositive(post,
			[]string{"stats", "email", "unique_opens"},
			[]string{"stats", "email", "opens"},
		)
		for _, click := range post.Objects("stats", "clicks") {
			totalClicks += numberOrZero(click, "total_clicks")
		}
		counted++
	}

	if counted == 0 {
		return 0, 0, 0
	}
	return round(totalOpens / float64(counted)), round(totalClicks / float64(counted)), counted
}

// activeSubscriptionCount is the last-resort accessor: the total_results of
// a one-item active subscriptions listing. It only runs when the publication
// stats define no active count.
func (a *Aggregator) activeSubscriptionCount(creds beehiiv.Credentials) numberAccessor {
	return func(ctx context.Context) (float64, bool) {
		doc, err := a.client.ListSubscriptions(ctx, creds, url.Values{
			"status": {"active"},
			"limit":  {"1"},
		})
		if err != nil {
			logging.Ctx(ctx).Debug().Err(err).Msg("Active subscription count lookup failed")
			return 0, false
		}
		return doc.Number("total_results")
	}
}
