// Sponsordesk - Newsletter Sponsorship Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sponsordesk

package analytics

import (
	"context"
	"net/url"
	"strings"

	"github.com/tomtom215/sponsordesk/internal/beehiiv"
	"github.com/tomtom215/sponsordesk/internal/logging"
	"github.com/tomtom215/sponsordesk/internal/metrics"
)

// dormantStrategy is one way of asking Beehiiv how many active subscribers
// are dormant. found is false when the response does not carry a count.
type dormantStrategy struct {
	name   string
	lookup func(ctx context.Context, creds beehiiv.Credentials) (count int, found bool, err error)
}

// dormantStrategies returns the lookups in the order they are tried.
func (a *Aggregator) dormantStrategies() []dormantStrategy {
	return []dormantStrategy{
		{name: "custom_fields", lookup: a.subscriptionFilterCount("custom_fields[dormant]")},
		{name: "custom_field_param", lookup: a.subscriptionFilterCount("custom_field_dormant")},
		{name: "segment", lookup: a.dormantSegmentCount},
	}
}

// DormantCount returns the number of dormant subscribers, or nil when no
// strategy produced one. A found count is cached for the cache TTL; an
// unknown result is not cached, so the next call retries.
func (a *Aggregator) DormantCount(ctx context.Context) *int {
	if cached, ok := a.dormant.Get(); ok {
		return cached
	}

	creds := a.settings.Creds
	log := logging.Ctx(ctx)

	for _, strategy := range a.dormantStrategies() {
		count, found, err := strategy.lookup(ctx, creds)
		switch {
		case err != nil:
			metrics.DormantStrategyTotal.WithLabelValues(strategy.name, "error").Inc()
			log.Debug().Err(err).Str("strategy", strategy.name).Msg("Dormant count strategy failed")
			continue
		case !found:
			metrics.DormantStrategyTotal.WithLabelValues(strategy.name, "miss").Inc()
			log.Debug().Str("strategy", strategy.name).Msg("Dormant count strategy returned no count")
			continue
		}

		metrics.DormantStrategyTotal.WithLabelValues(strategy.name, "hit").Inc()
		log.Debug().Str("strategy", strategy.name).Int("dormant_count", count).Msg("Dormant count resolved")
		a.dormant.Set(&count)
		return &count
	}

	log.Warn().Msg("All dormant count strategies failed; dormant count is unknown")
	return nil
}

// subscriptionFilterCount filters active subscriptions by a dormant custom
// field passed as param and reads total_results.
func (a *Aggregator) subscriptionFilterCount(param string) func(context.Context, beehiiv.Credentials) (int, bool, error) {
	return func(ctx context.Context, creds beehiiv.Credentials) (int, bool, error) {
		doc, err := a.client.ListSubscriptions(ctx, creds, url.Values{
			"status": {"active"},
			param:    {"true"},
			"limit":  {"1"},
		})
		if err != nil {
			return 0, false, err
		}
		n, ok := doc.Number("total_results")
		return round(n), ok, nil
	}
}

// dormantSegmentCount looks for a segment whose name mentions "dormant".
func (a *Aggregator) dormantSegmentCount(ctx context.Context, creds beehiiv.Credentials) (int, bool, error) {
	doc, err := a.client.ListSegments(ctx, creds)
	if err != nil {
		return 0, false, err
	}

	for _, segment := range doc.Objects("data") {
		name, _ := segment["name"].(string)
		if !strings.Contains(strings.ToLower(name), "dormant") {
			continue
		}
		count := firstPositive(segment,
			[]string{"total_results"},
			[]string{"subscriber_count"},
			[]string{"count"},
		)
		return round(count), true, nil
	}
	return 0, false, nil
}
