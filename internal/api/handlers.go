// Sponsordesk - Newsletter Sponsorship Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sponsordesk

package api

import (
	"context"
	"net/http"

	"github.com/tomtom215/sponsordesk/internal/beehiiv"
	"github.com/tomtom215/sponsordesk/internal/content"
	"github.com/tomtom215/sponsordesk/internal/models"
)

// Analytics is the Beehiiv-backed aggregation the handlers need.
// *analytics.Aggregator implements it.
type Analytics interface {
	Stats(ctx context.Context) (*models.StatsSummary, error)
	OpensSummary(ctx context.Context) (*models.OpensSummary, error)
	FullSync(ctx context.Context, creds beehiiv.Credentials, maxPages *int) (*models.FullSyncResult, error)
	QuickSync(ctx context.Context, creds beehiiv.Credentials, knownIDs []string) (*models.QuickSyncResult, error)
	DebugPosts(ctx context.Context, creds beehiiv.Credentials) (*models.DebugSummary, error)
}

// Handler holds the dependencies of the HTTP handlers.
type Handler struct {
	analytics Analytics
	docs      *content.ConfigDocs
	inquiries *content.Inquiries
	snapshots *content.Snapshots
}

// NewHandler creates the handler set.
func NewHandler(analytics Analytics, docs *content.ConfigDocs, inquiries *content.Inquiries, snapshots *content.Snapshots) *Handler {
	return &Handler{
		analytics: analytics,
		docs:      docs,
		inquiries: inquiries,
		snapshots: snapshots,
	}
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, models.HealthResponse{Status: "ok"})
}
