// Sponsordesk - Newsletter Sponsorship Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sponsordesk

package api

import (
	"net/http"

	"github.com/tomtom215/sponsordesk/internal/logging"
)

// publicCacheControl lets the CDN serve the public stats for five minutes
// and revalidate in the background for ten more.
const publicCacheControl = "s-maxage=300, stale-while-revalidate=600"

func setPublicStatsHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Cache-Control", publicCacheControl)
}

// Stats serves the audience summary shown on the public site.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	setPublicStatsHeaders(w)

	summary, err := h.analytics.Stats(r.Context())
	if err != nil {
		logging.CtxErr(r.Context(), err).Msg("Failed to build stats summary")
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

// NewsletterOpens serves the recent per-issue open counts.
func (h *Handler) NewsletterOpens(w http.ResponseWriter, r *http.Request) {
	setPublicStatsHeaders(w)

	summary, err := h.analytics.OpensSummary(r.Context())
	if err != nil {
		logging.CtxErr(r.Context(), err).Msg("Failed to build opens summary")
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, summary)
}
