// Sponsordesk - Newsletter Sponsorship Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sponsordesk

package api

import (
	"net/http"

	"github.com/tomtom215/sponsordesk/internal/beehiiv"
	"github.com/tomtom215/sponsordesk/internal/logging"
	"github.com/tomtom215/sponsordesk/internal/models"
	"github.com/tomtom215/sponsordesk/internal/validation"
)

const missingCredentials = "Missing apiKey or pubId"

// decodeSyncRequest decodes dst and checks the embedded credentials. It
// writes the error response itself and reports whether to continue.
func decodeSyncRequest(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := decodeJSON(w, r, dst); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return false
	}
	if verr := validation.ValidateStruct(dst); verr != nil {
		respondError(w, http.StatusBadRequest, missingCredentials)
		return false
	}
	return true
}

func credentials(c models.SyncCredentials) beehiiv.Credentials {
	return beehiiv.Credentials{APIKey: c.APIKey, PubID: c.PubID}
}

// Sync pages through the caller's posts for the admin dashboard.
func (h *Handler) Sync(w http.ResponseWriter, r *http.Request) {
	var req models.FullSyncRequest
	if !decodeSyncRequest(w, r, &req) {
		return
	}

	result, err := h.analytics.FullSync(r.Context(), credentials(req.SyncCredentials), req.MaxPages)
	if err != nil {
		if apiErr, ok := beehiiv.AsAPIError(err); ok {
			respondError(w, apiErr.StatusCode, apiErr.Error())
			return
		}
		logging.CtxErr(r.Context(), err).Msg("Full sync failed")
		respondError(w, http.StatusInternalServerError, "Server error: "+err.Error())
		return
	}

	logging.Ctx(r.Context()).Info().
		Int("fetched", result.TotalFetched).
		Bool("partial", result.Warning != "").
		Msg("Full sync completed")
	respondJSON(w, http.StatusOK, result)
}

// QuickSync refreshes the latest page plus the posts the dashboard already
// knows about.
func (h *Handler) QuickSync(w http.ResponseWriter, r *http.Request) {
	var req models.QuickSyncRequest
	if !decodeSyncRequest(w, r, &req) {
		return
	}

	result, err := h.analytics.QuickSync(r.Context(), credentials(req.SyncCredentials), req.KnownPostIDs)
	if err != nil {
		if apiErr, ok := beehiiv.AsAPIError(err); ok {
			respondError(w, apiErr.StatusCode, "Beehiiv API error: "+apiErr.Truncate(300))
			return
		}
		logging.CtxErr(r.Context(), err).Msg("Quick sync failed")
		respondError(w, http.StatusInternalServerError, "Server error: "+err.Error())
		return
	}

	logging.Ctx(r.Context()).Info().
		Int("new_checked", result.NewChecked).
		Int("refreshed", result.ExistingRefreshed).
		Msg("Quick sync completed")
	respondJSON(w, http.StatusOK, result)
}

// Debug summarizes the latest posts' stats fields as Beehiiv returns them.
func (h *Handler) Debug(w http.ResponseWriter, r *http.Request) {
	var req models.SyncCredentials
	if !decodeSyncRequest(w, r, &req) {
		return
	}

	summary, err := h.analytics.DebugPosts(r.Context(), credentials(req))
	if err != nil {
		if apiErr, ok := beehiiv.AsAPIError(err); ok {
			respondError(w, apiErr.StatusCode, apiErr.Truncate(500))
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, summary)
}
