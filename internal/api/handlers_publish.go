// Sponsordesk - Newsletter Sponsorship Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sponsordesk

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/sponsordesk/internal/content"
	"github.com/tomtom215/sponsordesk/internal/logging"
	"github.com/tomtom215/sponsordesk/internal/models"
	"github.com/tomtom215/sponsordesk/internal/store"
	"github.com/tomtom215/sponsordesk/internal/validation"
)

// Publish stores a sponsor dashboard snapshot under its share token.
func (h *Handler) Publish(w http.ResponseWriter, r *http.Request) {
	var req models.PublishRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondError(w, http.StatusBadRequest, content.ErrMissingShareTokenOrData.Error())
		return
	}

	if err := h.snapshots.Publish(r.Context(), req.ShareToken, req.Data); err != nil {
		if errors.Is(err, content.ErrMissingShareTokenOrData) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		logging.CtxErr(r.Context(), err).Msg("Failed to publish sponsor snapshot")
		respondError(w, http.StatusInternalServerError, "KV error: "+err.Error())
		return
	}
	respondJSON(w, http.StatusOK, models.OKResponse{OK: true})
}

// SponsorData serves a published snapshot by ?token=.
func (h *Handler) SponsorData(w http.ResponseWriter, r *http.Request) {
	data, err := h.snapshots.Fetch(r.Context(), r.URL.Query().Get("token"))
	switch {
	case err == nil:
		respondRaw(w, http.StatusOK, data)
	case errors.Is(err, content.ErrMissingToken):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrNotFound):
		respondError(w, http.StatusNotFound, "Not found")
	default:
		logging.CtxErr(r.Context(), err).Msg("Failed to read sponsor snapshot")
		respondError(w, http.StatusInternalServerError, "KV error: "+err.Error())
	}
}
