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
)

// GetConfig serves the stored document for kind, or its defaults.
func (h *Handler) GetConfig(kind content.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := h.docs.Get(r.Context(), kind)
		if err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondRaw(w, http.StatusOK, doc)
	}
}

// SetConfig replaces the document for kind with the request body.
func (h *Handler) SetConfig(kind content.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := readJSONBody(w, r)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		if err := h.docs.Set(r.Context(), kind, body); err != nil {
			if errors.Is(err, content.ErrInvalidDocument) {
				respondError(w, http.StatusBadRequest, errInvalidJSON.Error())
				return
			}
			logging.CtxErr(r.Context(), err).Str("kind", string(kind)).Msg("Failed to save config document")
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, models.OKResponse{OK: true})
	}
}

// ResetConfig deletes the document for kind and returns the defaults.
func (h *Handler) ResetConfig(kind content.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defaults, err := h.docs.Reset(r.Context(), kind)
		if err != nil {
			logging.CtxErr(r.Context(), err).Str("kind", string(kind)).Msg("Failed to reset config document")
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, models.ResetResponse{OK: true, Defaults: defaults})
	}
}
