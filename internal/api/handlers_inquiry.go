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
	"github.com/tomtom215/sponsordesk/internal/validation"
)

// CreateInquiry records a sponsorship lead from the public contact form.
func (h *Handler) CreateInquiry(w http.ResponseWriter, r *http.Request) {
	var req models.InquiryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil && verr.HasField("email") {
		respondError(w, http.StatusBadRequest, content.ErrEmailRequired.Error())
		return
	}

	if _, err := h.inquiries.Add(r.Context(), &req); err != nil {
		if errors.Is(err, content.ErrEmailRequired) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		logging.CtxErr(r.Context(), err).Msg("Failed to store inquiry")
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, models.OKResponse{OK: true})
}

// ListInquiries returns every inquiry, newest first.
func (h *Handler) ListInquiries(w http.ResponseWriter, r *http.Request) {
	list, err := h.inquiries.List(r.Context())
	if err != nil {
		logging.CtxErr(r.Context(), err).Msg("Failed to list inquiries")
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, list)
}
