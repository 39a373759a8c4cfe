// Sponsordesk - Newsletter Sponsorship Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sponsordesk

package api

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/sponsordesk/internal/logging"
	"github.com/tomtom215/sponsordesk/internal/models"
)

// maxBodySize caps request bodies. Config documents and sponsor snapshots
// are the largest payloads.
const maxBodySize = 1 << 20

var errInvalidJSON = errors.New("Invalid JSON body")

// respondJSON marshals v and writes it with status.
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	respondRaw(w, status, data)
}

// respondRaw writes an already encoded JSON document.
func respondRaw(w http.ResponseWriter, status int, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondError writes {"error": message}.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, models.ErrorResponse{Error: message})
}

// decodeJSON reads a bounded JSON body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(dst); err != nil {
		return errInvalidJSON
	}
	return nil
}

// readJSONBody reads a bounded body that must be a single JSON value and
// returns it undecoded.
func readJSONBody(w http.ResponseWriter, r *http.Request) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := decodeJSON(w, r, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// methodNotAllowed is installed as chi's MethodNotAllowed handler.
func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
}

// notFound is installed as chi's NotFound handler.
func notFound(w http.ResponseWriter, _ *http.Request) {
	respondError(w, http.StatusNotFound, "Not found")
}
